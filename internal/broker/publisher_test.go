package broker

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type mockChannel struct {
	mu        sync.Mutex
	sent      []published
	publishFn func() error
	closed    bool
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if m.publishFn != nil {
		if err := m.publishFn(); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (m *mockChannel) Close() error {
	m.closed = true
	return nil
}

func TestPublishTicket_RoutesByStation(t *testing.T) {
	ch := &mockChannel{}
	p := &Publisher{ch: ch}
	stationID := uuid.New()
	payload := []byte(`{"order_id":"abc"}`)

	if err := p.PublishTicket(context.Background(), stationID, payload); err != nil {
		t.Fatalf("PublishTicket: %v", err)
	}

	if len(ch.sent) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(ch.sent))
	}
	got := ch.sent[0]
	if got.exchange != Exchange {
		t.Errorf("expected exchange %s, got %s", Exchange, got.exchange)
	}
	if got.key != "station."+stationID.String() {
		t.Errorf("unexpected routing key %s", got.key)
	}
	if got.msg.ContentType != "application/json" {
		t.Errorf("unexpected content type %s", got.msg.ContentType)
	}
	if string(got.msg.Body) != string(payload) {
		t.Errorf("expected body %s, got %s", payload, got.msg.Body)
	}
}

func TestPublishTicket_WrapsError(t *testing.T) {
	boom := errors.New("channel closed")
	p := &Publisher{ch: &mockChannel{publishFn: func() error { return boom }}}
	stationID := uuid.New()

	err := p.PublishTicket(context.Background(), stationID, []byte(`{}`))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped channel error, got %v", err)
	}
	if !strings.Contains(err.Error(), stationID.String()) {
		t.Errorf("error should name the station: %v", err)
	}
}

func TestPublishTicket_Concurrent(t *testing.T) {
	ch := &mockChannel{}
	p := &Publisher{ch: ch}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.PublishTicket(context.Background(), uuid.New(), []byte(`{}`)) //nolint:errcheck
		}()
	}
	wg.Wait()

	if len(ch.sent) != 20 {
		t.Fatalf("expected 20 publishes, got %d", len(ch.sent))
	}
}

func TestClose(t *testing.T) {
	ch := &mockChannel{}
	p := &Publisher{ch: ch}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !ch.closed {
		t.Error("channel not closed")
	}
}
