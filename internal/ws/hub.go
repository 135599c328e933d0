package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrHubBusy   = errors.New("hub publish queue full")
	ErrHubClosed = errors.New("hub stopped")
)

// stationMessage is an encoded message routed to one station topic.
type stationMessage struct {
	StationID uuid.UUID
	Payload   []byte
}

// Hub owns one topic per station. Subscriptions join and leave a topic with
// Subscribe and Unsubscribe; published messages reach whoever is subscribed
// at that moment and are otherwise dropped.
type Hub struct {
	// Live subscriptions by station ID
	topics map[uuid.UUID]map[*Subscription]bool

	subscribe   chan *Subscription
	unsubscribe chan *Subscription
	publish     chan *stationMessage

	done     chan struct{}
	stopOnce sync.Once

	// Guards topics for SubscriberCount readers
	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		topics:      make(map[uuid.UUID]map[*Subscription]bool),
		subscribe:   make(chan *Subscription),
		unsubscribe: make(chan *Subscription),
		publish:     make(chan *stationMessage, 256),
		done:        make(chan struct{}),
	}
}

// Run is the hub's main loop. It returns when ctx is cancelled, after
// closing every subscription's send channel.
func (h *Hub) Run(ctx context.Context) {
	defer h.stop()

	for {
		select {
		case <-ctx.Done():
			return

		case sub := <-h.subscribe:
			h.mu.Lock()
			if h.topics[sub.stationID] == nil {
				h.topics[sub.stationID] = make(map[*Subscription]bool)
			}
			h.topics[sub.stationID][sub] = true
			h.mu.Unlock()

		case sub := <-h.unsubscribe:
			h.mu.Lock()
			h.drop(sub)
			h.mu.Unlock()

		case msg := <-h.publish:
			h.mu.Lock()
			for sub := range h.topics[msg.StationID] {
				select {
				case sub.send <- msg.Payload:
				default:
					// Subscriber is not keeping up; cut it loose.
					h.drop(sub)
				}
			}
			h.mu.Unlock()
		}
	}
}

// drop removes sub from its topic. Caller holds mu.
func (h *Hub) drop(sub *Subscription) {
	subs, ok := h.topics[sub.stationID]
	if !ok || !subs[sub] {
		return
	}
	delete(subs, sub)
	close(sub.send)
	if len(subs) == 0 {
		delete(h.topics, sub.stationID)
	}
}

func (h *Hub) stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		h.mu.Lock()
		for _, subs := range h.topics {
			for sub := range subs {
				h.drop(sub)
			}
		}
		h.mu.Unlock()
	})
}

// Subscribe joins sub to its station's topic.
func (h *Hub) Subscribe(sub *Subscription) error {
	select {
	case h.subscribe <- sub:
		return nil
	case <-h.done:
		return ErrHubClosed
	}
}

// Unsubscribe leaves the topic. Safe to call more than once.
func (h *Hub) Unsubscribe(sub *Subscription) {
	select {
	case h.unsubscribe <- sub:
	case <-h.done:
	}
}

// PublishTicket queues payload for the station's subscribers without
// blocking. It satisfies service.TicketSink.
func (h *Hub) PublishTicket(ctx context.Context, stationID uuid.UUID, payload []byte) error {
	select {
	case <-h.done:
		return ErrHubClosed
	default:
	}
	select {
	case h.publish <- &stationMessage{StationID: stationID, Payload: payload}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrHubBusy
	}
}

// SubscriberCount reports how many connections listen on a station.
func (h *Hub) SubscriberCount(stationID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[stationID])
}
