package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/comanda-pos/api/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// mockQueueStore implements QueueStore with configurable behavior.
type mockQueueStore struct {
	getStationFn              func(ctx context.Context, arg database.GetStationParams) (database.ProductionStation, error)
	listOrdersByStatusesFn    func(ctx context.Context, arg database.ListOrdersByStatusesParams) ([]database.Order, error)
	listOrdersByStatusSinceFn func(ctx context.Context, arg database.ListOrdersByStatusSinceParams) ([]database.Order, error)
	listOrderItemsByOrdersFn  func(ctx context.Context, orderIds []uuid.UUID) ([]database.OrderItem, error)
	listAgingOrdersFn         func(ctx context.Context, arg database.ListAgingOrdersParams) ([]database.ListAgingOrdersRow, error)
}

func (m *mockQueueStore) GetStation(ctx context.Context, arg database.GetStationParams) (database.ProductionStation, error) {
	return m.getStationFn(ctx, arg)
}
func (m *mockQueueStore) ListOrdersByStatuses(ctx context.Context, arg database.ListOrdersByStatusesParams) ([]database.Order, error) {
	return m.listOrdersByStatusesFn(ctx, arg)
}
func (m *mockQueueStore) ListOrdersByStatusSince(ctx context.Context, arg database.ListOrdersByStatusSinceParams) ([]database.Order, error) {
	return m.listOrdersByStatusSinceFn(ctx, arg)
}
func (m *mockQueueStore) ListOrderItemsByOrders(ctx context.Context, orderIds []uuid.UUID) ([]database.OrderItem, error) {
	return m.listOrderItemsByOrdersFn(ctx, orderIds)
}
func (m *mockQueueStore) ListAgingOrders(ctx context.Context, arg database.ListAgingOrdersParams) ([]database.ListAgingOrdersRow, error) {
	return m.listAgingOrdersFn(ctx, arg)
}

type queueFixture struct {
	businessID uuid.UUID
	cocina     database.ProductionStation
	barra      database.ProductionStation
	caja       database.ProductionStation
	orders     []database.Order
	items      []database.OrderItem
}

func newQueueFixture() *queueFixture {
	biz := uuid.New()
	f := &queueFixture{
		businessID: biz,
		cocina:     database.ProductionStation{ID: uuid.New(), BusinessID: biz, Name: "Cocina", Kind: database.StationKindPRODUCTION},
		barra:      database.ProductionStation{ID: uuid.New(), BusinessID: biz, Name: "Barra", Kind: database.StationKindPRODUCTION},
		caja:       database.ProductionStation{ID: uuid.New(), BusinessID: biz, Name: "Caja", Kind: database.StationKindCASHIER},
	}
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)

	add := func(status database.OrderStatus, at time.Time, total string, lines ...database.OrderItem) database.Order {
		o := database.Order{ID: uuid.New(), BusinessID: biz, Status: status, CreatedAt: at, Total: makeNumeric(total)}
		f.orders = append(f.orders, o)
		for i, it := range lines {
			it.OrderID = o.ID
			it.Position = int32(i + 1)
			f.items = append(f.items, it)
		}
		return o
	}
	add(database.OrderStatusPENDING, base, "16.00",
		orderItem(uuid.Nil, 0, "Tacos", 2, f.cocina.ID),
		orderItem(uuid.Nil, 0, "Cerveza", 1, f.barra.ID),
	)
	add(database.OrderStatusENPREPARACION, base.Add(time.Minute), "3.00",
		orderItem(uuid.Nil, 0, "Cerveza", 1, f.barra.ID),
	)
	add(database.OrderStatusPENDINGPAYMENT, base.Add(2*time.Minute), "9.50",
		orderItem(uuid.Nil, 0, "Sopa", 1, f.cocina.ID),
		orderItem(uuid.Nil, 0, "Pan", 1, uuid.Nil),
	)
	return f
}

func (f *queueFixture) store() *mockQueueStore {
	return &mockQueueStore{
		getStationFn: func(ctx context.Context, arg database.GetStationParams) (database.ProductionStation, error) {
			for _, s := range []database.ProductionStation{f.cocina, f.barra, f.caja} {
				if s.ID == arg.ID && s.BusinessID == arg.BusinessID {
					return s, nil
				}
			}
			return database.ProductionStation{}, pgx.ErrNoRows
		},
		listOrdersByStatusesFn: func(ctx context.Context, arg database.ListOrdersByStatusesParams) ([]database.Order, error) {
			want := map[string]bool{}
			for _, s := range arg.Statuses {
				want[s] = true
			}
			var out []database.Order
			for _, o := range f.orders {
				if o.BusinessID == arg.BusinessID && want[string(o.Status)] {
					out = append(out, o)
				}
			}
			return out, nil
		},
		listOrderItemsByOrdersFn: func(ctx context.Context, ids []uuid.UUID) ([]database.OrderItem, error) {
			want := map[uuid.UUID]bool{}
			for _, id := range ids {
				want[id] = true
			}
			var out []database.OrderItem
			for _, it := range f.items {
				if want[it.OrderID] {
					out = append(out, it)
				}
			}
			return out, nil
		},
	}
}

func TestActiveQueue_ProductionStationSeesOwnItems(t *testing.T) {
	f := newQueueFixture()
	svc := NewQueueService(f.store(), 0)

	views, err := svc.ActiveQueue(context.Background(), f.businessID, f.barra.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 orders for barra, got %d", len(views))
	}
	if !views[0].Order.CreatedAt.Before(views[1].Order.CreatedAt) {
		t.Error("queue should be oldest first")
	}
	for _, v := range views {
		for _, it := range v.Items {
			if uuid.UUID(it.StationID.Bytes) != f.barra.ID {
				t.Errorf("item %q does not belong to barra", it.ProductName)
			}
		}
		if v.AmountDue != "" {
			t.Error("production views carry no amount due")
		}
	}

	views, err = svc.ActiveQueue(context.Background(), f.businessID, f.cocina.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The PENDING_PAYMENT soup is not kitchen work yet.
	if len(views) != 1 || len(views[0].Items) != 1 || views[0].Items[0].ProductName != "Tacos" {
		t.Errorf("cocina views = %+v", views)
	}
}

func TestActiveQueue_CashierSeesPendingPayment(t *testing.T) {
	f := newQueueFixture()
	svc := NewQueueService(f.store(), 0)

	views, err := svc.ActiveQueue(context.Background(), f.businessID, f.caja.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 order for caja, got %d", len(views))
	}
	if len(views[0].Items) != 2 {
		t.Errorf("cashier should see every item, got %d", len(views[0].Items))
	}
	if views[0].AmountDue != "9.50" {
		t.Errorf("amount due = %q, want 9.50", views[0].AmountDue)
	}
}

func TestActiveQueue_StationOfOtherBusiness(t *testing.T) {
	f := newQueueFixture()
	svc := NewQueueService(f.store(), 0)

	_, err := svc.ActiveQueue(context.Background(), uuid.New(), f.cocina.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.ActiveQueue(context.Background(), uuid.Nil, f.cocina.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestActiveQueue_EmptyIsNotNil(t *testing.T) {
	f := newQueueFixture()
	f.orders = nil
	store := f.store()
	store.listOrderItemsByOrdersFn = func(ctx context.Context, ids []uuid.UUID) ([]database.OrderItem, error) {
		t.Fatal("no item lookup expected for an empty queue")
		return nil, nil
	}

	views, err := NewQueueService(store, 0).ActiveQueue(context.Background(), f.businessID, f.cocina.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if views == nil || len(views) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", views)
	}
}

func TestCompletedQueue_SinceLocalMidnight(t *testing.T) {
	f := newQueueFixture()
	done := database.Order{ID: uuid.New(), BusinessID: f.businessID, Status: database.OrderStatusLISTOPARARECOGER}
	f.orders = []database.Order{done}
	f.items = []database.OrderItem{orderItem(done.ID, 1, "Tacos", 1, f.cocina.ID)}

	store := f.store()
	var got database.ListOrdersByStatusSinceParams
	store.listOrdersByStatusSinceFn = func(ctx context.Context, arg database.ListOrdersByStatusSinceParams) ([]database.Order, error) {
		got = arg
		return f.orders, nil
	}
	svc := NewQueueService(store, 0)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 18, 45, 10, 0, time.Local) }

	views, err := svc.CompletedQueue(context.Background(), f.businessID, f.cocina.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local); !got.CreatedAt.Equal(want) {
		t.Errorf("since = %v, want %v", got.CreatedAt, want)
	}
	if got.Status != database.OrderStatusLISTOPARARECOGER {
		t.Errorf("status = %s", got.Status)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}

	// Barra had nothing in that order.
	views, err = svc.CompletedQueue(context.Background(), f.businessID, f.barra.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("expected no views for barra, got %d", len(views))
	}
}

func TestAgingQueue(t *testing.T) {
	now := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	biz := uuid.New()

	var got database.ListAgingOrdersParams
	store := &mockQueueStore{
		listAgingOrdersFn: func(ctx context.Context, arg database.ListAgingOrdersParams) ([]database.ListAgingOrdersRow, error) {
			got = arg
			return []database.ListAgingOrdersRow{
				{ID: uuid.New(), CreatedAt: now.Add(-25*time.Minute - 40*time.Second), TableName: "Mesa 4", ZoneName: "Terraza", FirstItemName: "Tacos"},
				{ID: uuid.New(), CreatedAt: now.Add(-11 * time.Minute), TableName: "Mesa 1", ZoneName: "Salon"},
			}, nil
		},
	}
	svc := NewQueueService(store, 10*time.Minute)
	svc.now = func() time.Time { return now }

	entries, err := svc.AgingQueue(context.Background(), biz)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Cutoff.Equal(now.Add(-10*time.Minute)) || got.RowLimit != 5 || got.BusinessID != biz {
		t.Errorf("params = %+v", got)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].MinutesWaiting != 25 || entries[0].ExampleItem != "Tacos" || entries[0].ZoneName != "Terraza" {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[1].ExampleItem != "N/A" || entries[1].MinutesWaiting != 11 {
		t.Errorf("second entry = %+v", entries[1])
	}
}

func TestNewQueueService_DefaultThreshold(t *testing.T) {
	if svc := NewQueueService(&mockQueueStore{}, 0); svc.threshold != DefaultAgingThreshold {
		t.Errorf("threshold = %v, want %v", svc.threshold, DefaultAgingThreshold)
	}
}
