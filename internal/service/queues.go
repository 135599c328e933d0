package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/comanda-pos/api/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	DefaultAgingThreshold = 10 * time.Minute
	agingQueueLimit       = 5
	noExampleItem         = "N/A"
)

// QueueStore defines the read queries behind the station views.
type QueueStore interface {
	GetStation(ctx context.Context, arg database.GetStationParams) (database.ProductionStation, error)
	ListOrdersByStatuses(ctx context.Context, arg database.ListOrdersByStatusesParams) ([]database.Order, error)
	ListOrdersByStatusSince(ctx context.Context, arg database.ListOrdersByStatusSinceParams) ([]database.Order, error)
	ListOrderItemsByOrders(ctx context.Context, orderIds []uuid.UUID) ([]database.OrderItem, error)
	ListAgingOrders(ctx context.Context, arg database.ListAgingOrdersParams) ([]database.ListAgingOrdersRow, error)
}

// StationView is one order as a given station sees it.
type StationView struct {
	Order database.Order
	Items []database.OrderItem
	// AmountDue is set only on the cashier station's queue.
	AmountDue string
}

// AgingEntry is an order that has been waiting too long at a table.
type AgingEntry struct {
	OrderID        uuid.UUID
	TableName      string
	ZoneName       string
	ExampleItem    string
	MinutesWaiting int
	CreatedAt      time.Time
}

// QueueService serves the read-only station views.
type QueueService struct {
	store     QueueStore
	threshold time.Duration
	now       func() time.Time
}

func NewQueueService(store QueueStore, agingThreshold time.Duration) *QueueService {
	if agingThreshold <= 0 {
		agingThreshold = DefaultAgingThreshold
	}
	return &QueueService{store: store, threshold: agingThreshold, now: time.Now}
}

// ActiveQueue lists work for a station, oldest first. Production stations
// see PENDING and EN_PREPARACION orders restricted to their own lines; the
// cashier station sees PENDING_PAYMENT orders whole, with the amount due.
func (s *QueueService) ActiveQueue(ctx context.Context, businessID, stationID uuid.UUID) ([]StationView, error) {
	station, err := s.station(ctx, businessID, stationID)
	if err != nil {
		return nil, err
	}

	cashier := station.Kind == database.StationKindCASHIER
	statuses := []string{string(database.OrderStatusPENDING), string(database.OrderStatusENPREPARACION)}
	if cashier {
		statuses = []string{string(database.OrderStatusPENDINGPAYMENT)}
	}

	orders, err := s.store.ListOrdersByStatuses(ctx, database.ListOrdersByStatusesParams{
		BusinessID: businessID,
		Statuses:   statuses,
	})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	if cashier {
		return s.views(ctx, orders, uuid.Nil, true)
	}
	return s.views(ctx, orders, station.ID, false)
}

// CompletedQueue lists the station's LISTO_PARA_RECOGER orders created since
// local midnight, newest first.
func (s *QueueService) CompletedQueue(ctx context.Context, businessID, stationID uuid.UUID) ([]StationView, error) {
	station, err := s.station(ctx, businessID, stationID)
	if err != nil {
		return nil, err
	}

	orders, err := s.store.ListOrdersByStatusSince(ctx, database.ListOrdersByStatusSinceParams{
		BusinessID: businessID,
		Status:     database.OrderStatusLISTOPARARECOGER,
		CreatedAt:  startOfDay(s.now()),
	})
	if err != nil {
		return nil, fmt.Errorf("list completed orders: %w", err)
	}
	return s.views(ctx, orders, station.ID, false)
}

// AgingQueue returns the oldest tabled orders still being worked on that
// have waited longer than the threshold.
func (s *QueueService) AgingQueue(ctx context.Context, businessID uuid.UUID) ([]AgingEntry, error) {
	if businessID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	now := s.now()

	rows, err := s.store.ListAgingOrders(ctx, database.ListAgingOrdersParams{
		BusinessID: businessID,
		Cutoff:     now.Add(-s.threshold),
		RowLimit:   agingQueueLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list aging orders: %w", err)
	}

	entries := make([]AgingEntry, 0, len(rows))
	for _, r := range rows {
		example := r.FirstItemName
		if example == "" {
			example = noExampleItem
		}
		entries = append(entries, AgingEntry{
			OrderID:        r.ID,
			TableName:      r.TableName,
			ZoneName:       r.ZoneName,
			ExampleItem:    example,
			MinutesWaiting: int(now.Sub(r.CreatedAt).Minutes()),
			CreatedAt:      r.CreatedAt,
		})
	}
	return entries, nil
}

func (s *QueueService) station(ctx context.Context, businessID, stationID uuid.UUID) (database.ProductionStation, error) {
	if businessID == uuid.Nil {
		return database.ProductionStation{}, ErrUnauthorized
	}
	st, err := s.store.GetStation(ctx, database.GetStationParams{ID: stationID, BusinessID: businessID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.ProductionStation{}, fmt.Errorf("station %s: %w", stationID, ErrNotFound)
		}
		return database.ProductionStation{}, fmt.Errorf("get station: %w", err)
	}
	return st, nil
}

// views attaches lines to orders. With all=false only lines routed to
// stationID are kept and orders left without lines are dropped.
func (s *QueueService) views(ctx context.Context, orders []database.Order, stationID uuid.UUID, all bool) ([]StationView, error) {
	out := []StationView{}
	if len(orders) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	items, err := s.store.ListOrderItemsByOrders(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	byOrder := make(map[uuid.UUID][]database.OrderItem, len(orders))
	for _, it := range items {
		if !all && (!it.StationID.Valid || uuid.UUID(it.StationID.Bytes) != stationID) {
			continue
		}
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}

	for _, o := range orders {
		lines := byOrder[o.ID]
		if !all && len(lines) == 0 {
			continue
		}
		v := StationView{Order: o, Items: lines}
		if all {
			v.AmountDue = NumericString(o.Total)
		}
		out = append(out, v)
	}
	return out, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
