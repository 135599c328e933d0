package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/comanda-pos/api/internal/database"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// TicketSink delivers an encoded message to whoever listens on a station.
// Implementations must not block on slow listeners.
type TicketSink interface {
	PublishTicket(ctx context.Context, stationID uuid.UUID, payload []byte) error
}

// TicketItem is one line as a station sees it.
type TicketItem struct {
	Name     string `json:"name"`
	Quantity int32  `json:"quantity"`
	Note     string `json:"note"`
}

// StationTicket is the message a production station receives for an order.
type StationTicket struct {
	StationID uuid.UUID    `json:"-"`
	TableID   *uuid.UUID   `json:"table_id"`
	OrderID   uuid.UUID    `json:"order_id"`
	Total     string       `json:"total"`
	Items     []TicketItem `json:"items"`
	CreatedAt time.Time    `json:"created_at"`
}

// CashAlert tells the cashier station a pay-first customer will pay cash.
type CashAlert struct {
	AlertType     string       `json:"alert_type"`
	TableID       *uuid.UUID   `json:"table_id"`
	OrderID       uuid.UUID    `json:"order_id"`
	AmountDue     string       `json:"amount_due"`
	CustomerAlias string       `json:"customer_alias"`
	Items         []TicketItem `json:"items"`
}

// Dispatcher fans persisted orders out to station listeners. Delivery is
// best effort: failures are logged and never reach the caller.
type Dispatcher struct {
	sinks []TicketSink
}

func NewDispatcher(sinks ...TicketSink) *Dispatcher {
	d := &Dispatcher{}
	for _, s := range sinks {
		if s != nil {
			d.sinks = append(d.sinks, s)
		}
	}
	return d
}

// BuildTickets groups an order's lines by station, keeping line order within
// a group and the order in which stations first appear. Lines without a
// station are left out.
func BuildTickets(order database.Order, items []database.OrderItem) []StationTicket {
	var tickets []StationTicket
	index := make(map[uuid.UUID]int)

	for _, it := range items {
		if !it.StationID.Valid {
			continue
		}
		sid := uuid.UUID(it.StationID.Bytes)
		i, ok := index[sid]
		if !ok {
			i = len(tickets)
			index[sid] = i
			tickets = append(tickets, StationTicket{
				StationID: sid,
				TableID:   tableRef(order),
				OrderID:   order.ID,
				Total:     NumericString(order.Total),
				CreatedAt: order.CreatedAt,
			})
		}
		tickets[i].Items = append(tickets[i].Items, ticketItem(it))
	}
	return tickets
}

// Dispatch sends one ticket per station and returns how many were built.
func (d *Dispatcher) Dispatch(ctx context.Context, order database.Order, items []database.OrderItem) int {
	tickets := BuildTickets(order, items)
	if len(tickets) == 0 || len(d.sinks) == 0 {
		return len(tickets)
	}

	var g errgroup.Group
	for _, t := range tickets {
		payload, err := json.Marshal(t)
		if err != nil {
			log.Printf("ERROR: encode ticket order=%s station=%s: %v", t.OrderID, t.StationID, err)
			continue
		}
		d.publish(ctx, &g, t.StationID, payload)
	}
	g.Wait() //nolint:errcheck
	return len(tickets)
}

// Alert sends an arbitrary message to a single station.
func (d *Dispatcher) Alert(ctx context.Context, stationID uuid.UUID, msg any) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("ERROR: encode alert station=%s: %v", stationID, err)
		return
	}
	var g errgroup.Group
	d.publish(ctx, &g, stationID, payload)
	g.Wait() //nolint:errcheck
}

func (d *Dispatcher) publish(ctx context.Context, g *errgroup.Group, stationID uuid.UUID, payload []byte) {
	for _, sink := range d.sinks {
		g.Go(func() error {
			if err := sink.PublishTicket(ctx, stationID, payload); err != nil {
				log.Printf("WARN: deliver to station %s: %v", stationID, err)
			}
			return nil
		})
	}
}

func ticketItem(it database.OrderItem) TicketItem {
	name := it.ProductName
	if it.VariantName.Valid {
		name += " (" + it.VariantName.String + ")"
	}
	return TicketItem{Name: name, Quantity: it.Quantity, Note: it.Note.String}
}

func ticketItems(items []database.OrderItem) []TicketItem {
	out := make([]TicketItem, 0, len(items))
	for _, it := range items {
		out = append(out, ticketItem(it))
	}
	return out
}

func tableRef(order database.Order) *uuid.UUID {
	if !order.TableID.Valid {
		return nil
	}
	id := uuid.UUID(order.TableID.Bytes)
	return &id
}
