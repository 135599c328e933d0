package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/comanda-pos/api/internal/database"
	"github.com/comanda-pos/api/internal/enum"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Pool is a connection pool that can also start transactions.
// *pgxpool.Pool satisfies it.
type Pool interface {
	database.DBTX
	TxBeginner
}

// LifecycleStore defines the DB methods used after an order exists.
type LifecycleStore interface {
	GetOrder(ctx context.Context, arg database.GetOrderParams) (database.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (database.Order, error)
	GetOrderForUpdate(ctx context.Context, arg database.GetOrderForUpdateParams) (database.Order, error)
	ListOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItem, error)
	ListOrderItemModifiersByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItemModifier, error)
	MarkOrderPaid(ctx context.Context, arg database.MarkOrderPaidParams) (database.Order, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
	SetOrderCustomerAlias(ctx context.Context, arg database.SetOrderCustomerAliasParams) (database.Order, error)
	GetCashierStation(ctx context.Context, businessID uuid.UUID) (database.ProductionStation, error)
	DeleteOrderItemModifiersByOrder(ctx context.Context, orderID uuid.UUID) error
	DeleteOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) error
	DeleteOrder(ctx context.Context, arg database.DeleteOrderParams) error
	SubtractFromOpenAccountTotal(ctx context.Context, arg database.SubtractFromOpenAccountTotalParams) error
}

type NewLifecycleStore func(db database.DBTX) LifecycleStore

// LifecycleService moves orders through their states and re-dispatches
// pay-first orders once they are paid.
type LifecycleService struct {
	db         Pool
	newStore   NewLifecycleStore
	dispatcher *Dispatcher
}

func NewLifecycleService(db Pool, newStore NewLifecycleStore, dispatcher *Dispatcher) *LifecycleService {
	return &LifecycleService{db: db, newStore: newStore, dispatcher: dispatcher}
}

// ConfirmPayment moves a PENDING_PAYMENT order to PENDING and sends it to the
// stations. Any other current state is ErrInvalidTransition and dispatches
// nothing.
func (s *LifecycleService) ConfirmPayment(ctx context.Context, businessID, orderID uuid.UUID) (*OrderResult, error) {
	if businessID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)
	order, err := store.MarkOrderPaid(ctx, database.MarkOrderPaidParams{ID: orderID, BusinessID: businessID})
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("mark order paid: %w", err)
		}
		return nil, s.explainMiss(ctx, store, businessID, orderID)
	}

	items, err := store.ListOrderItemsByOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, order, items)
	}
	return &OrderResult{Order: order, Items: itemResults(items, nil)}, nil
}

// explainMiss tells a missing order apart from one in the wrong state.
func (s *LifecycleService) explainMiss(ctx context.Context, store LifecycleStore, businessID, orderID uuid.UUID) error {
	current, err := store.GetOrder(ctx, database.GetOrderParams{ID: orderID, BusinessID: businessID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
		}
		return fmt.Errorf("get order: %w", err)
	}
	return fmt.Errorf("order is %s: %w", current.Status, ErrInvalidTransition)
}

// TransitionState sets any known state on an order of the business. The
// state graph is not enforced here.
func (s *LifecycleService) TransitionState(ctx context.Context, businessID, orderID uuid.UUID, status string) (database.Order, error) {
	if businessID == uuid.Nil {
		return database.Order{}, ErrUnauthorized
	}
	st, err := ParseOrderStatus(status)
	if err != nil {
		return database.Order{}, err
	}

	order, err := s.newStore(s.db).UpdateOrderStatus(ctx, database.UpdateOrderStatusParams{
		ID:         orderID,
		BusinessID: businessID,
		Status:     st,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
		}
		return database.Order{}, fmt.Errorf("update order status: %w", err)
	}
	return order, nil
}

// NotifyCashPayment records who will pay a pending order in cash and alerts
// the business's cashier station. Only PENDING_PAYMENT orders qualify.
func (s *LifecycleService) NotifyCashPayment(ctx context.Context, orderID uuid.UUID, alias string) (database.Order, error) {
	store := s.newStore(s.db)

	order, err := store.SetOrderCustomerAlias(ctx, database.SetOrderCustomerAliasParams{
		ID:            orderID,
		CustomerAlias: pgText(alias),
	})
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, fmt.Errorf("set customer alias: %w", err)
		}
		current, err := store.GetOrderByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return database.Order{}, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
			}
			return database.Order{}, fmt.Errorf("get order: %w", err)
		}
		return database.Order{}, fmt.Errorf("order is %s: %w", current.Status, ErrInvalidTransition)
	}

	items, err := store.ListOrderItemsByOrder(ctx, order.ID)
	if err != nil {
		return database.Order{}, fmt.Errorf("list order items: %w", err)
	}

	cashier, err := store.GetCashierStation(ctx, order.BusinessID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("WARN: business %s has no cashier station, cash alert for order %s dropped", order.BusinessID, order.ID)
			return order, nil
		}
		return database.Order{}, fmt.Errorf("get cashier station: %w", err)
	}

	if s.dispatcher != nil {
		s.dispatcher.Alert(ctx, cashier.ID, CashAlert{
			AlertType:     enum.AlertCashPaymentPending,
			TableID:       tableRef(order),
			OrderID:       order.ID,
			AmountDue:     NumericString(order.Total),
			CustomerAlias: alias,
			Items:         ticketItems(items),
		})
	}
	return order, nil
}

// DeleteOrder removes an order with its lines and modifier rows. If the
// order's account is still OPEN its running total drops by the order total.
func (s *LifecycleService) DeleteOrder(ctx context.Context, businessID, orderID uuid.UUID) error {
	if businessID == uuid.Nil {
		return ErrUnauthorized
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)
	order, err := store.GetOrderForUpdate(ctx, database.GetOrderForUpdateParams{ID: orderID, BusinessID: businessID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
		}
		return fmt.Errorf("get order: %w", err)
	}

	if err := store.DeleteOrderItemModifiersByOrder(ctx, order.ID); err != nil {
		return fmt.Errorf("delete order item modifiers: %w", err)
	}
	if err := store.DeleteOrderItemsByOrder(ctx, order.ID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	if err := store.DeleteOrder(ctx, database.DeleteOrderParams{ID: order.ID, BusinessID: businessID}); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if err := store.SubtractFromOpenAccountTotal(ctx, database.SubtractFromOpenAccountTotalParams{
		Amount: order.Total,
		ID:     order.AccountID,
	}); err != nil {
		return fmt.Errorf("subtract from account total: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetOrderDetail returns an order of the business with its lines and the
// modifier options chosen for each.
func (s *LifecycleService) GetOrderDetail(ctx context.Context, businessID, orderID uuid.UUID) (*OrderResult, error) {
	if businessID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	store := s.newStore(s.db)

	order, err := store.GetOrder(ctx, database.GetOrderParams{ID: orderID, BusinessID: businessID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := store.ListOrderItemsByOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	mods, err := store.ListOrderItemModifiersByOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("list order item modifiers: %w", err)
	}
	return &OrderResult{Order: order, Items: itemResults(items, mods)}, nil
}

func itemResults(items []database.OrderItem, mods []database.OrderItemModifier) []OrderItemResult {
	byItem := make(map[uuid.UUID][]database.OrderItemModifier)
	for _, m := range mods {
		byItem[m.OrderItemID] = append(byItem[m.OrderItemID], m)
	}
	out := make([]OrderItemResult, 0, len(items))
	for _, it := range items {
		out = append(out, OrderItemResult{Item: it, Modifiers: byItem[it.ID]})
	}
	return out
}
