package service

import (
	"context"
	"fmt"

	"github.com/comanda-pos/api/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderStore defines the DB methods needed to submit orders.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	CatalogStore
	AccountStore
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error)
	CreateOrderItemModifier(ctx context.Context, arg database.CreateOrderItemModifierParams) (database.OrderItemModifier, error)
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx).
type NewOrderStore func(db database.DBTX) OrderStore

// SubmitOrderRequest is the validated input for submitting an order.
type SubmitOrderRequest struct {
	BusinessID    uuid.UUID
	TableID       uuid.NullUUID
	ZoneID        uuid.NullUUID
	CustomerAlias string
	Mode          PaymentMode
	Lines         []LineRequest
}

// OrderResult is a persisted order with its lines.
type OrderResult struct {
	Order database.Order
	Items []OrderItemResult
}

// OrderItemResult is a line with the modifier options chosen for it.
type OrderItemResult struct {
	Item      database.OrderItem
	Modifiers []database.OrderItemModifier
}

// SubmitResult adds the account the order was charged to.
type SubmitResult struct {
	OrderResult
	Account    database.Account
	Dispatched int
}

// OrderService handles order submission.
type OrderService struct {
	pool       TxBeginner
	newStore   NewOrderStore
	dispatcher *Dispatcher
}

// NewOrderService creates a new OrderService.
func NewOrderService(pool TxBeginner, newStore NewOrderStore, dispatcher *Dispatcher) *OrderService {
	return &OrderService{pool: pool, newStore: newStore, dispatcher: dispatcher}
}

// SubmitOrder prices every line, charges the table's account and persists the
// order in one transaction. Stations are notified after commit when the
// payment mode allows it.
func (s *OrderService) SubmitOrder(ctx context.Context, req SubmitOrderRequest) (*SubmitResult, error) {
	if req.BusinessID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if len(req.Lines) == 0 {
		return nil, ErrEmptyOrder
	}
	if req.Mode == (PaymentMode{}) {
		return nil, ErrInvalidPaymentMode
	}
	for i, line := range req.Lines {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("item[%d]: %w", i, ErrInvalidQuantity)
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)
	resolver := NewPriceResolver(store)

	// --- Resolve every line before writing anything ---
	lines := make([]ResolvedLine, 0, len(req.Lines))
	total := decimal.Zero
	for i, lr := range req.Lines {
		line, err := resolver.Resolve(ctx, req.BusinessID, lr)
		if err != nil {
			return nil, fmt.Errorf("item[%d]: %w", i, err)
		}
		lines = append(lines, line)
		total = total.Add(line.Total())
	}

	// --- Account ---
	account, err := resolveAccount(ctx, store, req.BusinessID, req.TableID, req.ZoneID)
	if err != nil {
		return nil, err
	}
	account, err = store.AddToAccountTotal(ctx, database.AddToAccountTotalParams{
		Amount: decimalToNumeric(total),
		ID:     account.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("add to account total: %w", err)
	}

	// --- Order ---
	order, err := store.CreateOrder(ctx, database.CreateOrderParams{
		BusinessID:    req.BusinessID,
		TableID:       pgUUID(req.TableID),
		AccountID:     account.ID,
		CustomerAlias: pgText(req.CustomerAlias),
		Total:         decimalToNumeric(total),
		Status:        req.Mode.InitialStatus(),
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// --- Lines ---
	items := make([]OrderItemResult, 0, len(lines))
	for i, line := range lines {
		item, err := store.CreateOrderItem(ctx, database.CreateOrderItemParams{
			OrderID:           order.ID,
			Position:          int32(i + 1),
			ProductID:         line.ProductID,
			VariantID:         pgUUID(line.VariantID),
			ProductName:       line.ProductName,
			VariantName:       pgText(line.VariantName),
			Quantity:          line.Quantity,
			UnitPrice:         decimalToNumeric(line.UnitPrice),
			ModifierSurcharge: decimalToNumeric(line.ModifierSurcharge),
			Note:              pgText(line.Note),
			StationID:         pgUUID(line.StationID),
		})
		if err != nil {
			return nil, fmt.Errorf("create order item: %w", err)
		}

		var mods []database.OrderItemModifier
		for _, opt := range line.Modifiers {
			m, err := store.CreateOrderItemModifier(ctx, database.CreateOrderItemModifierParams{
				OrderItemID:      item.ID,
				ModifierOptionID: opt.ID,
				OptionName:       opt.Name,
				ExtraPrice:       opt.ExtraPrice,
			})
			if err != nil {
				return nil, fmt.Errorf("create order item modifier: %w", err)
			}
			mods = append(mods, m)
		}
		items = append(items, OrderItemResult{Item: item, Modifiers: mods})
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	result := &SubmitResult{
		OrderResult: OrderResult{Order: order, Items: items},
		Account:     account,
	}
	if req.Mode.DispatchOnCreate() && s.dispatcher != nil {
		result.Dispatched = s.dispatcher.Dispatch(ctx, order, result.Lines())
	}
	return result, nil
}

// Lines returns just the order_items rows.
func (r *OrderResult) Lines() []database.OrderItem {
	out := make([]database.OrderItem, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, it.Item)
	}
	return out
}

// LineTotal is (unit_price + modifier_surcharge) * quantity of a stored line.
func LineTotal(it database.OrderItem) decimal.Decimal {
	return numericToDecimal(it.UnitPrice).
		Add(numericToDecimal(it.ModifierSurcharge)).
		Mul(decimal.NewFromInt32(it.Quantity)).
		Round(2)
}
