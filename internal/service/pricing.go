package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/comanda-pos/api/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CatalogStore is the read-only catalog access the price resolver needs.
type CatalogStore interface {
	GetProductForOrder(ctx context.Context, arg database.GetProductForOrderParams) (database.GetProductForOrderRow, error)
	GetVariantForOrder(ctx context.Context, id uuid.UUID) (database.ProductVariant, error)
	ListModifierOptionsByIDs(ctx context.Context, ids []uuid.UUID) ([]database.ModifierOption, error)
}

// LineRequest is one requested order line.
type LineRequest struct {
	ProductID         uuid.UUID
	VariantID         uuid.NullUUID
	ModifierOptionIDs []uuid.UUID
	Quantity          int32
	Note              string
}

// ResolvedLine is the priced snapshot of a line. Prices are copied out of the
// catalog so later catalog edits never change an existing order.
type ResolvedLine struct {
	ProductID         uuid.UUID
	VariantID         uuid.NullUUID
	ProductName       string
	VariantName       string
	Quantity          int32
	UnitPrice         decimal.Decimal
	ModifierSurcharge decimal.Decimal
	Modifiers         []database.ModifierOption
	Note              string
	StationID         uuid.NullUUID
}

// Total is (unit price + per-unit surcharge) * quantity, in cents precision.
func (l ResolvedLine) Total() decimal.Decimal {
	return l.UnitPrice.Add(l.ModifierSurcharge).Mul(decimal.NewFromInt32(l.Quantity)).Round(2)
}

// PriceResolver turns line requests into ResolvedLines. It never writes.
type PriceResolver struct {
	store CatalogStore
}

func NewPriceResolver(store CatalogStore) *PriceResolver {
	return &PriceResolver{store: store}
}

// Resolve prices a single line for the given business.
func (r *PriceResolver) Resolve(ctx context.Context, businessID uuid.UUID, req LineRequest) (ResolvedLine, error) {
	if req.Quantity < 1 {
		return ResolvedLine{}, ErrInvalidQuantity
	}

	product, err := r.store.GetProductForOrder(ctx, database.GetProductForOrderParams{
		ID:         req.ProductID,
		BusinessID: businessID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ResolvedLine{}, fmt.Errorf("product %s: %w", req.ProductID, ErrNotFound)
		}
		return ResolvedLine{}, fmt.Errorf("get product: %w", err)
	}

	line := ResolvedLine{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    req.Quantity,
		UnitPrice:   numericToDecimal(product.BasePrice),
		Note:        req.Note,
		StationID:   nullUUID(product.StationID),
	}

	switch {
	case req.VariantID.Valid:
		variant, err := r.store.GetVariantForOrder(ctx, req.VariantID.UUID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return ResolvedLine{}, fmt.Errorf("get variant: %w", err)
		}
		if err != nil || variant.ProductID != product.ID {
			return ResolvedLine{}, fmt.Errorf("variant %s: %w", req.VariantID.UUID, ErrVariantMismatch)
		}
		line.VariantID = req.VariantID
		line.VariantName = variant.Name
		line.UnitPrice = numericToDecimal(variant.Price)
	case product.HasVariants:
		return ResolvedLine{}, fmt.Errorf("product %s: %w", product.Name, ErrVariantRequired)
	}

	if ids := uniqueIDs(req.ModifierOptionIDs); len(ids) > 0 {
		options, err := r.store.ListModifierOptionsByIDs(ctx, ids)
		if err != nil {
			return ResolvedLine{}, fmt.Errorf("list modifier options: %w", err)
		}
		// Unknown option ids are absent from options and cost nothing.
		surcharge := decimal.Zero
		for _, opt := range options {
			surcharge = surcharge.Add(numericToDecimal(opt.ExtraPrice))
		}
		line.ModifierSurcharge = surcharge
		line.Modifiers = options
	}

	return line, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
