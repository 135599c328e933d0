package service

import (
	"context"
	"errors"
	"testing"

	"github.com/comanda-pos/api/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func TestPriceResolver_UnitPrice(t *testing.T) {
	cat := newTestCatalog()
	plain := cat.product("Limonada", "3.25", uuid.Nil)
	// A variant product whose base price must never leak into the unit price.
	sized := cat.product("Jugo", "9.99", uuid.Nil)
	small := cat.variant(sized, "Chico", "2.00")
	store, _ := defaultStore(cat)
	r := NewPriceResolver(store)

	tests := []struct {
		name string
		req  LineRequest
		unit string
		line string
	}{
		{"base price", LineRequest{ProductID: plain, Quantity: 2}, "3.25", "6.50"},
		{"variant replaces base", LineRequest{ProductID: sized, VariantID: uuid.NullUUID{UUID: small, Valid: true}, Quantity: 3}, "2.00", "6.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := r.Resolve(context.Background(), cat.businessID, tt.req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := line.UnitPrice.StringFixed(2); got != tt.unit {
				t.Errorf("unit price = %s, want %s", got, tt.unit)
			}
			if got := line.Total().StringFixed(2); got != tt.line {
				t.Errorf("line total = %s, want %s", got, tt.line)
			}
		})
	}
}

func TestPriceResolver_ExactDecimalTotals(t *testing.T) {
	cat := newTestCatalog()
	prod := cat.product("Refresco", "0.10", uuid.Nil)
	opt := cat.option("Hielo", "0.20")
	store, _ := defaultStore(cat)

	line, err := NewPriceResolver(store).Resolve(context.Background(), cat.businessID, LineRequest{
		ProductID:         prod,
		ModifierOptionIDs: []uuid.UUID{opt},
		Quantity:          3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !line.Total().Equal(decimal.RequireFromString("0.9")) {
		t.Errorf("total = %s, want 0.90", line.Total())
	}
}

func TestPriceResolver_OtherBusinessProduct(t *testing.T) {
	cat := newTestCatalog()
	prod := cat.product("Cafe", "2.00", uuid.Nil)
	store, _ := defaultStore(cat)

	_, err := NewPriceResolver(store).Resolve(context.Background(), uuid.New(), LineRequest{ProductID: prod, Quantity: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPriceResolver_SnapshotFields(t *testing.T) {
	cat := newTestCatalog()
	station := uuid.New()
	prod := cat.variantProduct("Pizza Americana", station)
	v := cat.variant(prod, "Mediana", "30.00")
	store, _ := defaultStore(cat)

	line, err := NewPriceResolver(store).Resolve(context.Background(), cat.businessID, LineRequest{
		ProductID: prod,
		VariantID: uuid.NullUUID{UUID: v, Valid: true},
		Quantity:  1,
		Note:      "bien cocida",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.ProductName != "Pizza Americana" || line.VariantName != "Mediana" {
		t.Errorf("names = %q/%q", line.ProductName, line.VariantName)
	}
	if !line.StationID.Valid || line.StationID.UUID != station {
		t.Error("station should be copied from the product")
	}
	if line.Note != "bien cocida" || line.Quantity != 1 {
		t.Error("note and quantity should be copied through")
	}
}

func TestPriceResolver_DuplicateOptionsChargedOnce(t *testing.T) {
	cat := newTestCatalog()
	prod := cat.product("Helado", "4.00", uuid.Nil)
	opt := cat.option("Chispas", "0.75")
	store, _ := defaultStore(cat)

	var asked []uuid.UUID
	inner := store.listModifierOptionsByIDsFn
	store.listModifierOptionsByIDsFn = func(ctx context.Context, ids []uuid.UUID) ([]database.ModifierOption, error) {
		asked = ids
		return inner(ctx, ids)
	}

	line, err := NewPriceResolver(store).Resolve(context.Background(), cat.businessID, LineRequest{
		ProductID:         prod,
		ModifierOptionIDs: []uuid.UUID{opt, opt},
		Quantity:          1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(asked) != 1 {
		t.Errorf("expected deduplicated lookup, got %d ids", len(asked))
	}
	if got := line.ModifierSurcharge.StringFixed(2); got != "0.75" {
		t.Errorf("surcharge = %s, want 0.75", got)
	}
}

func TestPriceResolver_StoreErrors(t *testing.T) {
	cat := newTestCatalog()
	prod := cat.product("Cafe", "2.00", uuid.Nil)
	boom := errors.New("boom")

	store, _ := defaultStore(cat)
	store.getProductForOrderFn = func(ctx context.Context, arg database.GetProductForOrderParams) (database.GetProductForOrderRow, error) {
		return database.GetProductForOrderRow{}, boom
	}
	_, err := NewPriceResolver(store).Resolve(context.Background(), cat.businessID, LineRequest{ProductID: prod, Quantity: 1})
	if !errors.Is(err, boom) || errors.Is(err, ErrNotFound) {
		t.Errorf("expected wrapped store error, got %v", err)
	}

	store, _ = defaultStore(cat)
	store.listModifierOptionsByIDsFn = func(ctx context.Context, ids []uuid.UUID) ([]database.ModifierOption, error) {
		return nil, pgx.ErrTxClosed
	}
	_, err = NewPriceResolver(store).Resolve(context.Background(), cat.businessID, LineRequest{
		ProductID:         prod,
		ModifierOptionIDs: []uuid.UUID{uuid.New()},
		Quantity:          1,
	})
	if !errors.Is(err, pgx.ErrTxClosed) {
		t.Errorf("expected wrapped modifier error, got %v", err)
	}
}
