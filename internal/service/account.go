package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/comanda-pos/api/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountStore is the account access needed while submitting an order.
// Every call runs inside the submission transaction.
type AccountStore interface {
	GetOpenAccountForUpdate(ctx context.Context, arg database.GetOpenAccountForUpdateParams) (database.Account, error)
	CreateOpenAccount(ctx context.Context, arg database.CreateOpenAccountParams) (database.Account, error)
	AddToAccountTotal(ctx context.Context, arg database.AddToAccountTotalParams) (database.Account, error)
}

// resolveAccount returns the table's OPEN account, locked for update, or
// opens one. The partial unique index accounts_one_open_per_table makes a
// racing insert fall through to the re-select instead of creating a second
// OPEN account. Orders without a table always get an account of their own.
func resolveAccount(ctx context.Context, store AccountStore, businessID uuid.UUID, tableID, zoneID uuid.NullUUID) (database.Account, error) {
	create := database.CreateOpenAccountParams{
		BusinessID: businessID,
		TableID:    pgUUID(tableID),
		ZoneID:     pgUUID(zoneID),
	}

	if !tableID.Valid {
		acc, err := store.CreateOpenAccount(ctx, create)
		if err != nil {
			return database.Account{}, fmt.Errorf("create account: %w", err)
		}
		return acc, nil
	}

	lookup := database.GetOpenAccountForUpdateParams{
		BusinessID: businessID,
		TableID:    pgUUID(tableID),
	}

	acc, err := store.GetOpenAccountForUpdate(ctx, lookup)
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return database.Account{}, fmt.Errorf("get open account: %w", err)
	}

	acc, err = store.CreateOpenAccount(ctx, create)
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return database.Account{}, fmt.Errorf("create account: %w", err)
	}

	// Lost the race: another submission opened the account and committed.
	acc, err = store.GetOpenAccountForUpdate(ctx, lookup)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The table's OPEN account is not this business's.
			return database.Account{}, fmt.Errorf("table %s: %w", tableID.UUID, ErrUnauthorized)
		}
		return database.Account{}, fmt.Errorf("get open account after conflict: %w", err)
	}
	return acc, nil
}
