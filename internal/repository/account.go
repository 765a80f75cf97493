package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Account postgres reader of wallet balances
type Account struct {
	runner PgxWithinTransactionRunner
}

// NewAccountRepository creating new Account repository
func NewAccountRepository(runner PgxWithinTransactionRunner) *Account {
	return &Account{runner: runner}
}

// GetBalance wallet balance of the user in asset, zero when the user has no account in it
func (r *Account) GetBalance(ctx context.Context, userID int64, asset string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.runner.QueryRow(ctx, `select balance from accounts where user_id = $1 and asset = $2`, userID, asset).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("account - GetBalance - QueryRow: %w", err)
	}

	return balance, nil
}
