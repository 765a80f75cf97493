package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/OVantsevich/Position-Service/internal/model"

	"github.com/jackc/pgx/v5"
)

// Instrument postgres reader of contract specifications, trading rules and margin tiers
type Instrument struct {
	runner PgxWithinTransactionRunner
}

// NewInstrumentRepository creating new Instrument repository
func NewInstrumentRepository(runner PgxWithinTransactionRunner) *Instrument {
	return &Instrument{runner: runner}
}

// GetInstrument get instrument by symbol
func (r *Instrument) GetInstrument(ctx context.Context, symbol string) (*model.Instrument, error) {
	i := &model.Instrument{}
	err := r.runner.QueryRow(ctx,
		`select symbol, asset, contract_type, multiplier, max_price from instruments where symbol = $1`, symbol).Scan(
		&i.Symbol, &i.Asset, &i.ContractType, &i.Multiplier, &i.MaxPrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("instrument - GetInstrument - QueryRow: unknown symbol %s", symbol)
		}
		return nil, fmt.Errorf("instrument - GetInstrument - QueryRow: %w", err)
	}

	return i, nil
}

// GetTradingRules get trading rules by symbol
func (r *Instrument) GetTradingRules(ctx context.Context, symbol string) (*model.TradingRules, error) {
	t := &model.TradingRules{}
	err := r.runner.QueryRow(ctx,
		`select symbol, min_price, floor_ratio, cap_ratio from trading_rules where symbol = $1`, symbol).Scan(
		&t.Symbol, &t.MinPrice, &t.FloorRatio, &t.CapRatio)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("instrument - GetTradingRules - QueryRow: no trading rules for %s", symbol)
		}
		return nil, fmt.Errorf("instrument - GetTradingRules - QueryRow: %w", err)
	}

	return t, nil
}

// GetMarginTiers tier table of symbol in stored order
func (r *Instrument) GetMarginTiers(ctx context.Context, symbol string) ([]*model.LeverageMarginTier, error) {
	rows, err := r.runner.Query(ctx,
		`select symbol, min, max, maintenance_margin_rate, maintenance_amount
		from leverage_margin_tiers where symbol = $1 order by id`, symbol)
	if err != nil {
		return nil, fmt.Errorf("instrument - GetMarginTiers - Query: %w", err)
	}
	defer rows.Close()

	var tiers []*model.LeverageMarginTier
	for rows.Next() {
		t := &model.LeverageMarginTier{}
		if err = rows.Scan(&t.Symbol, &t.Min, &t.Max, &t.MaintenanceMarginRate, &t.MaintenanceAmount); err != nil {
			return nil, fmt.Errorf("instrument - GetMarginTiers - Scan: %w", err)
		}
		tiers = append(tiers, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("instrument - GetMarginTiers - Rows: %w", err)
	}

	return tiers, nil
}
