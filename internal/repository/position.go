// Package repository position
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/OVantsevich/Position-Service/internal/model"

	"github.com/jackc/pgx/v5"
)

const positionColumns = `id, user_id, account_id, symbol, asset, contract_type, margin_mode, current_qty, entry_price,
	leverage, position_margin, adjust_margin, tmp_total_fee, take_profit_order_id, stop_loss_order_id,
	liquidation_price, avg_close_price, close_size, last_open_time, operation_id`

// Position postgres entity
type Position struct {
	runner PgxWithinTransactionRunner
}

// NewPositionRepository creating new Position repository
func NewPositionRepository(runner PgxWithinTransactionRunner) *Position {
	return &Position{runner: runner}
}

func scanPosition(row pgx.Row) (*model.Position, error) {
	p := &model.Position{}
	err := row.Scan(&p.ID, &p.UserID, &p.AccountID, &p.Symbol, &p.Asset, &p.ContractType, &p.MarginMode,
		&p.CurrentQty, &p.EntryPrice, &p.Leverage, &p.PositionMargin, &p.AdjustMargin, &p.TmpTotalFee,
		&p.TakeProfitOrderID, &p.StopLossOrderID, &p.LiquidationPrice, &p.AvgClosePrice, &p.CloseSize,
		&p.LastOpenTime, &p.OperationID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func collectPositions(rows pgx.Rows) ([]*model.Position, error) {
	defer rows.Close()
	var positions []*model.Position
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// GetPositionByID get position by id
func (r *Position) GetPositionByID(ctx context.Context, id int64) (*model.Position, error) {
	p, err := scanPosition(r.runner.QueryRow(ctx, `select `+positionColumns+` from positions where id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("position - GetPositionByID - QueryRow: %w", model.ErrPositionNotFound)
		}
		return nil, fmt.Errorf("position - GetPositionByID - QueryRow: %w", err)
	}

	return p, nil
}

// GetUserPositions every position row of the user, flat ones included
func (r *Position) GetUserPositions(ctx context.Context, userID int64) ([]*model.Position, error) {
	rows, err := r.runner.Query(ctx, `select `+positionColumns+` from positions where user_id = $1 order by id`, userID)
	if err != nil {
		return nil, fmt.Errorf("position - GetUserPositions - Query: %w", err)
	}
	positions, err := collectPositions(rows)
	if err != nil {
		return nil, fmt.Errorf("position - GetUserPositions - Scan: %w", err)
	}

	return positions, nil
}

// GetSymbolPositions open positions of every user in symbol
func (r *Position) GetSymbolPositions(ctx context.Context, symbol string) ([]*model.Position, error) {
	rows, err := r.runner.Query(ctx,
		`select `+positionColumns+` from positions where symbol = $1 and current_qty <> 0 order by id`, symbol)
	if err != nil {
		return nil, fmt.Errorf("position - GetSymbolPositions - Query: %w", err)
	}
	positions, err := collectPositions(rows)
	if err != nil {
		return nil, fmt.Errorf("position - GetSymbolPositions - Scan: %w", err)
	}

	return positions, nil
}

// SetTpSlOrders overwrite both take profit and stop loss order pointers, nil clears a pointer
func (r *Position) SetTpSlOrders(ctx context.Context, positionID int64, takeProfitOrderID, stopLossOrderID *int64) error {
	tag, err := r.runner.Exec(ctx,
		`update positions set take_profit_order_id = $1, stop_loss_order_id = $2 where id = $3`,
		takeProfitOrderID, stopLossOrderID, positionID)
	if err != nil {
		return fmt.Errorf("position - SetTpSlOrders - Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("position - SetTpSlOrders - Exec: %w", model.ErrPositionNotFound)
	}

	return nil
}
