package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/OVantsevich/Position-Service/internal/model"

	"github.com/jackc/pgx/v5"
)

const orderColumns = `id, user_id, account_id, position_id, symbol, side, type, status, price, quantity, leverage,
	contract_type, margin_mode, is_reduce_only, is_close_position_order, is_bot_order, tp_sl_type, tp_sl_price,
	trigger, stop_condition, linked_order_id, created_at`

// Order postgres entity
type Order struct {
	runner PgxWithinTransactionRunner
}

// NewOrderRepository creating new Order repository
func NewOrderRepository(runner PgxWithinTransactionRunner) *Order {
	return &Order{runner: runner}
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	o := &model.Order{}
	err := row.Scan(&o.ID, &o.UserID, &o.AccountID, &o.PositionID, &o.Symbol, &o.Side, &o.Type, &o.Status,
		&o.Price, &o.Quantity, &o.Leverage, &o.ContractType, &o.MarginMode, &o.IsReduceOnly,
		&o.IsClosePositionOrder, &o.IsBotOrder, &o.TpSLType, &o.TpSLPrice, &o.Trigger, &o.StopCondition,
		&o.LinkedOrderID, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// CreateOrder insert order, ID and CreatedAt are assigned by the store
func (r *Order) CreateOrder(ctx context.Context, order *model.Order) (*model.Order, error) {
	err := r.runner.QueryRow(ctx,
		`insert into orders (user_id, account_id, position_id, symbol, side, type, status, price, quantity, leverage,
			contract_type, margin_mode, is_reduce_only, is_close_position_order, is_bot_order, tp_sl_type, tp_sl_price,
			trigger, stop_condition, linked_order_id)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		returning id, created_at`,
		order.UserID, order.AccountID, order.PositionID, order.Symbol, order.Side, order.Type, order.Status,
		order.Price, order.Quantity, order.Leverage, order.ContractType, order.MarginMode, order.IsReduceOnly,
		order.IsClosePositionOrder, order.IsBotOrder, order.TpSLType, order.TpSLPrice, order.Trigger,
		order.StopCondition, order.LinkedOrderID).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("order - CreateOrder - QueryRow: %w", err)
	}

	return order, nil
}

// GetOrderByID get order by id
func (r *Order) GetOrderByID(ctx context.Context, id int64) (*model.Order, error) {
	o, err := scanOrder(r.runner.QueryRow(ctx, `select `+orderColumns+` from orders where id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order - GetOrderByID - QueryRow: %w", model.ErrOrderNotFound)
		}
		return nil, fmt.Errorf("order - GetOrderByID - QueryRow: %w", err)
	}

	return o, nil
}

// GetOpenOrders orders of the user in contractType that the engine may still fill or trigger
func (r *Order) GetOpenOrders(ctx context.Context, userID int64, contractType model.ContractType) ([]*model.Order, error) {
	statuses := make([]string, len(model.OpenStatuses))
	for i, s := range model.OpenStatuses {
		statuses[i] = string(s)
	}
	rows, err := r.runner.Query(ctx,
		`select `+orderColumns+` from orders where user_id = $1 and contract_type = $2 and status = any($3) order by id`,
		userID, string(contractType), statuses)
	if err != nil {
		return nil, fmt.Errorf("order - GetOpenOrders - Query: %w", err)
	}
	defer rows.Close()

	var orders []*model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("order - GetOpenOrders - Scan: %w", err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("order - GetOpenOrders - Rows: %w", err)
	}

	return orders, nil
}

// LinkOrders cross-link two legs created together
func (r *Order) LinkOrders(ctx context.Context, firstID, secondID int64) error {
	_, err := r.runner.Exec(ctx,
		`update orders set linked_order_id = case when id = $1::bigint then $2::bigint else $1::bigint end
		where id in ($1::bigint, $2::bigint)`,
		firstID, secondID)
	if err != nil {
		return fmt.Errorf("order - LinkOrders - Exec: %w", err)
	}

	return nil
}
