package service

import (
	"context"

	"github.com/OVantsevich/Position-Service/internal/model"

	"github.com/shopspring/decimal"
)

// Engine inbound surface of the position engine
type Engine struct {
	store     *PositionStore
	lifecycle *Lifecycle
	riskView  *RiskView
	relay     *Relay
}

// NewEngine constructor
func NewEngine(store *PositionStore, lifecycle *Lifecycle, riskView *RiskView, relay *Relay) *Engine {
	return &Engine{store: store, lifecycle: lifecycle, riskView: riskView, relay: relay}
}

// Run deliver enqueued commands until ctx is done
func (e *Engine) Run(ctx context.Context) {
	e.relay.Run(ctx)
}

// ListPositions open positions of the user
func (e *Engine) ListPositions(ctx context.Context, userID int64, contractType model.ContractType, symbol string) ([]*model.Position, error) {
	return e.store.ListPositions(ctx, userID, contractType, symbol)
}

// ClosePosition close quantity of a position
func (e *Engine) ClosePosition(ctx context.Context, userID, positionID int64, quantity decimal.Decimal,
	orderType model.OrderType, limitPrice decimal.Decimal) (*model.Order, error) {
	return e.lifecycle.ClosePosition(ctx, userID, positionID, quantity, orderType, limitPrice)
}

// CloseAllPositions close every position of the user in contractType
func (e *Engine) CloseAllPositions(ctx context.Context, userID int64, contractType model.ContractType) ([]*model.Order, error) {
	return e.lifecycle.CloseAllPositions(ctx, userID, contractType)
}

// CloseSymbolPositions close every position in symbol
func (e *Engine) CloseSymbolPositions(ctx context.Context, symbol string, referencePrice decimal.Decimal) ([]*model.Order, error) {
	return e.lifecycle.CloseSymbolPositions(ctx, symbol, referencePrice)
}

// AdjustMargin assign isolated margin
func (e *Engine) AdjustMargin(ctx context.Context, userID, positionID int64, assignedMarginValue decimal.Decimal) error {
	return e.lifecycle.AdjustMargin(ctx, userID, positionID, assignedMarginValue)
}

// AttachTpSl attach take profit and stop loss legs
func (e *Engine) AttachTpSl(ctx context.Context, userID, positionID int64, request *model.TpSlRequest) ([]*model.Order, error) {
	return e.lifecycle.AttachTpSl(ctx, userID, positionID, request)
}

// RemoveTpSl cancel one take profit or stop loss leg
func (e *Engine) RemoveTpSl(ctx context.Context, userID, positionID int64, takeProfitOrderID, stopLossOrderID *int64) error {
	return e.lifecycle.RemoveTpSl(ctx, userID, positionID, takeProfitOrderID, stopLossOrderID)
}

// GetPositionRisk risk figures of the user positions
func (e *Engine) GetPositionRisk(ctx context.Context, userID int64, symbol string) ([]*model.PositionRisk, error) {
	return e.riskView.GetPositionRisk(ctx, userID, symbol)
}
