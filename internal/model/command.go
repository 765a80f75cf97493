package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

// CommandCode matching engine command kind
type CommandCode string

const (
	PlaceOrder           CommandCode = "PLACE_ORDER"
	CancelOrder          CommandCode = "CANCEL_ORDER"
	AdjustMarginPosition CommandCode = "ADJUST_MARGIN_POSITION"
	AdjustTpSl           CommandCode = "ADJUST_TP_SL"
)

// Command envelope sent to the matching engine input stream.
// RequestID stays the same across redeliveries of one command.
type Command struct {
	ID        int64               `json:"-"`
	RequestID string              `json:"requestId"`
	Code      CommandCode         `json:"code"`
	Data      jsoniter.RawMessage `json:"data"`
	CreatedAt time.Time           `json:"createdAt"`
}

// NewCommand encodes data into a fresh envelope
func NewCommand(code CommandCode, data interface{}) (*Command, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("command - NewCommand - Marshal: %w", err)
	}
	return &Command{
		RequestID: uuid.NewString(),
		Code:      code,
		Data:      raw,
		CreatedAt: time.Now(),
	}, nil
}

// CancelOrderData CANCEL_ORDER payload
type CancelOrderData struct {
	OrderID      int64        `json:"orderId"`
	UserID       int64        `json:"userId"`
	Symbol       string       `json:"symbol"`
	ContractType ContractType `json:"contractType"`
}

// AdjustMarginData ADJUST_MARGIN_POSITION payload
type AdjustMarginData struct {
	UserID              int64           `json:"userId"`
	AccountID           int64           `json:"accountId"`
	PositionID          int64           `json:"positionId"`
	Symbol              string          `json:"symbol"`
	AssignedMarginValue decimal.Decimal `json:"assignedMarginValue"`
}

// TpSlAction what the engine does with a leg
type TpSlAction string

const (
	TpSlPlace  TpSlAction = "PLACE"
	TpSlCancel TpSlAction = "CANCEL"
)

// TpSlLeg one take-profit or stop-loss leg of ADJUST_TP_SL
type TpSlLeg struct {
	Action  TpSlAction `json:"action"`
	OrderID int64      `json:"orderId"`
	Order   *Order     `json:"order,omitempty"`
}

// AdjustTpSlData ADJUST_TP_SL payload; absent legs are untouched
type AdjustTpSlData struct {
	UserID     int64    `json:"userId"`
	PositionID int64    `json:"positionId"`
	Symbol     string   `json:"symbol"`
	TakeProfit *TpSlLeg `json:"takeProfit,omitempty"`
	StopLoss   *TpSlLeg `json:"stopLoss,omitempty"`
}
