// Package model order model
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderSide buy or sell
type OrderSide string

// OrderType market or limit
type OrderType string

// OrderStatus order lifecycle status owned by the matching engine
type OrderStatus string

// TpSLType kind of a conditional leg
type TpSLType string

// StopCondition trigger direction of a conditional leg
type StopCondition string

// TriggerType price source a conditional leg is triggered by
type TriggerType string

const (
	Buy  OrderSide = "BUY"
	Sell OrderSide = "SELL"

	Market OrderType = "MARKET"
	Limit  OrderType = "LIMIT"

	OrderPending       OrderStatus = "PENDING"
	OrderActive        OrderStatus = "ACTIVE"
	OrderUntriggered   OrderStatus = "UNTRIGGER"
	OrderPartialFilled OrderStatus = "PARTIAL_FILLED"
	OrderFilled        OrderStatus = "FILLED"
	OrderCanceled      OrderStatus = "CANCELED"

	TakeProfitMarket TpSLType = "TAKE_PROFIT_MARKET"
	StopMarket       TpSLType = "STOP_MARKET"

	GT StopCondition = "GT"
	LT StopCondition = "LT"

	TriggerLast  TriggerType = "LAST"
	TriggerMark  TriggerType = "MARK"
	TriggerIndex TriggerType = "INDEX"
)

// OpenStatuses statuses of orders still able to trade
var OpenStatuses = []OrderStatus{OrderPending, OrderActive, OrderUntriggered, OrderPartialFilled}

// Opposite other side
func (s OrderSide) Opposite() OrderSide {
	if s == Buy {
		return Sell
	}
	return Buy
}

// Valid known trigger type
func (t TriggerType) Valid() bool {
	switch t {
	case TriggerLast, TriggerMark, TriggerIndex:
		return true
	}
	return false
}

// Order model
type Order struct {
	ID                   int64           `json:"id"`
	UserID               int64           `json:"userId"`
	AccountID            int64           `json:"accountId"`
	PositionID           int64           `json:"positionId,omitempty"`
	Symbol               string          `json:"symbol"`
	Side                 OrderSide       `json:"side"`
	Type                 OrderType       `json:"type"`
	Status               OrderStatus     `json:"status"`
	Price                decimal.Decimal `json:"price"`
	Quantity             decimal.Decimal `json:"quantity"`
	Leverage             decimal.Decimal `json:"leverage"`
	ContractType         ContractType    `json:"contractType"`
	MarginMode           MarginMode      `json:"marginMode"`
	IsReduceOnly         bool            `json:"isReduceOnly"`
	IsClosePositionOrder bool            `json:"isClosePositionOrder"`
	IsBotOrder           bool            `json:"isBotOrder"`
	TpSLType             TpSLType        `json:"tpSLType,omitempty"`
	TpSLPrice            decimal.Decimal `json:"tpSLPrice"`
	Trigger              TriggerType     `json:"trigger,omitempty"`
	StopCondition        StopCondition   `json:"stopCondition,omitempty"`
	LinkedOrderID        *int64          `json:"linkedOrderId"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// IsTerminal the engine will not touch this order again
func (o *Order) IsTerminal() bool {
	return o.Status == OrderFilled || o.Status == OrderCanceled
}
