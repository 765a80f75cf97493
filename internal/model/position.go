// Package model position model
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractType settlement kind of a contract
type ContractType string

// MarginMode margin pool kind of a position
type MarginMode string

const (
	// UsdM linear contract settled in a stable quote asset
	UsdM ContractType = "USD_M"
	// CoinM inverse contract settled in the base asset
	CoinM ContractType = "COIN_M"

	// Cross margin shared by all user positions of one asset
	Cross MarginMode = "CROSS"
	// Isolated margin dedicated to a single position
	Isolated MarginMode = "ISOLATED"
)

// DustQty positions with |currentQty| at or below are treated as flat when listing
var DustQty = decimal.New(1, -8)

// Position model. Sign of CurrentQty is the side: positive long, negative short.
type Position struct {
	ID                int64           `json:"id"`
	UserID            int64           `json:"userId"`
	AccountID         int64           `json:"accountId"`
	Symbol            string          `json:"symbol"`
	Asset             string          `json:"asset"`
	ContractType      ContractType    `json:"contractType"`
	MarginMode        MarginMode      `json:"marginMode"`
	CurrentQty        decimal.Decimal `json:"currentQty"`
	EntryPrice        decimal.Decimal `json:"entryPrice"`
	Leverage          decimal.Decimal `json:"leverage"`
	PositionMargin    decimal.Decimal `json:"positionMargin"`
	AdjustMargin      decimal.Decimal `json:"adjustMargin"`
	TmpTotalFee       decimal.Decimal `json:"tmpTotalFee"`
	TakeProfitOrderID *int64          `json:"takeProfitOrderId"`
	StopLossOrderID   *int64          `json:"stopLossOrderId"`
	LiquidationPrice  decimal.Decimal `json:"liquidationPrice"`
	AvgClosePrice     decimal.Decimal `json:"avgClosePrice"`
	CloseSize         decimal.Decimal `json:"closeSize"`
	LastOpenTime      time.Time       `json:"lastOpenTime"`
	OperationID       int64           `json:"operationId"`
}

// IsFlat true when there is nothing to close
func (p *Position) IsFlat() bool {
	return p.CurrentQty.IsZero()
}

// IsDust true when the position is flat or smaller than DustQty
func (p *Position) IsDust() bool {
	return p.CurrentQty.IsZero() || p.CurrentQty.Abs().LessThanOrEqual(DustQty)
}

// IsLong position side
func (p *Position) IsLong() bool {
	return p.CurrentQty.IsPositive()
}

// Side +1 for long, -1 otherwise
func (p *Position) Side() decimal.Decimal {
	if p.IsLong() {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(-1)
}

// AbsQty position size
func (p *Position) AbsQty() decimal.Decimal {
	return p.CurrentQty.Abs()
}

// CloseSide order side that reduces the position
func (p *Position) CloseSide() OrderSide {
	if p.IsLong() {
		return Sell
	}
	return Buy
}

// OpenSide order side that increases the position
func (p *Position) OpenSide() OrderSide {
	if p.IsLong() {
		return Buy
	}
	return Sell
}

// IsCoinM inverse contract
func (p *Position) IsCoinM() bool {
	return p.ContractType == CoinM
}

// IsIsolated isolated margin mode
func (p *Position) IsIsolated() bool {
	return p.MarginMode == Isolated
}
