package model

import "github.com/shopspring/decimal"

// PositionRisk computed risk view of one position
type PositionRisk struct {
	Position          *Position       `json:"position"`
	MarkPrice         decimal.Decimal `json:"markPrice"`
	Notional          decimal.Decimal `json:"notional"`
	AllocatedMargin   decimal.Decimal `json:"allocatedMargin"`
	UnrealizedPnl     decimal.Decimal `json:"unrealizedPnl"`
	MaintenanceMargin decimal.Decimal `json:"maintenanceMargin"`
	LiquidationPrice  decimal.Decimal `json:"liquidationPrice"`
	MarginRate        decimal.Decimal `json:"marginRate"`
	Roe               decimal.Decimal `json:"roe"`
}
