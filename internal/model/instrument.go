package model

import "github.com/shopspring/decimal"

// Instrument contract specification
type Instrument struct {
	Symbol       string          `json:"symbol"`
	Asset        string          `json:"asset"`
	ContractType ContractType    `json:"contractType"`
	Multiplier   decimal.Decimal `json:"multiplier"`
	MaxPrice     decimal.Decimal `json:"maxPrice"`
}

// TradingRules per-symbol price rules. Ratios are fractions of the mark price.
type TradingRules struct {
	Symbol     string          `json:"symbol"`
	MinPrice   decimal.Decimal `json:"minPrice"`
	FloorRatio decimal.Decimal `json:"floorRatio"`
	CapRatio   decimal.Decimal `json:"capRatio"`
}

// LeverageMarginTier notional bracket. MaintenanceMarginRate is a percentage.
type LeverageMarginTier struct {
	Symbol                string          `json:"symbol"`
	Min                   decimal.Decimal `json:"min"`
	Max                   decimal.Decimal `json:"max"`
	MaintenanceMarginRate decimal.Decimal `json:"maintenanceMarginRate"`
	MaintenanceAmount     decimal.Decimal `json:"maintenanceAmount"`
}

// Contains min <= notional <= max
func (t *LeverageMarginTier) Contains(notional decimal.Decimal) bool {
	return notional.GreaterThanOrEqual(t.Min) && notional.LessThanOrEqual(t.Max)
}
