package risk

import (
	"github.com/OVantsevich/Position-Service/internal/model"

	"github.com/shopspring/decimal"
)

// Strategy formulas of one (contract type, margin mode) combination
type Strategy interface {
	AllocatedMargin(p *model.Position, markPrice, multiplier decimal.Decimal) decimal.Decimal
	UnrealizedPnl(p *model.Position, markPrice, multiplier decimal.Decimal) decimal.Decimal
	MaintenanceMargin(p *model.Position, tier *model.LeverageMarginTier, markPrice, multiplier decimal.Decimal) decimal.Decimal
	LiquidationPrice(p *model.Position, tier *model.LeverageMarginTier, multiplier decimal.Decimal, totals CrossTotals) decimal.Decimal
	// MarginBalance margin backing the position at markPrice
	MarginBalance(p *model.Position, markPrice, multiplier decimal.Decimal, totals CrossTotals) decimal.Decimal
	// TotalMaintenance maintenance margin charged against MarginBalance
	TotalMaintenance(p *model.Position, tier *model.LeverageMarginTier, markPrice, multiplier decimal.Decimal, totals CrossTotals) decimal.Decimal
}

var (
	isolatedUsdM  Strategy = isolatedLinear{}
	isolatedCoinM Strategy = isolatedInverse{}
	crossUsdM     Strategy = crossLinear{}
	crossCoinM    Strategy = crossInverse{}
)

// For strategy matching the position contract type and margin mode
func For(p *model.Position) Strategy {
	switch {
	case p.IsIsolated() && p.IsCoinM():
		return isolatedCoinM
	case p.IsIsolated():
		return isolatedUsdM
	case p.IsCoinM():
		return crossCoinM
	default:
		return crossUsdM
	}
}

// linear USD_M settlement
type linear struct{}

func (linear) UnrealizedPnl(p *model.Position, markPrice, _ decimal.Decimal) decimal.Decimal {
	return p.AbsQty().Mul(markPrice.Sub(p.EntryPrice)).Mul(p.Side())
}

func (linear) MaintenanceMargin(p *model.Position, tier *model.LeverageMarginTier, markPrice, _ decimal.Decimal) decimal.Decimal {
	return p.AbsQty().Mul(markPrice).Mul(mmRate(tier)).Sub(mmAmount(tier))
}

// inverse COIN_M settlement
type inverse struct{}

func (inverse) UnrealizedPnl(p *model.Position, markPrice, multiplier decimal.Decimal) decimal.Decimal {
	if p.EntryPrice.IsZero() || markPrice.IsZero() {
		return decimal.Zero
	}
	one := decimal.NewFromInt(1)
	return p.AbsQty().Mul(multiplier).Mul(one.Div(p.EntryPrice).Sub(one.Div(markPrice))).Mul(p.Side())
}

func (inverse) MaintenanceMargin(p *model.Position, tier *model.LeverageMarginTier, markPrice, multiplier decimal.Decimal) decimal.Decimal {
	return p.AbsQty().Mul(div(multiplier, markPrice)).Mul(mmRate(tier)).Sub(mmAmount(tier))
}

// isolated margin is the stored position margin, not price derived
func isolatedAllocated(p *model.Position) decimal.Decimal {
	return p.PositionMargin.Add(p.AdjustMargin).Add(p.TmpTotalFee)
}

type isolatedLinear struct{ linear }

func (isolatedLinear) AllocatedMargin(p *model.Position, _, _ decimal.Decimal) decimal.Decimal {
	return isolatedAllocated(p)
}

// LiquidationPrice P = (A + ma - s*Q*E) / (Q*mmr - s*Q)
func (isolatedLinear) LiquidationPrice(p *model.Position, tier *model.LeverageMarginTier, _ decimal.Decimal, _ CrossTotals) decimal.Decimal {
	qty, side := p.AbsQty(), p.Side()
	numerator := isolatedAllocated(p).Add(mmAmount(tier)).Sub(side.Mul(qty).Mul(p.EntryPrice))
	denominator := qty.Mul(mmRate(tier)).Sub(side.Mul(qty))
	return nonNegative(div(numerator, denominator))
}

func (s isolatedLinear) MarginBalance(p *model.Position, markPrice, multiplier decimal.Decimal, _ CrossTotals) decimal.Decimal {
	return isolatedAllocated(p).Add(s.UnrealizedPnl(p, markPrice, multiplier))
}

func (s isolatedLinear) TotalMaintenance(p *model.Position, tier *model.LeverageMarginTier, markPrice, multiplier decimal.Decimal, _ CrossTotals) decimal.Decimal {
	return s.MaintenanceMargin(p, tier, markPrice, multiplier)
}

type isolatedInverse struct{ inverse }

func (isolatedInverse) AllocatedMargin(p *model.Position, _, _ decimal.Decimal) decimal.Decimal {
	return isolatedAllocated(p)
}

// LiquidationPrice P = Q*M*(mmr + s) / (A + ma + s*Q*M/E)
func (isolatedInverse) LiquidationPrice(p *model.Position, tier *model.LeverageMarginTier, multiplier decimal.Decimal, _ CrossTotals) decimal.Decimal {
	qty, side := p.AbsQty(), p.Side()
	contracts := qty.Mul(multiplier)
	numerator := contracts.Mul(mmRate(tier).Add(side))
	denominator := isolatedAllocated(p).Add(mmAmount(tier)).Add(side.Mul(div(contracts, p.EntryPrice)))
	return nonNegative(div(numerator, denominator))
}

func (s isolatedInverse) MarginBalance(p *model.Position, markPrice, multiplier decimal.Decimal, _ CrossTotals) decimal.Decimal {
	return isolatedAllocated(p).Add(s.UnrealizedPnl(p, markPrice, multiplier))
}

func (s isolatedInverse) TotalMaintenance(p *model.Position, tier *model.LeverageMarginTier, markPrice, multiplier decimal.Decimal, _ CrossTotals) decimal.Decimal {
	return s.MaintenanceMargin(p, tier, markPrice, multiplier)
}

type crossLinear struct{ linear }

// AllocatedMargin |Q| * mark / leverage
func (crossLinear) AllocatedMargin(p *model.Position, markPrice, _ decimal.Decimal) decimal.Decimal {
	return div(p.AbsQty().Mul(markPrice), p.Leverage)
}

// LiquidationPrice P = (W + U - MM + ma - s*Q*E) / (Q*mmr - s*Q)
// with W the cross wallet, U and MM the sibling cross pnl and maintenance.
func (crossLinear) LiquidationPrice(p *model.Position, tier *model.LeverageMarginTier, _ decimal.Decimal, totals CrossTotals) decimal.Decimal {
	qty, side := p.AbsQty(), p.Side()
	pool := totals.crossWallet().Add(totals.OtherUnrealizedPnl).Sub(totals.OtherMaintenanceMargin)
	numerator := pool.Add(mmAmount(tier)).Sub(side.Mul(qty).Mul(p.EntryPrice))
	denominator := qty.Mul(mmRate(tier)).Sub(side.Mul(qty))
	return nonNegative(div(numerator, denominator))
}

func (s crossLinear) MarginBalance(p *model.Position, markPrice, multiplier decimal.Decimal, totals CrossTotals) decimal.Decimal {
	return totals.crossWallet().Add(totals.OtherUnrealizedPnl).Add(s.UnrealizedPnl(p, markPrice, multiplier))
}

func (s crossLinear) TotalMaintenance(p *model.Position, tier *model.LeverageMarginTier, markPrice, multiplier decimal.Decimal, totals CrossTotals) decimal.Decimal {
	return totals.OtherMaintenanceMargin.Add(s.MaintenanceMargin(p, tier, markPrice, multiplier))
}

type crossInverse struct{ inverse }

// AllocatedMargin |Q| * M / (leverage * mark)
func (crossInverse) AllocatedMargin(p *model.Position, markPrice, multiplier decimal.Decimal) decimal.Decimal {
	return div(p.AbsQty().Mul(multiplier), p.Leverage.Mul(markPrice))
}

// LiquidationPrice P = Q*M*(mmr + s) / (W + U - MM + ma + s*Q*M/E)
func (crossInverse) LiquidationPrice(p *model.Position, tier *model.LeverageMarginTier, multiplier decimal.Decimal, totals CrossTotals) decimal.Decimal {
	qty, side := p.AbsQty(), p.Side()
	contracts := qty.Mul(multiplier)
	pool := totals.crossWallet().Add(totals.OtherUnrealizedPnl).Sub(totals.OtherMaintenanceMargin)
	numerator := contracts.Mul(mmRate(tier).Add(side))
	denominator := pool.Add(mmAmount(tier)).Add(side.Mul(div(contracts, p.EntryPrice)))
	return nonNegative(div(numerator, denominator))
}

func (s crossInverse) MarginBalance(p *model.Position, markPrice, multiplier decimal.Decimal, totals CrossTotals) decimal.Decimal {
	return totals.crossWallet().Add(totals.OtherUnrealizedPnl).Add(s.UnrealizedPnl(p, markPrice, multiplier))
}

func (s crossInverse) TotalMaintenance(p *model.Position, tier *model.LeverageMarginTier, markPrice, multiplier decimal.Decimal, totals CrossTotals) decimal.Decimal {
	return totals.OtherMaintenanceMargin.Add(s.MaintenanceMargin(p, tier, markPrice, multiplier))
}
