// Package risk margin, pnl and liquidation arithmetic of derivatives positions.
// All functions are pure and use exact decimal arithmetic.
package risk

import (
	"github.com/OVantsevich/Position-Service/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CrossTotals aggregates of the sibling positions sharing one asset with the evaluated position.
// The evaluated position itself is never part of the totals.
type CrossTotals struct {
	// AccountBalance wallet balance of the asset
	AccountBalance decimal.Decimal
	// OtherUnrealizedPnl sum of unrealized pnl of sibling cross positions
	OtherUnrealizedPnl decimal.Decimal
	// OtherMaintenanceMargin sum of maintenance margin of sibling cross positions
	OtherMaintenanceMargin decimal.Decimal
	// IsolatedAllocated sum of allocated margin of sibling isolated positions
	IsolatedAllocated decimal.Decimal
}

// crossWallet balance available to the cross pool
func (t CrossTotals) crossWallet() decimal.Decimal {
	return t.AccountBalance.Sub(t.IsolatedAllocated)
}

// Notional position size used for tier selection, quote units for USD_M and base units for COIN_M
func Notional(p *model.Position, markPrice, multiplier decimal.Decimal) decimal.Decimal {
	if p.IsCoinM() {
		return div(p.AbsQty().Mul(multiplier), markPrice)
	}
	return p.AbsQty().Mul(markPrice)
}

// AllocatedMargin margin held by the position
func AllocatedMargin(p *model.Position, markPrice, multiplier decimal.Decimal) decimal.Decimal {
	return For(p).AllocatedMargin(p, markPrice, multiplier)
}

// UnrealizedPnl pnl of the position at markPrice
func UnrealizedPnl(p *model.Position, markPrice, multiplier decimal.Decimal) decimal.Decimal {
	return For(p).UnrealizedPnl(p, markPrice, multiplier)
}

// SelectTier the last tier whose [min, max] contains notional, or the last tier of the table
// when none does. The table is walked in the given order.
func SelectTier(tiers []*model.LeverageMarginTier, notional decimal.Decimal) *model.LeverageMarginTier {
	if len(tiers) == 0 {
		return nil
	}
	var selected *model.LeverageMarginTier
	for _, t := range tiers {
		if t.Contains(notional) {
			selected = t
		}
	}
	if selected == nil {
		selected = tiers[len(tiers)-1]
	}
	return selected
}

// MaintenanceMargin maintenance margin of the position under the tier selected by notional
func MaintenanceMargin(tiers []*model.LeverageMarginTier, notional decimal.Decimal, p *model.Position,
	markPrice, multiplier decimal.Decimal) decimal.Decimal {
	return For(p).MaintenanceMargin(p, SelectTier(tiers, notional), markPrice, multiplier)
}

// LiquidationPrice mark price at which the margin balance equals the maintenance margin
func LiquidationPrice(tiers []*model.LeverageMarginTier, p *model.Position, markPrice, multiplier decimal.Decimal,
	totals CrossTotals) decimal.Decimal {
	tier := SelectTier(tiers, Notional(p, markPrice, multiplier))
	return For(p).LiquidationPrice(p, tier, multiplier, totals)
}

// MarginRate maintenance margin / margin balance * 100, zero when the balance is zero
func MarginRate(tiers []*model.LeverageMarginTier, p *model.Position, markPrice, multiplier decimal.Decimal,
	totals CrossTotals) decimal.Decimal {
	s := For(p)
	tier := SelectTier(tiers, Notional(p, markPrice, multiplier))
	maintenance := s.TotalMaintenance(p, tier, markPrice, multiplier, totals)
	balance := s.MarginBalance(p, markPrice, multiplier, totals)
	return div(maintenance, balance).Mul(hundred)
}

func div(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

func mmRate(tier *model.LeverageMarginTier) decimal.Decimal {
	if tier == nil {
		return decimal.Zero
	}
	return tier.MaintenanceMarginRate.Div(hundred)
}

func mmAmount(tier *model.LeverageMarginTier) decimal.Decimal {
	if tier == nil {
		return decimal.Zero
	}
	return tier.MaintenanceAmount
}

// nonNegative liquidation prices below zero mean the position cannot be liquidated
func nonNegative(price decimal.Decimal) decimal.Decimal {
	if price.IsNegative() {
		return decimal.Zero
	}
	return price
}
