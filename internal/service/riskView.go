package service

import (
	"context"
	"fmt"

	"github.com/OVantsevich/Position-Service/internal/model"
	"github.com/OVantsevich/Position-Service/internal/risk"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var hundred = decimal.NewFromInt(100)

// RiskView per position margin, pnl and liquidation figures of a user
type RiskView struct {
	store             *PositionStore
	instrumentService InstrumentService
	accountService    AccountService
	markPriceService  MarkPriceService
}

// NewRiskView constructor
func NewRiskView(store *PositionStore, is InstrumentService, as AccountService, mps MarkPriceService) *RiskView {
	return &RiskView{
		store:             store,
		instrumentService: is,
		accountService:    as,
		markPriceService:  mps,
	}
}

// market symbol data shared by every position of one symbol
type market struct {
	multiplier decimal.Decimal
	tiers      []*model.LeverageMarginTier
	mark       decimal.Decimal
}

// GetPositionRisk risk of every open position of the user in symbol, or in all symbols when symbol is empty
func (v *RiskView) GetPositionRisk(ctx context.Context, userID int64, symbol string) ([]*model.PositionRisk, error) {
	positions, err := v.store.OpenPositions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("riskView - GetPositionRisk - OpenPositions: %w", err)
	}

	markets := make(map[string]*market)
	balances := make(map[string]decimal.Decimal)
	var result []*model.PositionRisk
	for _, p := range positions {
		if symbol != "" && p.Symbol != symbol {
			continue
		}
		m, err := v.market(ctx, markets, p.Symbol)
		if err != nil {
			return nil, fmt.Errorf("riskView - GetPositionRisk - market: %w", err)
		}
		balance, ok := balances[p.Asset]
		if !ok {
			balance, err = v.accountService.GetBalance(ctx, userID, p.Asset)
			if err != nil {
				return nil, fmt.Errorf("riskView - GetPositionRisk - GetBalance: %w", err)
			}
			balances[p.Asset] = balance
		}

		totals := v.crossTotals(ctx, markets, p, positions)
		totals.AccountBalance = balance
		result = append(result, positionRisk(p, m, totals))
	}

	return result, nil
}

func (v *RiskView) market(ctx context.Context, markets map[string]*market, symbol string) (*market, error) {
	if m, ok := markets[symbol]; ok {
		return m, nil
	}
	instrument, err := v.instrumentService.GetInstrument(ctx, symbol)
	if err != nil {
		return nil, err
	}
	tiers, err := v.instrumentService.GetMarginTiers(ctx, symbol)
	if err != nil {
		return nil, err
	}
	mark, err := v.markPriceService.GetMarkPrice(ctx, symbol)
	if err != nil {
		return nil, err
	}
	m := &market{multiplier: instrument.Multiplier, tiers: tiers, mark: mark}
	markets[symbol] = m
	return m, nil
}

// crossTotals folds every other position of the same asset into the shared pool figures:
// cross siblings add their pnl and maintenance margin, isolated siblings their allocated margin.
// A sibling whose market data can not be read is logged and left out.
func (v *RiskView) crossTotals(ctx context.Context, markets map[string]*market, target *model.Position,
	positions []*model.Position) risk.CrossTotals {
	var totals risk.CrossTotals
	for _, sibling := range positions {
		if sibling.ID == target.ID || sibling.Asset != target.Asset {
			continue
		}
		if sibling.IsIsolated() {
			totals.IsolatedAllocated = totals.IsolatedAllocated.Add(risk.AllocatedMargin(sibling, decimal.Zero, decimal.Zero))
			continue
		}
		m, err := v.market(ctx, markets, sibling.Symbol)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"userID":     sibling.UserID,
				"positionID": sibling.ID,
				"symbol":     sibling.Symbol,
			}).Errorf("riskView - crossTotals - market: %v", err)
			continue
		}
		notional := risk.Notional(sibling, m.mark, m.multiplier)
		totals.OtherUnrealizedPnl = totals.OtherUnrealizedPnl.Add(risk.UnrealizedPnl(sibling, m.mark, m.multiplier))
		totals.OtherMaintenanceMargin = totals.OtherMaintenanceMargin.Add(
			risk.MaintenanceMargin(m.tiers, notional, sibling, m.mark, m.multiplier))
	}
	return totals
}

func positionRisk(p *model.Position, m *market, totals risk.CrossTotals) *model.PositionRisk {
	notional := risk.Notional(p, m.mark, m.multiplier)
	allocated := risk.AllocatedMargin(p, m.mark, m.multiplier)
	pnl := risk.UnrealizedPnl(p, m.mark, m.multiplier)

	roe := decimal.Zero
	if !allocated.IsZero() {
		roe = pnl.Div(allocated).Mul(hundred)
	}

	return &model.PositionRisk{
		Position:          p,
		MarkPrice:         m.mark,
		Notional:          notional,
		AllocatedMargin:   allocated,
		UnrealizedPnl:     pnl,
		MaintenanceMargin: risk.MaintenanceMargin(m.tiers, notional, p, m.mark, m.multiplier),
		LiquidationPrice:  risk.LiquidationPrice(m.tiers, p, m.mark, m.multiplier, totals),
		MarginRate:        risk.MarginRate(m.tiers, p, m.mark, m.multiplier, totals),
		Roe:               roe,
	}
}
