package service

import (
	"context"
	"errors"
	"testing"

	"github.com/OVantsevich/Position-Service/internal/model"
	"github.com/OVantsevich/Position-Service/internal/risk"
	"github.com/OVantsevich/Position-Service/internal/service/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testTiers = []*model.LeverageMarginTier{
	{Min: decimal.Zero, Max: decimal.NewFromInt(50000), MaintenanceMarginRate: decimal.RequireFromString("0.5"), MaintenanceAmount: decimal.Zero},
	{Min: decimal.NewFromInt(50000), Max: decimal.NewFromInt(1000000), MaintenanceMarginRate: decimal.NewFromInt(1), MaintenanceAmount: decimal.NewFromInt(250)},
}

type riskMocks struct {
	positions   *mocks.PositionRepository
	cache       *mocks.PositionCache
	instruments *mocks.InstrumentService
	accounts    *mocks.AccountService
	marks       *mocks.MarkPriceService
}

func newTestRiskView(t *testing.T) (*RiskView, *riskMocks) {
	m := &riskMocks{
		positions:   mocks.NewPositionRepository(t),
		cache:       mocks.NewPositionCache(t),
		instruments: mocks.NewInstrumentService(t),
		accounts:    mocks.NewAccountService(t),
		marks:       mocks.NewMarkPriceService(t),
	}
	store := NewPositionStore(m.positions, m.cache, testDivisor, testRepairTTL, testReadTimeout)
	return NewRiskView(store, m.instruments, m.accounts, m.marks), m
}

func (m *riskMocks) market(symbol string, mark decimal.Decimal, markErr error) {
	m.instruments.On("GetInstrument", mock.Anything, symbol).Return(&model.Instrument{
		Symbol:       symbol,
		Asset:        "USDT",
		ContractType: model.UsdM,
		Multiplier:   decimal.NewFromInt(1),
		MaxPrice:     decimal.NewFromInt(1000000),
	}, nil).Maybe()
	m.instruments.On("GetMarginTiers", mock.Anything, symbol).Return(testTiers, nil).Maybe()
	m.marks.On("GetMarkPrice", mock.Anything, symbol).Return(mark, markErr).Maybe()
}

func TestRiskView_GetPositionRisk(t *testing.T) {
	v, m := newTestRiskView(t)

	target := testPosition(1, "2", model.UsdM, model.Cross)
	eth := testPosition(2, "-10", model.UsdM, model.Cross)
	eth.Symbol = "ETHUSDT"
	eth.EntryPrice = decimal.NewFromInt(2000)
	isolated := testPosition(3, "1", model.UsdM, model.Isolated)
	isolated.Symbol = "SOLUSDT"
	isolated.AdjustMargin = decimal.NewFromInt(10)
	other := testPosition(4, "5", model.CoinM, model.Cross)
	other.Symbol = "BTCUSD"
	other.Asset = "BTC"
	cached := []*model.Position{target, eth, isolated, other}

	stubCache(t, m.cache, cached)
	m.positions.On("GetUserPositions", mock.Anything, int64(1)).Return(cached, nil)
	m.market("BTCUSDT", decimal.NewFromInt(31000), nil)
	m.market("ETHUSDT", decimal.NewFromInt(1900), nil)
	m.accounts.On("GetBalance", mock.Anything, int64(1), "USDT").Return(decimal.NewFromInt(5000), nil)

	result, err := v.GetPositionRisk(context.Background(), 1, "BTCUSDT")
	require.NoError(t, err)
	require.Len(t, result, 1)

	mark := decimal.NewFromInt(31000)
	one := decimal.NewFromInt(1)
	ethMark := decimal.NewFromInt(1900)
	totals := risk.CrossTotals{
		AccountBalance:         decimal.NewFromInt(5000),
		OtherUnrealizedPnl:     risk.UnrealizedPnl(eth, ethMark, one),
		OtherMaintenanceMargin: risk.MaintenanceMargin(testTiers, risk.Notional(eth, ethMark, one), eth, ethMark, one),
		IsolatedAllocated:      decimal.RequireFromString("60.5"),
	}
	got := result[0]
	require.Equal(t, target.ID, got.Position.ID)
	require.True(t, got.MarkPrice.Equal(mark))
	require.Equal(t, "62000", got.Notional.String())
	require.Equal(t, "6200", got.AllocatedMargin.String())
	require.Equal(t, "2000", got.UnrealizedPnl.String())
	require.True(t, got.LiquidationPrice.Equal(risk.LiquidationPrice(testTiers, target, mark, one, totals)))
	require.True(t, got.MarginRate.Equal(risk.MarginRate(testTiers, target, mark, one, totals)))
	require.True(t, got.Roe.Equal(decimal.NewFromInt(2000).Div(decimal.NewFromInt(6200)).Mul(hundred)))
	require.True(t, got.LiquidationPrice.IsPositive())
}

func TestRiskView_GetPositionRisk_SiblingFailure(t *testing.T) {
	v, m := newTestRiskView(t)

	target := testPosition(1, "2", model.UsdM, model.Cross)
	eth := testPosition(2, "-10", model.UsdM, model.Cross)
	eth.Symbol = "ETHUSDT"
	cached := []*model.Position{target, eth}

	stubCache(t, m.cache, cached)
	m.positions.On("GetUserPositions", mock.Anything, int64(1)).Return(cached, nil)
	m.market("BTCUSDT", decimal.NewFromInt(31000), nil)
	m.market("ETHUSDT", decimal.Zero, errors.New("no mark price"))
	m.accounts.On("GetBalance", mock.Anything, int64(1), "USDT").Return(decimal.NewFromInt(5000), nil)

	result, err := v.GetPositionRisk(context.Background(), 1, "BTCUSDT")
	require.NoError(t, err)
	require.Len(t, result, 1)

	mark := decimal.NewFromInt(31000)
	totals := risk.CrossTotals{AccountBalance: decimal.NewFromInt(5000)}
	require.True(t, result[0].LiquidationPrice.Equal(risk.LiquidationPrice(testTiers, target, mark, decimal.NewFromInt(1), totals)))
}

func TestRiskView_GetPositionRisk_TargetFailure(t *testing.T) {
	v, m := newTestRiskView(t)

	target := testPosition(1, "2", model.UsdM, model.Cross)
	stubCache(t, m.cache, []*model.Position{target})
	m.positions.On("GetUserPositions", mock.Anything, int64(1)).Return([]*model.Position{target}, nil)
	m.market("BTCUSDT", decimal.Zero, errors.New("no mark price"))

	_, err := v.GetPositionRisk(context.Background(), 1, "")
	require.Error(t, err)
}
