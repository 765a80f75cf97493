package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/OVantsevich/Position-Service/internal/model"
	"github.com/OVantsevich/Position-Service/internal/service/mocks"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type lifecycleMocks struct {
	positions   *mocks.PositionRepository
	cache       *mocks.PositionCache
	orders      *mocks.OrderRepository
	outbox      *mocks.CommandOutbox
	tx          *mocks.Transactor
	instruments *mocks.InstrumentService
	accounts    *mocks.AccountService
	marks       *mocks.MarkPriceService
	bots        *mocks.BotService

	mu       sync.Mutex
	commands []*model.Command
	released int32
	nextID   int64
}

func newTestLifecycle(t *testing.T) (*Lifecycle, *lifecycleMocks) {
	m := &lifecycleMocks{
		positions:   mocks.NewPositionRepository(t),
		cache:       mocks.NewPositionCache(t),
		orders:      mocks.NewOrderRepository(t),
		outbox:      mocks.NewCommandOutbox(t),
		tx:          mocks.NewTransactor(t),
		instruments: mocks.NewInstrumentService(t),
		accounts:    mocks.NewAccountService(t),
		marks:       mocks.NewMarkPriceService(t),
		bots:        mocks.NewBotService(t),
		nextID:      100,
	}
	store := NewPositionStore(m.positions, m.cache, testDivisor, testRepairTTL, testReadTimeout)
	l := NewLifecycle(store, m.positions, m.orders, m.outbox, m.tx, m.instruments, m.accounts, m.marks, m.bots, 4)
	return l, m
}

// stored position served by the durable store with no cached copy
func (m *lifecycleMocks) stored(p *model.Position) {
	m.positions.On("GetPositionByID", mock.Anything, p.ID).Return(p, nil)
	m.cache.On("Get", mock.Anything, cacheKey(p)).Return("", nil)
}

func (m *lifecycleMocks) transactions() {
	m.tx.On("WithinTransaction", mock.Anything, mock.Anything).Return(
		func(ctx context.Context, txFunc func(context.Context) error) error {
			return txFunc(ctx)
		})
}

// captures every enqueued command, for calls carrying up to n commands
func (m *lifecycleMocks) enqueue(n int) {
	capture := func(args mock.Arguments) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, a := range args[1:] {
			m.commands = append(m.commands, a.(*model.Command))
		}
	}
	for i := 1; i <= n; i++ {
		args := []interface{}{mock.Anything}
		for j := 0; j < i; j++ {
			args = append(args, mock.Anything)
		}
		m.outbox.On("Enqueue", args...).Run(capture).Return(nil).Maybe()
	}
}

func (m *lifecycleMocks) createOrders() {
	m.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(
		func(_ context.Context, o *model.Order) (*model.Order, error) {
			o.ID = atomic.AddInt64(&m.nextID, 1)
			return o, nil
		})
}

func (m *lifecycleMocks) noBot(symbol string) {
	m.bots.On("Suspend", mock.Anything, symbol).Return(func() { atomic.AddInt32(&m.released, 1) }, nil)
	m.bots.On("GetBotUserID", mock.Anything, symbol).Return(int64(0), false, nil)
}

func decodeOrder(t *testing.T, c *model.Command) *model.Order {
	require.Equal(t, model.PlaceOrder, c.Code)
	order := &model.Order{}
	require.NoError(t, jsoniter.Unmarshal(c.Data, order))
	return order
}

func TestLifecycle_ClosePosition_Market(t *testing.T) {
	l, m := newTestLifecycle(t)
	position := testPosition(1, "-2.5", model.UsdM, model.Isolated)
	m.stored(position)
	m.noBot(position.Symbol)
	m.transactions()
	m.createOrders()
	m.enqueue(1)

	order, err := l.ClosePosition(context.Background(), 1, 1, decimal.NewFromInt(1), model.Market, decimal.NewFromInt(5))
	require.NoError(t, err)
	require.Equal(t, model.Buy, order.Side)
	require.Equal(t, "1", order.Quantity.String())
	require.Equal(t, model.Market, order.Type)
	require.True(t, order.Price.IsZero())
	require.True(t, order.IsReduceOnly)
	require.True(t, order.IsClosePositionOrder)
	require.Equal(t, position.ID, order.PositionID)
	require.Equal(t, int32(1), m.released)

	require.Len(t, m.commands, 1)
	sent := decodeOrder(t, m.commands[0])
	require.Equal(t, order.ID, sent.ID)
	require.NotEmpty(t, m.commands[0].RequestID)
}

func TestLifecycle_ClosePosition_CloseSide(t *testing.T) {
	for qty, side := range map[string]model.OrderSide{"3": model.Sell, "-3": model.Buy, "0.5": model.Sell, "-0.001": model.Buy} {
		l, m := newTestLifecycle(t)
		position := testPosition(1, qty, model.CoinM, model.Cross)
		m.stored(position)
		m.noBot(position.Symbol)
		m.transactions()
		m.createOrders()
		m.enqueue(1)

		order, err := l.ClosePosition(context.Background(), 1, 1, position.AbsQty(), model.Market, decimal.Zero)
		require.NoError(t, err)
		require.Equal(t, side, order.Side, qty)
	}
}

func TestLifecycle_ClosePosition_Quantity(t *testing.T) {
	testData := []struct {
		name     string
		qty      string
		quantity string
		err      error
	}{
		{name: "long zero", qty: "2", quantity: "0", err: model.ErrPositionInvalidQuantity},
		{name: "long negative", qty: "2", quantity: "-1", err: model.ErrPositionInvalidQuantity},
		{name: "long too much", qty: "2", quantity: "2.0001", err: model.ErrPositionQuantityNotEnough},
		{name: "short zero", qty: "-2", quantity: "0", err: model.ErrPositionInvalidQuantity},
		{name: "short negative", qty: "-2", quantity: "-2", err: model.ErrPositionInvalidQuantity},
		{name: "short too much", qty: "-2", quantity: "3", err: model.ErrPositionQuantityNotEnough},
	}

	for _, tt := range testData {
		t.Run(tt.name, func(t *testing.T) {
			l, m := newTestLifecycle(t)
			m.stored(testPosition(1, tt.qty, model.UsdM, model.Cross))

			_, err := l.ClosePosition(context.Background(), 1, 1, decimal.RequireFromString(tt.quantity), model.Market, decimal.Zero)
			require.ErrorIs(t, err, tt.err)
			require.Equal(t, model.CodeOf(tt.err), model.CodeOf(err))
		})
	}
}

func TestLifecycle_ClosePosition_NotFound(t *testing.T) {
	l, m := newTestLifecycle(t)
	flat := testPosition(1, "0", model.UsdM, model.Cross)
	m.stored(flat)
	foreign := testPosition(2, "1", model.UsdM, model.Cross)
	foreign.UserID = 2
	m.positions.On("GetPositionByID", mock.Anything, int64(2)).Return(foreign, nil)
	m.cache.On("Get", mock.Anything, cacheKey(foreign)).Return("", nil)
	m.positions.On("GetPositionByID", mock.Anything, int64(3)).Return(nil, model.ErrPositionNotFound)

	for _, id := range []int64{1, 2, 3} {
		_, err := l.ClosePosition(context.Background(), 1, id, decimal.NewFromInt(1), model.Market, decimal.Zero)
		require.ErrorIs(t, err, model.ErrPositionNotFound)
	}
}

func (m *lifecycleMocks) priceRules(symbol string) {
	m.instruments.On("GetInstrument", mock.Anything, symbol).Return(&model.Instrument{
		Symbol:       symbol,
		Asset:        "USDT",
		ContractType: model.UsdM,
		Multiplier:   decimal.NewFromInt(1),
		MaxPrice:     decimal.NewFromInt(1000),
	}, nil)
	m.instruments.On("GetTradingRules", mock.Anything, symbol).Return(&model.TradingRules{
		Symbol:     symbol,
		MinPrice:   decimal.NewFromInt(1),
		FloorRatio: decimal.RequireFromString("0.1"),
		CapRatio:   decimal.RequireFromString("0.1"),
	}, nil)
}

func TestLifecycle_ClosePosition_LimitBand(t *testing.T) {
	testData := []struct {
		name  string
		qty   string
		price string
	}{
		{name: "long below floor", qty: "1", price: "89.99"},
		{name: "long above max", qty: "1", price: "1000.01"},
		{name: "short above cap", qty: "-1", price: "110.01"},
		{name: "short below min", qty: "-1", price: "0.5"},
	}

	for _, tt := range testData {
		t.Run(tt.name, func(t *testing.T) {
			l, m := newTestLifecycle(t)
			position := testPosition(1, tt.qty, model.UsdM, model.Cross)
			m.stored(position)
			m.priceRules(position.Symbol)
			m.marks.On("GetMarkPrice", mock.Anything, position.Symbol).Return(decimal.NewFromInt(100), nil)

			_, err := l.ClosePosition(context.Background(), 1, 1, decimal.NewFromInt(1), model.Limit, decimal.RequireFromString(tt.price))
			require.ErrorIs(t, err, model.ErrOrderPriceValidationFail)
			m.bots.AssertNotCalled(t, "Suspend", mock.Anything, mock.Anything)
		})
	}
}

func TestLifecycle_ClosePosition_LimitWithBot(t *testing.T) {
	l, m := newTestLifecycle(t)
	position := testPosition(1, "-4", model.UsdM, model.Cross)
	m.stored(position)
	m.priceRules(position.Symbol)
	m.marks.On("GetMarkPrice", mock.Anything, position.Symbol).Return(decimal.NewFromInt(100), nil)
	m.bots.On("Suspend", mock.Anything, position.Symbol).Return(func() { atomic.AddInt32(&m.released, 1) }, nil)
	m.bots.On("GetBotUserID", mock.Anything, position.Symbol).Return(int64(99), true, nil)
	m.transactions()
	m.createOrders()
	m.enqueue(2)

	order, err := l.ClosePosition(context.Background(), 1, 1, decimal.NewFromInt(3), model.Limit, decimal.NewFromInt(105))
	require.NoError(t, err)
	require.Equal(t, model.Limit, order.Type)
	require.Equal(t, "105", order.Price.String())
	require.Equal(t, int32(1), m.released)

	require.Len(t, m.commands, 2)
	counter := decodeOrder(t, m.commands[0])
	require.Equal(t, int64(99), counter.UserID)
	require.True(t, counter.IsBotOrder)
	require.Equal(t, model.Sell, counter.Side)
	require.Equal(t, "3", counter.Quantity.String())
	require.Equal(t, "105", counter.Price.String())
	require.Equal(t, order.ID, decodeOrder(t, m.commands[1]).ID)
}

func TestLifecycle_ClosePosition_ReleasesOnFailure(t *testing.T) {
	l, m := newTestLifecycle(t)
	position := testPosition(1, "2", model.UsdM, model.Cross)
	m.stored(position)
	m.noBot(position.Symbol)
	m.transactions()
	m.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, model.ErrTimeout)

	_, err := l.ClosePosition(context.Background(), 1, 1, decimal.NewFromInt(1), model.Market, decimal.Zero)
	require.ErrorIs(t, err, model.ErrTimeout)
	require.Equal(t, int32(1), m.released)
	m.outbox.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
}

func TestLifecycle_CloseAllPositions(t *testing.T) {
	l, m := newTestLifecycle(t)
	long := testPosition(1, "2", model.UsdM, model.Cross)
	short := testPosition(2, "-0.5", model.UsdM, model.Isolated)
	short.Symbol = "ETHUSDT"
	coin := testPosition(3, "7", model.CoinM, model.Cross)
	cached := []*model.Position{long, short, coin}

	m.orders.On("GetOpenOrders", mock.Anything, int64(1), model.UsdM).Return([]*model.Order{
		{ID: 11, UserID: 1, Symbol: "BTCUSDT", ContractType: model.UsdM, Status: model.OrderActive},
		{ID: 12, UserID: 1, Symbol: "ETHUSDT", ContractType: model.UsdM, Status: model.OrderUntriggered},
	}, nil)
	stubCache(t, m.cache, cached)
	m.positions.On("GetUserPositions", mock.Anything, int64(1)).Return(cached, nil)
	m.noBot(long.Symbol)
	m.noBot(short.Symbol)
	m.transactions()
	m.createOrders()
	m.enqueue(2)

	orders, err := l.CloseAllPositions(context.Background(), 1, model.UsdM)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, int32(2), m.released)

	quantities := map[int64]string{}
	for _, o := range orders {
		require.Equal(t, model.Market, o.Type)
		require.True(t, o.IsReduceOnly)
		quantities[o.PositionID] = o.Quantity.String()
	}
	require.Equal(t, map[int64]string{1: "2", 2: "0.5"}, quantities)

	cancels := map[int64]bool{}
	places := 0
	for _, c := range m.commands {
		switch c.Code {
		case model.CancelOrder:
			data := &model.CancelOrderData{}
			require.NoError(t, jsoniter.Unmarshal(c.Data, data))
			cancels[data.OrderID] = true
		case model.PlaceOrder:
			places++
		}
	}
	require.Equal(t, map[int64]bool{11: true, 12: true}, cancels)
	require.Equal(t, 2, places)
}

func TestLifecycle_CloseAllPositions_NoPosition(t *testing.T) {
	l, m := newTestLifecycle(t)
	m.orders.On("GetOpenOrders", mock.Anything, int64(1), model.CoinM).Return(nil, nil)
	stubCache(t, m.cache, []*model.Position{testPosition(1, "0", model.CoinM, model.Cross)})
	m.positions.On("GetUserPositions", mock.Anything, int64(1)).Return([]*model.Position{testPosition(1, "0", model.CoinM, model.Cross)}, nil)

	_, err := l.CloseAllPositions(context.Background(), 1, model.CoinM)
	require.ErrorIs(t, err, model.ErrAccountHasNoPosition)
	m.outbox.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
}

func TestLifecycle_CloseSymbolPositions(t *testing.T) {
	l, m := newTestLifecycle(t)
	first := testPosition(1, "2", model.UsdM, model.Cross)
	second := testPosition(2, "-1", model.UsdM, model.Cross)
	second.UserID = 2
	m.positions.On("GetSymbolPositions", mock.Anything, "BTCUSDT").Return([]*model.Position{first, second}, nil)
	m.noBot("BTCUSDT")
	m.transactions()
	m.orders.On("CreateOrder", mock.Anything, mock.Anything).Return(
		func(_ context.Context, o *model.Order) (*model.Order, error) {
			if o.PositionID == 2 {
				return nil, errors.New("connection reset")
			}
			o.ID = 500
			return o, nil
		})
	m.enqueue(1)

	orders, err := l.CloseSymbolPositions(context.Background(), "BTCUSDT", decimal.NewFromInt(31000))
	require.Error(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, model.Limit, orders[0].Type)
	require.Equal(t, "31000", orders[0].Price.String())
	require.Equal(t, model.Sell, orders[0].Side)
	require.Equal(t, int32(2), m.released)
}

func TestLifecycle_CloseSymbolPositions_Empty(t *testing.T) {
	l, m := newTestLifecycle(t)
	m.positions.On("GetSymbolPositions", mock.Anything, "BTCUSDT").Return(nil, nil)

	_, err := l.CloseSymbolPositions(context.Background(), "BTCUSDT", decimal.Zero)
	require.ErrorIs(t, err, model.ErrAccountHasNoPosition)
}

func TestLifecycle_AdjustMargin(t *testing.T) {
	l, m := newTestLifecycle(t)
	isolated := testPosition(1, "2", model.UsdM, model.Isolated)
	cross := testPosition(2, "2", model.UsdM, model.Cross)
	m.stored(isolated)
	m.stored(cross)
	m.accounts.On("GetBalance", mock.Anything, int64(1), "USDT").Return(decimal.NewFromInt(20), nil)
	m.transactions()
	m.enqueue(1)

	err := l.AdjustMargin(context.Background(), 1, 2, decimal.NewFromInt(5))
	require.ErrorIs(t, err, model.ErrMarginModeNotIsolated)

	err = l.AdjustMargin(context.Background(), 1, 1, decimal.RequireFromString("20.01"))
	require.ErrorIs(t, err, model.ErrNotEnoughBalance)

	err = l.AdjustMargin(context.Background(), 1, 1, decimal.NewFromInt(20))
	require.NoError(t, err)
	require.Len(t, m.commands, 1)
	require.Equal(t, model.AdjustMarginPosition, m.commands[0].Code)
	data := &model.AdjustMarginData{}
	require.NoError(t, jsoniter.Unmarshal(m.commands[0].Data, data))
	require.Equal(t, int64(1), data.PositionID)
	require.Equal(t, isolated.AccountID, data.AccountID)
	require.Equal(t, "20", data.AssignedMarginValue.String())
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestLifecycle_AttachTpSl_Pairing(t *testing.T) {
	testData := []struct {
		name    string
		request *model.TpSlRequest
	}{
		{name: "take profit without trigger", request: &model.TpSlRequest{TakeProfit: price("100")}},
		{name: "take profit trigger only", request: &model.TpSlRequest{TakeProfitTrigger: model.TriggerMark}},
		{name: "stop loss without trigger", request: &model.TpSlRequest{StopLoss: price("100")}},
		{name: "stop loss trigger only", request: &model.TpSlRequest{StopLossTrigger: model.TriggerLast}},
		{name: "unknown trigger", request: &model.TpSlRequest{TakeProfit: price("100"), TakeProfitTrigger: "BID"}},
		{name: "one good one broken", request: &model.TpSlRequest{
			TakeProfit: price("100"), TakeProfitTrigger: model.TriggerMark, StopLossTrigger: model.TriggerMark}},
	}

	for _, tt := range testData {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLifecycle(t)
			_, err := l.AttachTpSl(context.Background(), 1, 1, tt.request)
			require.ErrorIs(t, err, model.ErrUpdatePositionNotValid)
		})
	}
}

func TestLifecycle_AttachTpSl_PriceBand(t *testing.T) {
	l, m := newTestLifecycle(t)
	position := testPosition(1, "1", model.UsdM, model.Cross)
	m.stored(position)
	m.priceRules(position.Symbol)

	_, err := l.AttachTpSl(context.Background(), 1, 1, &model.TpSlRequest{
		TakeProfit: price("1000.5"), TakeProfitTrigger: model.TriggerMark,
	})
	require.ErrorIs(t, err, model.ErrUpdatePositionNotValid)

	_, err = l.AttachTpSl(context.Background(), 1, 1, &model.TpSlRequest{
		StopLoss: price("0.9"), StopLossTrigger: model.TriggerLast,
	})
	require.ErrorIs(t, err, model.ErrUpdatePositionNotValid)
}

func TestLifecycle_AttachTpSl_BothLegs(t *testing.T) {
	l, m := newTestLifecycle(t)
	position := testPosition(1, "2", model.UsdM, model.Cross)
	m.stored(position)
	m.priceRules(position.Symbol)
	m.transactions()
	m.createOrders()
	m.enqueue(1)
	m.orders.On("LinkOrders", mock.Anything, int64(101), int64(102)).Return(nil)
	m.positions.On("SetTpSlOrders", mock.Anything, int64(1),
		mock.MatchedBy(func(id *int64) bool { return id != nil && *id == 101 }),
		mock.MatchedBy(func(id *int64) bool { return id != nil && *id == 102 })).Return(nil)

	legs, err := l.AttachTpSl(context.Background(), 1, 1, &model.TpSlRequest{
		TakeProfit: price("500"), TakeProfitTrigger: model.TriggerMark,
		StopLoss: price("200"), StopLossTrigger: model.TriggerLast,
	})
	require.NoError(t, err)
	require.Len(t, legs, 2)

	takeProfit, stopLoss := legs[0], legs[1]
	require.Equal(t, model.TakeProfitMarket, takeProfit.TpSLType)
	require.Equal(t, model.GT, takeProfit.StopCondition)
	require.Equal(t, model.StopMarket, stopLoss.TpSLType)
	require.Equal(t, model.LT, stopLoss.StopCondition)
	for _, leg := range legs {
		require.Equal(t, model.Sell, leg.Side)
		require.Equal(t, model.Market, leg.Type)
		require.True(t, leg.IsReduceOnly)
	}
	require.Equal(t, stopLoss.ID, *takeProfit.LinkedOrderID)
	require.Equal(t, takeProfit.ID, *stopLoss.LinkedOrderID)

	require.Len(t, m.commands, 1)
	require.Equal(t, model.AdjustTpSl, m.commands[0].Code)
	data := &model.AdjustTpSlData{}
	require.NoError(t, jsoniter.Unmarshal(m.commands[0].Data, data))
	require.Equal(t, model.TpSlPlace, data.TakeProfit.Action)
	require.Equal(t, takeProfit.ID, data.TakeProfit.OrderID)
	require.Equal(t, model.TpSlPlace, data.StopLoss.Action)
	require.Equal(t, "200", data.StopLoss.Order.TpSLPrice.String())
}

func TestLifecycle_AttachTpSl_StaleLeg(t *testing.T) {
	l, m := newTestLifecycle(t)
	position := testPosition(1, "-2", model.UsdM, model.Cross)
	filled, live := int64(7), int64(8)
	position.TakeProfitOrderID = &filled
	position.StopLossOrderID = &live
	m.stored(position)
	m.priceRules(position.Symbol)
	m.orders.On("GetOrderByID", mock.Anything, filled).Return(&model.Order{ID: filled, Status: model.OrderFilled}, nil)
	m.orders.On("GetOrderByID", mock.Anything, live).Return(&model.Order{ID: live, Status: model.OrderUntriggered}, nil)
	m.transactions()
	m.createOrders()
	m.enqueue(1)
	m.positions.On("SetTpSlOrders", mock.Anything, int64(1),
		mock.MatchedBy(func(id *int64) bool { return id != nil && *id == 101 }),
		mock.MatchedBy(func(id *int64) bool { return id != nil && *id == live })).Return(nil)

	legs, err := l.AttachTpSl(context.Background(), 1, 1, &model.TpSlRequest{
		TakeProfit: price("100"), TakeProfitTrigger: model.TriggerMark,
		StopLoss: price("900"), StopLossTrigger: model.TriggerMark,
	})
	require.NoError(t, err)
	require.Len(t, legs, 1)
	require.Equal(t, model.TakeProfitMarket, legs[0].TpSLType)
	require.Equal(t, model.LT, legs[0].StopCondition)
	require.Equal(t, model.Buy, legs[0].Side)

	data := &model.AdjustTpSlData{}
	require.NoError(t, jsoniter.Unmarshal(m.commands[0].Data, data))
	require.NotNil(t, data.TakeProfit)
	require.Nil(t, data.StopLoss)
	m.orders.AssertNotCalled(t, "LinkOrders", mock.Anything, mock.Anything, mock.Anything)
}

func TestLifecycle_AttachTpSl_AlreadyAttached(t *testing.T) {
	l, m := newTestLifecycle(t)
	position := testPosition(1, "2", model.UsdM, model.Cross)
	live := int64(8)
	position.StopLossOrderID = &live
	m.stored(position)
	m.priceRules(position.Symbol)
	m.orders.On("GetOrderByID", mock.Anything, live).Return(&model.Order{ID: live, Status: model.OrderActive}, nil)

	legs, err := l.AttachTpSl(context.Background(), 1, 1, &model.TpSlRequest{
		StopLoss: price("200"), StopLossTrigger: model.TriggerMark,
	})
	require.NoError(t, err)
	require.Empty(t, legs)
	m.tx.AssertNotCalled(t, "WithinTransaction", mock.Anything, mock.Anything)
}

func TestLifecycle_AttachTpSl_FresherCacheWithoutLeg(t *testing.T) {
	l, m := newTestLifecycle(t)
	stored := testPosition(1, "2", model.UsdM, model.Cross)
	live := int64(8)
	stored.StopLossOrderID = &live
	cached := testPosition(1, "3", model.UsdM, model.Cross)
	cached.OperationID = stored.OperationID + 5
	m.positions.On("GetPositionByID", mock.Anything, stored.ID).Return(stored, nil)
	m.cache.On("Get", mock.Anything, cacheKey(stored)).Return(encoded(t, cached), nil)
	m.priceRules(stored.Symbol)
	m.orders.On("GetOrderByID", mock.Anything, live).Return(&model.Order{ID: live, Status: model.OrderUntriggered}, nil)

	legs, err := l.AttachTpSl(context.Background(), 1, 1, &model.TpSlRequest{
		StopLoss: price("200"), StopLossTrigger: model.TriggerMark,
	})
	require.NoError(t, err)
	require.Empty(t, legs)
	m.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	m.tx.AssertNotCalled(t, "WithinTransaction", mock.Anything, mock.Anything)
}

func TestTpSlOrder_StopCondition(t *testing.T) {
	testData := []struct {
		qty       string
		legType   model.TpSLType
		condition model.StopCondition
	}{
		{qty: "1", legType: model.TakeProfitMarket, condition: model.GT},
		{qty: "1", legType: model.StopMarket, condition: model.LT},
		{qty: "-1", legType: model.TakeProfitMarket, condition: model.LT},
		{qty: "-1", legType: model.StopMarket, condition: model.GT},
	}

	for _, tt := range testData {
		order := tpSlOrder(testPosition(1, tt.qty, model.CoinM, model.Isolated), tt.legType, decimal.NewFromInt(10), model.TriggerIndex)
		require.Equal(t, tt.condition, order.StopCondition, tt.qty+" "+string(tt.legType))
		require.Equal(t, model.OrderUntriggered, order.Status)
	}
}

func TestLifecycle_RemoveTpSl(t *testing.T) {
	l, m := newTestLifecycle(t)
	tpID, slID := int64(7), int64(8)

	err := l.RemoveTpSl(context.Background(), 1, 1, nil, nil)
	require.ErrorIs(t, err, model.ErrRemoveTpSlNotValid)
	err = l.RemoveTpSl(context.Background(), 1, 1, &tpID, &slID)
	require.ErrorIs(t, err, model.ErrRemoveTpSlNotValid)

	position := testPosition(1, "2", model.UsdM, model.Cross)
	m.stored(position)
	m.orders.On("GetOrderByID", mock.Anything, slID).Return(&model.Order{ID: slID, UserID: 1, Status: model.OrderUntriggered}, nil)
	m.orders.On("GetOrderByID", mock.Anything, tpID).Return(nil, model.ErrOrderNotFound)
	m.transactions()
	m.enqueue(1)

	err = l.RemoveTpSl(context.Background(), 1, 1, &tpID, nil)
	require.ErrorIs(t, err, model.ErrOrderNotFound)

	err = l.RemoveTpSl(context.Background(), 1, 1, nil, &slID)
	require.NoError(t, err)
	require.Len(t, m.commands, 1)
	data := &model.AdjustTpSlData{}
	require.NoError(t, jsoniter.Unmarshal(m.commands[0].Data, data))
	require.Nil(t, data.TakeProfit)
	require.Equal(t, model.TpSlCancel, data.StopLoss.Action)
	require.Equal(t, slID, data.StopLoss.OrderID)
}
