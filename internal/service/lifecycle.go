package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/OVantsevich/Position-Service/internal/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// OrderRepository durable order store
//
//go:generate mockery --name=OrderRepository --case=underscore --output=./mocks
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) (*model.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*model.Order, error)
	GetOpenOrders(ctx context.Context, userID int64, contractType model.ContractType) ([]*model.Order, error)
	LinkOrders(ctx context.Context, firstID, secondID int64) error
}

// CommandOutbox commands waiting for delivery to the matching engine
//
//go:generate mockery --name=CommandOutbox --case=underscore --output=./mocks
type CommandOutbox interface {
	Enqueue(ctx context.Context, commands ...*model.Command) error
	Pending(ctx context.Context, limit int) ([]*model.Command, error)
	MarkPublished(ctx context.Context, ids []int64) error
}

// Transactor runs txFunc in one durable store transaction
//
//go:generate mockery --name=Transactor --case=underscore --output=./mocks
type Transactor interface {
	WithinTransaction(ctx context.Context, txFunc func(ctx context.Context) error) error
}

// InstrumentService contract specifications and price rules
//
//go:generate mockery --name=InstrumentService --case=underscore --output=./mocks
type InstrumentService interface {
	GetInstrument(ctx context.Context, symbol string) (*model.Instrument, error)
	GetTradingRules(ctx context.Context, symbol string) (*model.TradingRules, error)
	GetMarginTiers(ctx context.Context, symbol string) ([]*model.LeverageMarginTier, error)
}

// AccountService wallet balances
//
//go:generate mockery --name=AccountService --case=underscore --output=./mocks
type AccountService interface {
	GetBalance(ctx context.Context, userID int64, asset string) (decimal.Decimal, error)
}

// MarkPriceService oracle mark prices
//
//go:generate mockery --name=MarkPriceService --case=underscore --output=./mocks
type MarkPriceService interface {
	GetMarkPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// BotService auto-quoting bot registry
//
//go:generate mockery --name=BotService --case=underscore --output=./mocks
type BotService interface {
	GetBotUserID(ctx context.Context, symbol string) (int64, bool, error)
	Suspend(ctx context.Context, symbol string) (func(), error)
}

// Lifecycle position lifecycle: closing, margin adjustment and take profit / stop loss legs.
// Every order it persists and every command it emits for one call are written in a single transaction;
// the relay delivers the commands afterwards.
type Lifecycle struct {
	store              *PositionStore
	positionRepository PositionRepository
	orderRepository    OrderRepository
	outbox             CommandOutbox
	transactor         Transactor
	instrumentService  InstrumentService
	accountService     AccountService
	markPriceService   MarkPriceService
	botService         BotService
	concurrency        int
}

// NewLifecycle constructor
func NewLifecycle(store *PositionStore, pr PositionRepository, or OrderRepository, outbox CommandOutbox, tx Transactor,
	is InstrumentService, as AccountService, mps MarkPriceService, bs BotService, concurrency int) *Lifecycle {
	return &Lifecycle{
		store:              store,
		positionRepository: pr,
		orderRepository:    or,
		outbox:             outbox,
		transactor:         tx,
		instrumentService:  is,
		accountService:     as,
		markPriceService:   mps,
		botService:         bs,
		concurrency:        concurrency,
	}
}

// readOwned authoritative non flat position of the user
func (l *Lifecycle) readOwned(ctx context.Context, userID, positionID int64) (*model.Position, error) {
	position, err := l.store.ReadAuthoritative(ctx, positionID)
	if err != nil {
		return nil, err
	}
	if position.UserID != userID || position.IsFlat() {
		return nil, model.ErrPositionNotFound
	}
	return position, nil
}

// enqueue write commands to the outbox in the transaction carried by ctx
func (l *Lifecycle) enqueue(ctx context.Context, commands ...*model.Command) error {
	if err := l.outbox.Enqueue(ctx, commands...); err != nil {
		return err
	}
	countEnqueued(commands...)
	return nil
}

// AdjustMargin request the engine to assign value to the isolated margin of a position
func (l *Lifecycle) AdjustMargin(ctx context.Context, userID, positionID int64, assignedMarginValue decimal.Decimal) error {
	position, err := l.readOwned(ctx, userID, positionID)
	if err != nil {
		return fmt.Errorf("lifecycle - AdjustMargin - readOwned: %w", err)
	}
	if !position.IsIsolated() {
		return fmt.Errorf("lifecycle - AdjustMargin: %w", model.ErrMarginModeNotIsolated)
	}

	balance, err := l.accountService.GetBalance(ctx, userID, position.Asset)
	if err != nil {
		return fmt.Errorf("lifecycle - AdjustMargin - GetBalance: %w", err)
	}
	if balance.LessThan(assignedMarginValue) {
		return fmt.Errorf("lifecycle - AdjustMargin: %w", model.ErrNotEnoughBalance)
	}

	command, err := model.NewCommand(model.AdjustMarginPosition, &model.AdjustMarginData{
		UserID:              userID,
		AccountID:           position.AccountID,
		PositionID:          position.ID,
		Symbol:              position.Symbol,
		AssignedMarginValue: assignedMarginValue,
	})
	if err != nil {
		return fmt.Errorf("lifecycle - AdjustMargin - NewCommand: %w", err)
	}
	err = l.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		return l.enqueue(ctx, command)
	})
	if err != nil {
		return fmt.Errorf("lifecycle - AdjustMargin - WithinTransaction: %w", err)
	}

	return nil
}

// ClosePosition place a reduce only order closing quantity of the position. limitPrice is used for LIMIT orders only.
func (l *Lifecycle) ClosePosition(ctx context.Context, userID, positionID int64, quantity decimal.Decimal,
	orderType model.OrderType, limitPrice decimal.Decimal) (*model.Order, error) {
	position, err := l.readOwned(ctx, userID, positionID)
	if err != nil {
		return nil, fmt.Errorf("lifecycle - ClosePosition - readOwned: %w", err)
	}
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("lifecycle - ClosePosition: %w", model.ErrPositionInvalidQuantity)
	}
	if quantity.GreaterThan(position.AbsQty()) {
		return nil, fmt.Errorf("lifecycle - ClosePosition: %w", model.ErrPositionQuantityNotEnough)
	}
	if orderType == model.Limit {
		if err = l.validateLimitPrice(ctx, position, limitPrice); err != nil {
			return nil, fmt.Errorf("lifecycle - ClosePosition - validateLimitPrice: %w", err)
		}
	} else {
		limitPrice = decimal.Zero
	}

	order, err := l.close(ctx, position, quantity, orderType, limitPrice)
	if err != nil {
		return nil, fmt.Errorf("lifecycle - ClosePosition - close: %w", err)
	}
	return order, nil
}

// validateLimitPrice close price band around the mark price, bounded on the side the close order trades against
func (l *Lifecycle) validateLimitPrice(ctx context.Context, position *model.Position, price decimal.Decimal) error {
	instrument, err := l.instrumentService.GetInstrument(ctx, position.Symbol)
	if err != nil {
		return err
	}
	rules, err := l.instrumentService.GetTradingRules(ctx, position.Symbol)
	if err != nil {
		return err
	}
	mark, err := l.markPriceService.GetMarkPrice(ctx, position.Symbol)
	if err != nil {
		return err
	}

	one := decimal.NewFromInt(1)
	lower, upper := rules.MinPrice, instrument.MaxPrice
	if position.IsLong() {
		lower = decimal.Max(rules.MinPrice, mark.Mul(one.Sub(rules.FloorRatio)))
	} else {
		upper = decimal.Min(instrument.MaxPrice, mark.Mul(one.Add(rules.CapRatio)))
	}
	if price.LessThan(lower) || price.GreaterThan(upper) {
		return model.ErrOrderPriceValidationFail
	}
	return nil
}

// close suspend the symbol bot, persist counter liquidity and the close order and enqueue their PLACE_ORDER commands
func (l *Lifecycle) close(ctx context.Context, position *model.Position, quantity decimal.Decimal,
	orderType model.OrderType, price decimal.Decimal) (*model.Order, error) {
	release, err := l.botService.Suspend(ctx, position.Symbol)
	if err != nil {
		return nil, fmt.Errorf("lifecycle - close - Suspend: %w", err)
	}
	defer release()

	counter, err := l.counterOrder(ctx, position, quantity, orderType, price)
	if err != nil {
		return nil, fmt.Errorf("lifecycle - close - counterOrder: %w", err)
	}

	var closeOrder *model.Order
	err = l.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		commands := make([]*model.Command, 0, 2)
		if counter != nil {
			created, err := l.orderRepository.CreateOrder(ctx, counter)
			if err != nil {
				return err
			}
			command, err := model.NewCommand(model.PlaceOrder, created)
			if err != nil {
				return err
			}
			commands = append(commands, command)
		}

		created, err := l.orderRepository.CreateOrder(ctx, &model.Order{
			UserID:               position.UserID,
			AccountID:            position.AccountID,
			PositionID:           position.ID,
			Symbol:               position.Symbol,
			Side:                 position.CloseSide(),
			Type:                 orderType,
			Status:               model.OrderPending,
			Price:                price,
			Quantity:             quantity,
			Leverage:             position.Leverage,
			ContractType:         position.ContractType,
			MarginMode:           position.MarginMode,
			IsReduceOnly:         true,
			IsClosePositionOrder: true,
		})
		if err != nil {
			return err
		}
		command, err := model.NewCommand(model.PlaceOrder, created)
		if err != nil {
			return err
		}
		commands = append(commands, command)

		closeOrder = created
		return l.enqueue(ctx, commands...)
	})
	if err != nil {
		return nil, fmt.Errorf("lifecycle - close - WithinTransaction: %w", err)
	}

	closeOrders.WithLabelValues(string(orderType)).Inc()
	return closeOrder, nil
}

// counterOrder bot order taking the other side of a close, nil when no bot quotes the symbol.
// It rests at the close price, or at the mark price for a MARKET close.
func (l *Lifecycle) counterOrder(ctx context.Context, position *model.Position, quantity decimal.Decimal,
	orderType model.OrderType, price decimal.Decimal) (*model.Order, error) {
	botUserID, ok, err := l.botService.GetBotUserID(ctx, position.Symbol)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	if orderType == model.Market {
		price, err = l.markPriceService.GetMarkPrice(ctx, position.Symbol)
		if err != nil {
			return nil, err
		}
	}

	return &model.Order{
		UserID:       botUserID,
		Symbol:       position.Symbol,
		Side:         position.CloseSide().Opposite(),
		Type:         model.Limit,
		Status:       model.OrderPending,
		Price:        price,
		Quantity:     quantity,
		Leverage:     position.Leverage,
		ContractType: position.ContractType,
		MarginMode:   model.Cross,
		IsBotOrder:   true,
	}, nil
}

// CloseAllPositions cancel every open order of the user in contractType and close all its positions at market
func (l *Lifecycle) CloseAllPositions(ctx context.Context, userID int64, contractType model.ContractType) ([]*model.Order, error) {
	orders, err := l.orderRepository.GetOpenOrders(ctx, userID, contractType)
	if err != nil {
		return nil, fmt.Errorf("lifecycle - CloseAllPositions - GetOpenOrders: %w", err)
	}
	if len(orders) > 0 {
		commands := make([]*model.Command, 0, len(orders))
		for _, o := range orders {
			command, err := model.NewCommand(model.CancelOrder, &model.CancelOrderData{
				OrderID:      o.ID,
				UserID:       o.UserID,
				Symbol:       o.Symbol,
				ContractType: o.ContractType,
			})
			if err != nil {
				return nil, fmt.Errorf("lifecycle - CloseAllPositions - NewCommand: %w", err)
			}
			commands = append(commands, command)
		}
		err = l.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			return l.enqueue(ctx, commands...)
		})
		if err != nil {
			return nil, fmt.Errorf("lifecycle - CloseAllPositions - WithinTransaction: %w", err)
		}
	}

	positions, err := l.store.ListPositions(ctx, userID, contractType, "")
	if err != nil {
		return nil, fmt.Errorf("lifecycle - CloseAllPositions - ListPositions: %w", err)
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("lifecycle - CloseAllPositions: %w", model.ErrAccountHasNoPosition)
	}

	closed, err := l.closeBatch(ctx, positions, decimal.Zero)
	if err != nil {
		return closed, fmt.Errorf("lifecycle - CloseAllPositions - closeBatch: %w", err)
	}
	return closed, nil
}

// CloseSymbolPositions close every open position in symbol across all users, LIMIT at referencePrice
// or MARKET when referencePrice is zero
func (l *Lifecycle) CloseSymbolPositions(ctx context.Context, symbol string, referencePrice decimal.Decimal) ([]*model.Order, error) {
	positions, err := l.positionRepository.GetSymbolPositions(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("lifecycle - CloseSymbolPositions - GetSymbolPositions: %w", err)
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("lifecycle - CloseSymbolPositions: %w", model.ErrAccountHasNoPosition)
	}

	closed, err := l.closeBatch(ctx, positions, referencePrice)
	if err != nil {
		return closed, fmt.Errorf("lifecycle - CloseSymbolPositions - closeBatch: %w", err)
	}
	return closed, nil
}

// closeBatch closes positions in full with at most concurrency closes in flight. A failed close does not
// stop the others; the orders of the successful ones are returned along with the joined failures.
func (l *Lifecycle) closeBatch(ctx context.Context, positions []*model.Position, referencePrice decimal.Decimal) ([]*model.Order, error) {
	orderType := model.Market
	if referencePrice.IsPositive() {
		orderType = model.Limit
	}

	results := make([]*model.Order, len(positions))
	errs := make([]error, len(positions))
	g := &errgroup.Group{}
	g.SetLimit(l.concurrency)
	for i, p := range positions {
		i, p := i, p
		g.Go(func() error {
			order, err := l.close(ctx, p, p.AbsQty(), orderType, referencePrice)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"userID":     p.UserID,
					"positionID": p.ID,
					"symbol":     p.Symbol,
				}).Errorf("lifecycle - closeBatch - close: %v", err)
				errs[i] = fmt.Errorf("position %d: %w", p.ID, err)
				return nil
			}
			results[i] = order
			return nil
		})
	}
	_ = g.Wait()

	closed := make([]*model.Order, 0, len(results))
	for _, o := range results {
		if o != nil {
			closed = append(closed, o)
		}
	}
	return closed, errors.Join(errs...)
}

// AttachTpSl place the requested take profit and stop loss legs that the position does not carry yet
func (l *Lifecycle) AttachTpSl(ctx context.Context, userID, positionID int64, request *model.TpSlRequest) ([]*model.Order, error) {
	if !request.Valid() {
		return nil, fmt.Errorf("lifecycle - AttachTpSl: %w", model.ErrUpdatePositionNotValid)
	}
	position, err := l.readOwned(ctx, userID, positionID)
	if err != nil {
		return nil, fmt.Errorf("lifecycle - AttachTpSl - readOwned: %w", err)
	}
	if err = l.validateTpSlPrices(ctx, position, request); err != nil {
		return nil, fmt.Errorf("lifecycle - AttachTpSl - validateTpSlPrices: %w", err)
	}

	takeProfitID, err := l.liveLeg(ctx, position.TakeProfitOrderID)
	if err != nil {
		return nil, fmt.Errorf("lifecycle - AttachTpSl - liveLeg: %w", err)
	}
	stopLossID, err := l.liveLeg(ctx, position.StopLossOrderID)
	if err != nil {
		return nil, fmt.Errorf("lifecycle - AttachTpSl - liveLeg: %w", err)
	}
	legsCleared := takeProfitID != position.TakeProfitOrderID || stopLossID != position.StopLossOrderID

	var takeProfit, stopLoss *model.Order
	if request.TakeProfit != nil && takeProfitID == nil {
		takeProfit = tpSlOrder(position, model.TakeProfitMarket, *request.TakeProfit, request.TakeProfitTrigger)
	}
	if request.StopLoss != nil && stopLossID == nil {
		stopLoss = tpSlOrder(position, model.StopMarket, *request.StopLoss, request.StopLossTrigger)
	}
	if takeProfit == nil && stopLoss == nil && !legsCleared {
		return nil, nil
	}

	var legs []*model.Order
	err = l.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if takeProfit != nil {
			if takeProfit, err = l.orderRepository.CreateOrder(ctx, takeProfit); err != nil {
				return err
			}
			legs = append(legs, takeProfit)
		}
		if stopLoss != nil {
			if stopLoss, err = l.orderRepository.CreateOrder(ctx, stopLoss); err != nil {
				return err
			}
			legs = append(legs, stopLoss)
		}
		if takeProfit != nil && stopLoss != nil {
			if err = l.orderRepository.LinkOrders(ctx, takeProfit.ID, stopLoss.ID); err != nil {
				return err
			}
			takeProfit.LinkedOrderID, stopLoss.LinkedOrderID = &stopLoss.ID, &takeProfit.ID
		}

		data := &model.AdjustTpSlData{UserID: userID, PositionID: position.ID, Symbol: position.Symbol}
		if takeProfit != nil {
			takeProfitID = &takeProfit.ID
			data.TakeProfit = &model.TpSlLeg{Action: model.TpSlPlace, OrderID: takeProfit.ID, Order: takeProfit}
		}
		if stopLoss != nil {
			stopLossID = &stopLoss.ID
			data.StopLoss = &model.TpSlLeg{Action: model.TpSlPlace, OrderID: stopLoss.ID, Order: stopLoss}
		}
		if err = l.positionRepository.SetTpSlOrders(ctx, position.ID, takeProfitID, stopLossID); err != nil {
			return err
		}
		if len(legs) == 0 {
			return nil
		}

		command, err := model.NewCommand(model.AdjustTpSl, data)
		if err != nil {
			return err
		}
		return l.enqueue(ctx, command)
	})
	if err != nil {
		return nil, fmt.Errorf("lifecycle - AttachTpSl - WithinTransaction: %w", err)
	}

	return legs, nil
}

// validateTpSlPrices requested prices lie within [rule min price, instrument max price]
func (l *Lifecycle) validateTpSlPrices(ctx context.Context, position *model.Position, request *model.TpSlRequest) error {
	instrument, err := l.instrumentService.GetInstrument(ctx, position.Symbol)
	if err != nil {
		return err
	}
	rules, err := l.instrumentService.GetTradingRules(ctx, position.Symbol)
	if err != nil {
		return err
	}
	for _, price := range []*decimal.Decimal{request.TakeProfit, request.StopLoss} {
		if price == nil {
			continue
		}
		if price.LessThan(rules.MinPrice) || price.GreaterThan(instrument.MaxPrice) {
			return model.ErrUpdatePositionNotValid
		}
	}
	return nil
}

// liveLeg orderID unless its order is gone or already filled or canceled
func (l *Lifecycle) liveLeg(ctx context.Context, orderID *int64) (*int64, error) {
	if orderID == nil {
		return nil, nil
	}
	order, err := l.orderRepository.GetOrderByID(ctx, *orderID)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if order.IsTerminal() {
		return nil, nil
	}
	return orderID, nil
}

// tpSlOrder conditional reduce only leg. A take profit triggers on a move in favor of the position,
// a stop loss on a move against it.
func tpSlOrder(position *model.Position, legType model.TpSLType, price decimal.Decimal, trigger model.TriggerType) *model.Order {
	favorable, adverse := model.GT, model.LT
	if !position.IsLong() {
		favorable, adverse = model.LT, model.GT
	}
	condition := favorable
	if legType == model.StopMarket {
		condition = adverse
	}

	return &model.Order{
		UserID:        position.UserID,
		AccountID:     position.AccountID,
		PositionID:    position.ID,
		Symbol:        position.Symbol,
		Side:          position.CloseSide(),
		Type:          model.Market,
		Status:        model.OrderUntriggered,
		Quantity:      position.AbsQty(),
		Leverage:      position.Leverage,
		ContractType:  position.ContractType,
		MarginMode:    position.MarginMode,
		IsReduceOnly:  true,
		TpSLType:      legType,
		TpSLPrice:     price,
		Trigger:       trigger,
		StopCondition: condition,
	}
}

// RemoveTpSl cancel exactly one of the take profit or stop loss legs of a position
func (l *Lifecycle) RemoveTpSl(ctx context.Context, userID, positionID int64, takeProfitOrderID, stopLossOrderID *int64) error {
	if (takeProfitOrderID == nil) == (stopLossOrderID == nil) {
		return fmt.Errorf("lifecycle - RemoveTpSl: %w", model.ErrRemoveTpSlNotValid)
	}
	position, err := l.readOwned(ctx, userID, positionID)
	if err != nil {
		return fmt.Errorf("lifecycle - RemoveTpSl - readOwned: %w", err)
	}

	orderID := takeProfitOrderID
	if orderID == nil {
		orderID = stopLossOrderID
	}
	order, err := l.orderRepository.GetOrderByID(ctx, *orderID)
	if err != nil {
		return fmt.Errorf("lifecycle - RemoveTpSl - GetOrderByID: %w", err)
	}
	if order.UserID != userID {
		return fmt.Errorf("lifecycle - RemoveTpSl: %w", model.ErrOrderNotFound)
	}

	leg := &model.TpSlLeg{Action: model.TpSlCancel, OrderID: order.ID}
	data := &model.AdjustTpSlData{UserID: userID, PositionID: position.ID, Symbol: position.Symbol}
	if takeProfitOrderID != nil {
		data.TakeProfit = leg
	} else {
		data.StopLoss = leg
	}
	command, err := model.NewCommand(model.AdjustTpSl, data)
	if err != nil {
		return fmt.Errorf("lifecycle - RemoveTpSl - NewCommand: %w", err)
	}
	err = l.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		return l.enqueue(ctx, command)
	})
	if err != nil {
		return fmt.Errorf("lifecycle - RemoveTpSl - WithinTransaction: %w", err)
	}

	return nil
}
