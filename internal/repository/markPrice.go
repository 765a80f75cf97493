package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
)

// MarkPrice oracle feed reader; the feed keeps mark_price:{symbol} up to date
type MarkPrice struct {
	client *redis.Client
}

// NewMarkPriceRepository mark price repository constructor
func NewMarkPriceRepository(client *redis.Client) *MarkPrice {
	return &MarkPrice{client: client}
}

func markPriceKey(symbol string) string {
	return "mark_price:" + symbol
}

// GetMarkPrice current mark price of symbol
func (m *MarkPrice) GetMarkPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	raw, err := m.client.Get(ctx, markPriceKey(symbol)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return decimal.Zero, fmt.Errorf("markPrice - GetMarkPrice - Get: no mark price for %s", symbol)
		}
		return decimal.Zero, fmt.Errorf("markPrice - GetMarkPrice - Get: %w", err)
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("markPrice - GetMarkPrice - NewFromString: %w", err)
	}

	return price, nil
}
