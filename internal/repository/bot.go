package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

// releaseTimeout bounds the suspension release, which runs even after the caller's ctx is done
const releaseTimeout = 2 * time.Second

// releaseScript drops one holder and deletes the flag with the last one in a single step,
// so a Suspend landing between the two never sees its flag deleted
var releaseScript = redis.NewScript(`
local left = redis.call('DECR', KEYS[1])
if left <= 0 then
	redis.call('DEL', KEYS[1])
end
return left
`)

// Bot registry of auto-quoting bots and their per-symbol suspension flag.
// The flag is a reference count so overlapping closes on one symbol keep the bot suspended
// until the last of them releases it; the ttl clears a flag stranded by a crashed holder.
type Bot struct {
	runner PgxWithinTransactionRunner
	client *redis.Client
	ttl    time.Duration
}

// NewBotRepository bot repository constructor
func NewBotRepository(runner PgxWithinTransactionRunner, client *redis.Client, ttl time.Duration) *Bot {
	return &Bot{runner: runner, client: client, ttl: ttl}
}

func botSuspendKey(symbol string) string {
	return "bot:suspend:" + symbol
}

// GetBotUserID user id of the bot quoting symbol, false when no bot quotes it
func (b *Bot) GetBotUserID(ctx context.Context, symbol string) (int64, bool, error) {
	var userID int64
	err := b.runner.QueryRow(ctx, `select user_id from bots where symbol = $1`, symbol).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("bot - GetBotUserID - QueryRow: %w", err)
	}

	return userID, true, nil
}

// Suspend stop the bot of symbol from quoting until the returned release is called
func (b *Bot) Suspend(ctx context.Context, symbol string) (func(), error) {
	key := botSuspendKey(symbol)
	pipe := b.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, b.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("bot - Suspend - Exec: %w", err)
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, b.client, []string{key}).Err(); err != nil {
			logrus.WithFields(logrus.Fields{
				"symbol": symbol,
			}).Errorf("bot - Suspend - release: %v", err)
		}
	}
	return release, nil
}

// IsSuspended true while at least one close holds the suspension of symbol
func (b *Bot) IsSuspended(ctx context.Context, symbol string) (bool, error) {
	holders, err := b.client.Get(ctx, botSuspendKey(symbol)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("bot - IsSuspended - Get: %w", err)
	}

	return holders > 0, nil
}
