package repository

import (
	"context"
	"fmt"

	"github.com/OVantsevich/Position-Service/internal/model"

	"github.com/go-redis/redis/v8"
)

// CommandBus publisher to the matching engine input stream
type CommandBus struct {
	client *redis.Client
	stream string
}

// NewCommandBus command bus constructor
func NewCommandBus(client *redis.Client, stream string) *CommandBus {
	return &CommandBus{client: client, stream: stream}
}

// Publish append command to the stream as {code, data, requestId}
func (b *CommandBus) Publish(ctx context.Context, command *model.Command) error {
	err := b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: b.stream,
		Values: map[string]interface{}{
			"code":      string(command.Code),
			"data":      string(command.Data),
			"requestId": command.RequestID,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("commandBus - Publish - XAdd: %w", err)
	}

	return nil
}
