package repository

import (
	"context"
	"fmt"

	"github.com/OVantsevich/Position-Service/internal/model"

	"github.com/jackc/pgx/v5"
)

// Outbox postgres command outbox. Commands are enqueued in the caller's transaction
// and published later by the relay.
type Outbox struct {
	runner PgxWithinTransactionRunner
}

// NewOutboxRepository creating new Outbox repository
func NewOutboxRepository(runner PgxWithinTransactionRunner) *Outbox {
	return &Outbox{runner: runner}
}

// Enqueue insert commands, assigning their IDs
func (r *Outbox) Enqueue(ctx context.Context, commands ...*model.Command) error {
	if len(commands) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, c := range commands {
		batch.Queue(`insert into command_outbox (request_id, code, data, created_at) values ($1, $2, $3, $4) returning id`,
			c.RequestID, string(c.Code), []byte(c.Data), c.CreatedAt)
	}
	results := r.runner.SendBatch(ctx, batch)
	for _, c := range commands {
		if err := results.QueryRow().Scan(&c.ID); err != nil {
			_ = results.Close()
			return fmt.Errorf("outbox - Enqueue - Scan: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("outbox - Enqueue - Close: %w", err)
	}

	return nil
}

// Pending oldest unpublished commands; rows stay locked until the surrounding transaction ends
func (r *Outbox) Pending(ctx context.Context, limit int) ([]*model.Command, error) {
	rows, err := r.runner.Query(ctx,
		`select id, request_id, code, data, created_at from command_outbox
		where published_at is null order by id limit $1 for update skip locked`, limit)
	if err != nil {
		return nil, fmt.Errorf("outbox - Pending - Query: %w", err)
	}
	defer rows.Close()

	var commands []*model.Command
	for rows.Next() {
		c := &model.Command{}
		var data []byte
		if err = rows.Scan(&c.ID, &c.RequestID, &c.Code, &data, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("outbox - Pending - Scan: %w", err)
		}
		c.Data = data
		commands = append(commands, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("outbox - Pending - Rows: %w", err)
	}

	return commands, nil
}

// MarkPublished stamp commands as delivered to the bus
func (r *Outbox) MarkPublished(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.runner.Exec(ctx, `update command_outbox set published_at = now() where id = any($1)`, ids)
	if err != nil {
		return fmt.Errorf("outbox - MarkPublished - Exec: %w", err)
	}

	return nil
}
