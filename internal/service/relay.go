package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/OVantsevich/Position-Service/internal/model"

	"github.com/sirupsen/logrus"
)

// CommandBus matching engine input stream
//
//go:generate mockery --name=CommandBus --case=underscore --output=./mocks
type CommandBus interface {
	Publish(ctx context.Context, command *model.Command) error
}

// Relay moves commands from the outbox to the command bus. Delivery is at least once:
// a command published right before a failed commit is published again on the next pass.
type Relay struct {
	outbox         CommandOutbox
	transactor     Transactor
	bus            CommandBus
	interval       time.Duration
	batchSize      int
	publishTimeout time.Duration
	publishBudget  time.Duration
}

// NewRelay constructor. publishBudget bounds the publishing part of one Flush and must stay
// below the transaction timeout of the transactor, the rest of it is left for marking.
func NewRelay(outbox CommandOutbox, tx Transactor, bus CommandBus, interval time.Duration, batchSize int,
	publishTimeout, publishBudget time.Duration) *Relay {
	return &Relay{
		outbox:         outbox,
		transactor:     tx,
		bus:            bus,
		interval:       interval,
		batchSize:      batchSize,
		publishTimeout: publishTimeout,
		publishBudget:  publishBudget,
	}
}

// Run publish pending commands every interval until ctx is done
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.drain(ctx)
		}
	}
}

// drain flushes full batches back to back so a backlog does not wait a tick per batch
func (r *Relay) drain(ctx context.Context) {
	for ctx.Err() == nil {
		published, err := r.Flush(ctx)
		if err != nil {
			logrus.Errorf("relay - drain - Flush: %v", err)
			return
		}
		if published < r.batchSize {
			return
		}
	}
}

// Flush publish one batch of pending commands in outbox order and mark the delivered ones.
// Publishing stops at the first failure or once the publish budget is spent; commands before
// that point are marked, the rest wait for the next Flush.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	var published int
	var publishErr error
	err := r.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		commands, err := r.outbox.Pending(ctx, r.batchSize)
		if err != nil {
			return err
		}

		budgetCtx, cancel := context.WithTimeout(ctx, r.publishBudget)
		defer cancel()
		ids := make([]int64, 0, len(commands))
		for _, c := range commands {
			if budgetCtx.Err() != nil {
				break
			}
			if publishErr = r.publish(budgetCtx, c); publishErr != nil {
				if budgetCtx.Err() != nil && ctx.Err() == nil {
					publishErr = nil
				}
				break
			}
			ids = append(ids, c.ID)
		}
		if len(ids) == 0 {
			return nil
		}
		if err = r.outbox.MarkPublished(ctx, ids); err != nil {
			return err
		}
		published = len(ids)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("relay - Flush - WithinTransaction: %w", err)
	}
	if publishErr != nil {
		return published, fmt.Errorf("relay - Flush - publish: %w", publishErr)
	}

	return published, nil
}

func (r *Relay) publish(ctx context.Context, command *model.Command) error {
	ctx, cancel := context.WithTimeout(ctx, r.publishTimeout)
	defer cancel()
	if err := r.bus.Publish(ctx, command); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return errors.Join(model.ErrTimeout, err)
		}
		return err
	}
	commandsPublished.WithLabelValues(string(command.Code)).Inc()
	relayLag.Observe(time.Since(command.CreatedAt).Seconds())
	return nil
}
