// Package service position engine
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/OVantsevich/Position-Service/internal/model"

	"github.com/sirupsen/logrus"
)

// PositionRepository durable position store
//
//go:generate mockery --name=PositionRepository --case=underscore --output=./mocks
type PositionRepository interface {
	GetPositionByID(ctx context.Context, id int64) (*model.Position, error)
	GetUserPositions(ctx context.Context, userID int64) ([]*model.Position, error)
	GetSymbolPositions(ctx context.Context, symbol string) ([]*model.Position, error)
	SetTpSlOrders(ctx context.Context, positionID int64, takeProfitOrderID, stopLossOrderID *int64) error
}

// PositionCache low latency position snapshots kept warm by the matching pipeline
//
//go:generate mockery --name=PositionCache --case=underscore --output=./mocks
type PositionCache interface {
	Keys(ctx context.Context, userID int64) ([]string, error)
	Values(ctx context.Context, keys []string) ([]string, error)
	Get(ctx context.Context, key string) (string, error)
	SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
}

// PositionStore reads positions from the cache, repairs it from the durable store
// and resolves which of the two copies is fresher
type PositionStore struct {
	positionRepository PositionRepository
	positionCache      PositionCache
	divisor            int64
	repairTTL          time.Duration
	readTimeout        time.Duration
}

// NewPositionStore constructor. Every read is bounded by readTimeout when it is positive.
func NewPositionStore(pr PositionRepository, pc PositionCache, divisor int64, repairTTL, readTimeout time.Duration) *PositionStore {
	return &PositionStore{
		positionRepository: pr,
		positionCache:      pc,
		divisor:            divisor,
		repairTTL:          repairTTL,
		readTimeout:        readTimeout,
	}
}

func (s *PositionStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.readTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.readTimeout)
}

// timedOut err joined with model.ErrTimeout once the read deadline of ctx passed
func timedOut(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Join(model.ErrTimeout, err)
	}
	return err
}

// ListPositions non dust positions of the user filtered by contractType and symbol when they are not empty,
// newest first. PositionMargin of every returned position includes its TmpTotalFee.
func (s *PositionStore) ListPositions(ctx context.Context, userID int64, contractType model.ContractType, symbol string) ([]*model.Position, error) {
	cached, err := s.OpenPositions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("positionStore - ListPositions - OpenPositions: %w", err)
	}

	positions := make([]*model.Position, 0, len(cached))
	for _, p := range cached {
		if contractType != "" && p.ContractType != contractType {
			continue
		}
		if symbol != "" && p.Symbol != symbol {
			continue
		}
		annotated := *p
		annotated.PositionMargin = p.PositionMargin.Add(p.TmpTotalFee)
		positions = append(positions, &annotated)
	}
	sort.SliceStable(positions, func(i, j int) bool {
		return positions[i].LastOpenTime.After(positions[j].LastOpenTime)
	})

	return positions, nil
}

// OpenPositions cached non dust positions of the user as stored. Reading also repairs the cache
// from the durable store, so a cold cache is filled for the next read.
func (s *PositionStore) OpenPositions(ctx context.Context, userID int64) ([]*model.Position, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	keys, err := s.positionCache.Keys(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("positionStore - OpenPositions - Keys: %w", timedOut(ctx, err))
	}
	values, err := s.positionCache.Values(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("positionStore - OpenPositions - Values: %w", timedOut(ctx, err))
	}

	cached := make([]*model.Position, 0, len(values))
	for i, raw := range values {
		if raw == "" {
			continue
		}
		p, err := model.DecodePosition(raw)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"userID": userID,
				"key":    keys[i],
			}).Warnf("positionStore - OpenPositions - DecodePosition: %v", err)
			continue
		}
		cached = append(cached, p)
	}

	s.reconcile(ctx, userID, cached)

	positions := make([]*model.Position, 0, len(cached))
	for _, p := range cached {
		if p.IsDust() {
			continue
		}
		positions = append(positions, p)
	}
	return positions, nil
}

// reconcile writes durable positions missing from the cache back into it. Only the counts of both
// sides are compared. Failures are logged and never returned.
func (s *PositionStore) reconcile(ctx context.Context, userID int64, cached []*model.Position) {
	durable, err := s.positionRepository.GetUserPositions(ctx, userID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"userID": userID,
		}).Errorf("positionStore - reconcile - GetUserPositions: %v", err)
		return
	}
	if len(durable) == len(cached) {
		return
	}

	cachedIDs := make(map[int64]struct{}, len(cached))
	for _, p := range cached {
		cachedIDs[p.ID] = struct{}{}
	}
	for _, p := range durable {
		if _, ok := cachedIDs[p.ID]; ok {
			continue
		}
		fields := logrus.Fields{
			"userID":     userID,
			"positionID": p.ID,
		}
		raw, err := model.EncodePosition(p)
		if err != nil {
			logrus.WithFields(fields).Errorf("positionStore - reconcile - EncodePosition: %v", err)
			continue
		}
		written, err := s.positionCache.SetIfAbsent(ctx, model.PositionCacheKey(p.UserID, p.AccountID, p.ID), raw, s.repairTTL)
		if err != nil {
			logrus.WithFields(fields).Errorf("positionStore - reconcile - SetIfAbsent: %v", err)
			continue
		}
		if written {
			cacheRepairs.Inc()
		}
	}
}

// ReadAuthoritative the fresher of the durable and cached copies of a position.
// Take profit and stop loss order ids are written to the durable row only, so a fresher cached copy
// keeps the durable ids for the legs it does not know about yet.
func (s *PositionStore) ReadAuthoritative(ctx context.Context, positionID int64) (*model.Position, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	stored, err := s.positionRepository.GetPositionByID(ctx, positionID)
	if err != nil {
		return nil, fmt.Errorf("positionStore - ReadAuthoritative - GetPositionByID: %w", timedOut(ctx, err))
	}

	fields := logrus.Fields{
		"userID":     stored.UserID,
		"positionID": positionID,
	}
	raw, err := s.positionCache.Get(ctx, model.PositionCacheKey(stored.UserID, stored.AccountID, stored.ID))
	if err != nil {
		logrus.WithFields(fields).Warnf("positionStore - ReadAuthoritative - Get: %v", err)
		return stored, nil
	}
	if raw == "" {
		return stored, nil
	}
	cached, err := model.DecodePosition(raw)
	if err != nil {
		logrus.WithFields(fields).Warnf("positionStore - ReadAuthoritative - DecodePosition: %v", err)
		return stored, nil
	}

	if s.fresher(cached, stored) {
		if cached.TakeProfitOrderID == nil {
			cached.TakeProfitOrderID = stored.TakeProfitOrderID
		}
		if cached.StopLossOrderID == nil {
			cached.StopLossOrderID = stored.StopLossOrderID
		}
		return cached, nil
	}
	return stored, nil
}

// fresher operation ids wrap at divisor, the greater remainder is the later write
func (s *PositionStore) fresher(a, b *model.Position) bool {
	return a.OperationID%s.divisor > b.OperationID%s.divisor
}
