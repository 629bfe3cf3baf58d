package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/grievance-desk/internal/models"
	appErrors "github.com/noah-isme/grievance-desk/pkg/errors"
)

type grievanceLister interface {
	ListAll(ctx context.Context) ([]models.Grievance, error)
}

// StatsService computes aggregate statistics over the principal's visible
// record set, with an optional Redis-backed cache in front. The cached
// payload is keyed by visibility scope so a restricted caller never reads a
// privileged aggregate.
type StatsService struct {
	repo   grievanceLister
	cache  *CacheService
	logger *zap.Logger
}

// NewStatsService constructs the service.
func NewStatsService(repo grievanceLister, cache *CacheService, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{repo: repo, cache: cache, logger: logger}
}

// Overview returns aggregate statistics for the principal's visible set. The
// boolean reports whether the payload came from cache.
func (s *StatsService) Overview(ctx context.Context, principal models.Principal) (*models.AggregateStats, bool, error) {
	if principal.ID == "" {
		return nil, false, appErrors.ErrUnauthorized
	}

	key := statsCacheKey(principal)
	if s.cache.Enabled() {
		var cached models.AggregateStats
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to load grievances")
	}

	stats := Aggregate(FilterVisible(principal, all))

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, key, stats, 0); err != nil {
			s.logger.Warn("stats cache write failed", zap.Error(err))
		}
	}
	return &stats, false, nil
}

func statsCacheKey(principal models.Principal) string {
	if principal.Privileged() {
		return "stats:overview:all"
	}
	return fmt.Sprintf("stats:overview:employee:%s", principal.ID)
}
