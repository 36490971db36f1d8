package stats

import (
	"context"
	"time"

	"skybook/internal/airline"
	"skybook/pkg/cache"
)

// Service proxies the admin dashboard counters with a short cache so a
// dashboard polling every few seconds doesn't hammer the backend.
type Service interface {
	Summary(ctx context.Context) (*airline.Stats, error)
}

type service struct {
	api   airline.Client
	cache cache.Service
	ttl   time.Duration
}

func NewService(api airline.Client, cacheService cache.Service, ttl time.Duration) Service {
	return &service{api: api, cache: cacheService, ttl: ttl}
}

func (s *service) Summary(ctx context.Context) (*airline.Stats, error) {
	var stats airline.Stats
	err := s.cache.GetOrSet(ctx, "stats:summary", s.ttl, func() (interface{}, error) {
		return s.api.GetStats(ctx)
	}, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
