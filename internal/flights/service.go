package flights

import (
	"context"
	"fmt"
	"time"

	"skybook/internal/airline"
	"skybook/internal/shared/config"
	"skybook/pkg/cache"
)

// Service composes the flight views the browser renders: search results,
// flight detail, the airline list and the price range slider bounds. Reads
// go through the Redis cache; admin writes go straight to the backend and
// invalidate the affected keys.
type Service interface {
	Search(ctx context.Context, params airline.SearchParams) ([]airline.Flight, error)
	Get(ctx context.Context, id int) (*airline.Flight, error)
	Airlines(ctx context.Context) ([]string, error)
	PriceRange(ctx context.Context, travelers int) (*airline.PriceRange, error)

	Create(ctx context.Context, input airline.FlightInput) (*airline.Flight, error)
	Update(ctx context.Context, id int, input airline.FlightInput) (*airline.Flight, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	api   airline.Client
	cache cache.Service
	ttl   config.RedisConfig
}

func NewService(api airline.Client, cacheService cache.Service, redisCfg config.RedisConfig) Service {
	return &service{
		api:   api,
		cache: cacheService,
		ttl:   redisCfg,
	}
}

func (s *service) Search(ctx context.Context, params airline.SearchParams) ([]airline.Flight, error) {
	key := fmt.Sprintf("flights:search:%s:%s:%s:%d:%d",
		params.DepartureCity, params.ArrivalCity, params.Date, params.Skip, params.Limit)

	var flights []airline.Flight
	err := s.cache.GetOrSet(ctx, key, s.ttl.FlightTTL, func() (interface{}, error) {
		return s.api.SearchFlights(ctx, params)
	}, &flights)
	if err != nil {
		return nil, err
	}
	return flights, nil
}

func (s *service) Get(ctx context.Context, id int) (*airline.Flight, error) {
	key := fmt.Sprintf("flights:detail:%d", id)

	var flight airline.Flight
	err := s.cache.GetOrSet(ctx, key, s.ttl.FlightTTL, func() (interface{}, error) {
		return s.api.GetFlight(ctx, id)
	}, &flight)
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

func (s *service) Airlines(ctx context.Context) ([]string, error) {
	var airlines []string
	err := s.cache.GetOrSet(ctx, "flights:airlines", s.ttl.AirlinesTTL, func() (interface{}, error) {
		return s.api.GetAirlines(ctx)
	}, &airlines)
	if err != nil {
		return nil, err
	}
	return airlines, nil
}

func (s *service) PriceRange(ctx context.Context, travelers int) (*airline.PriceRange, error) {
	if travelers < 1 {
		travelers = 1
	}
	key := fmt.Sprintf("flights:price-range:%d", travelers)

	var pr airline.PriceRange
	err := s.cache.GetOrSet(ctx, key, s.ttl.PriceRangeTTL, func() (interface{}, error) {
		return s.api.GetPriceRange(ctx, travelers)
	}, &pr)
	if err != nil {
		return nil, err
	}
	return &pr, nil
}

func (s *service) Create(ctx context.Context, input airline.FlightInput) (*airline.Flight, error) {
	flight, err := s.api.CreateFlight(ctx, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, flight.ID)
	return flight, nil
}

func (s *service) Update(ctx context.Context, id int, input airline.FlightInput) (*airline.Flight, error) {
	flight, err := s.api.UpdateFlight(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return flight, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	if err := s.api.DeleteFlight(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// invalidate drops every cached view a flight write could have changed.
// Cache errors are ignored: stale entries age out via TTL anyway.
func (s *service) invalidate(ctx context.Context, id int) {
	invalidateCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	_ = s.cache.Delete(invalidateCtx, fmt.Sprintf("flights:detail:%d", id))
	_ = s.cache.DeletePattern(invalidateCtx, "flights:search:*")
	_ = s.cache.Delete(invalidateCtx, "flights:airlines")
	_ = s.cache.DeletePattern(invalidateCtx, "flights:price-range:*")
}
