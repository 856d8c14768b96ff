package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orourkera/rucking/internal/db"
)

type Service struct {
	db    db.Querier
	cache *redis.Client
	ttl   time.Duration
}

// NewService builds the aggregator. cache may be nil and ttl zero, in
// which case every request recomputes from the store.
func NewService(db db.Querier, cache *redis.Client, ttl time.Duration) *Service {
	return &Service{db: db, cache: cache, ttl: ttl}
}

const rollupColumns = `
	SELECT COALESCE(SUM(distance_km),0),
	       COALESCE(SUM(elevation_gain_m),0),
	       COALESCE(SUM(calories_burned),0),
	       COALESCE(AVG(distance_km),0),
	       COUNT(id),
	       COALESCE(SUM(duration_seconds),0)
	FROM ruck_sessions
	WHERE user_id=$1 AND status='completed'`

// Weekly aggregates completed sessions whose end time falls in the given
// ISO week. week and year of zero mean "all completed sessions".
func (s *Service) Weekly(ctx context.Context, userID string, week, year int) (Rollup, error) {
	key := fmt.Sprintf("stats:%s:weekly:%d-%d", userID, year, week)
	if rollup, ok := s.cached(ctx, key); ok {
		return rollup, nil
	}

	var (
		rollup Rollup
		err    error
	)
	if week > 0 && year > 0 {
		rollup, err = s.aggregate(ctx, rollupColumns+`
		  AND EXTRACT(WEEK FROM end_time)=$2 AND EXTRACT(YEAR FROM end_time)=$3`,
			userID, week, year)
	} else {
		rollup, err = s.aggregate(ctx, rollupColumns, userID)
	}
	if err != nil {
		return Rollup{}, err
	}

	s.store(ctx, key, rollup)
	return rollup, nil
}

// Monthly aggregates completed sessions whose end time falls in the given
// calendar month.
func (s *Service) Monthly(ctx context.Context, userID string, month, year int) (Rollup, error) {
	key := fmt.Sprintf("stats:%s:monthly:%d-%d", userID, year, month)
	if rollup, ok := s.cached(ctx, key); ok {
		return rollup, nil
	}

	var (
		rollup Rollup
		err    error
	)
	if month > 0 && year > 0 {
		rollup, err = s.monthly(ctx, userID, month, year)
	} else {
		rollup, err = s.aggregate(ctx, rollupColumns, userID)
	}
	if err != nil {
		return Rollup{}, err
	}

	s.store(ctx, key, rollup)
	return rollup, nil
}

func (s *Service) monthly(ctx context.Context, userID string, month, year int) (Rollup, error) {
	return s.aggregate(ctx, rollupColumns+`
		  AND EXTRACT(MONTH FROM end_time)=$2 AND EXTRACT(YEAR FROM end_time)=$3`,
		userID, month, year)
}

// Yearly aggregates a full year and, when a year is supplied, attaches a
// breakdown of exactly 12 month-tagged rollups, zero-valued months
// included.
func (s *Service) Yearly(ctx context.Context, userID string, year int) (YearlyRollup, error) {
	key := fmt.Sprintf("stats:%s:yearly:%d", userID, year)
	if s.cache != nil && s.ttl > 0 {
		if raw, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var rollup YearlyRollup
			if json.Unmarshal(raw, &rollup) == nil {
				return rollup, nil
			}
		}
	}

	var (
		total Rollup
		err   error
	)
	if year > 0 {
		total, err = s.aggregate(ctx, rollupColumns+`
		  AND EXTRACT(YEAR FROM end_time)=$2`, userID, year)
	} else {
		total, err = s.aggregate(ctx, rollupColumns, userID)
	}
	if err != nil {
		return YearlyRollup{}, err
	}

	rollup := YearlyRollup{Rollup: total}
	if year > 0 {
		for month := 1; month <= 12; month++ {
			monthRollup, err := s.monthly(ctx, userID, month, year)
			if err != nil {
				return YearlyRollup{}, err
			}
			rollup.MonthlyBreakdown = append(rollup.MonthlyBreakdown, MonthlyRollup{Month: month, Rollup: monthRollup})
		}
	}

	if s.cache != nil && s.ttl > 0 {
		if raw, err := json.Marshal(rollup); err == nil {
			s.cache.Set(ctx, key, raw, s.ttl)
		}
	}
	return rollup, nil
}

func (s *Service) aggregate(ctx context.Context, query string, args ...any) (Rollup, error) {
	var rollup Rollup
	err := s.db.QueryRow(ctx, query, args...).Scan(
		&rollup.TotalDistanceKm,
		&rollup.TotalElevationGainM,
		&rollup.TotalCaloriesBurned,
		&rollup.AverageDistanceKm,
		&rollup.SessionCount,
		&rollup.TotalDurationSeconds,
	)
	if err != nil {
		return Rollup{}, err
	}
	return rollup, nil
}

func (s *Service) cached(ctx context.Context, key string) (Rollup, bool) {
	if s.cache == nil || s.ttl <= 0 {
		return Rollup{}, false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return Rollup{}, false
	}
	var rollup Rollup
	if err := json.Unmarshal(raw, &rollup); err != nil {
		return Rollup{}, false
	}
	return rollup, true
}

func (s *Service) store(ctx context.Context, key string, rollup Rollup) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	if raw, err := json.Marshal(rollup); err == nil {
		s.cache.Set(ctx, key, raw, s.ttl)
	}
}
