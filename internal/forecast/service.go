// Package forecast turns a user's beaches into rated forecast points grouped by time.
package forecast

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/surf-forecast-service/internal/domain"
	"github.com/couchcryptid/surf-forecast-service/internal/observability"
)

// RatingProvider scores a forecast point for a beach on a 1 to 5 scale.
type RatingProvider interface {
	Rate(beach domain.Beach, point domain.ForecastPoint) int
}

// ProcessingError wraps any failure that aborted a forecast aggregation.
type ProcessingError struct {
	Err error
}

func (e *ProcessingError) Error() string {
	return "unexpected error during the forecast processing: " + e.Err.Error()
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// Service fetches points for each beach, rates them, and groups them by time.
type Service struct {
	fetcher domain.PointFetcher
	rating  RatingProvider
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewService creates a forecast Service. A nil rating uses domain.Rating.
func NewService(fetcher domain.PointFetcher, rating RatingProvider, metrics *observability.Metrics, logger *slog.Logger) *Service {
	if rating == nil {
		rating = domain.Rating{}
	}
	return &Service{
		fetcher: fetcher,
		rating:  rating,
		metrics: metrics,
		logger:  logger,
	}
}

// ProcessForecastForBeaches fetches and rates the forecast for every beach in
// order, then groups the results by point time in order of first occurrence.
// Any fetch error aborts the whole call with a *ProcessingError.
func (s *Service) ProcessForecastForBeaches(ctx context.Context, beaches []domain.Beach) ([]domain.TimeForecast, error) {
	s.logger.Info("preparing the forecast", "beaches", len(beaches))
	start := time.Now()

	flat := make([]domain.BeachForecast, 0, len(beaches)*24)
	for _, beach := range beaches {
		points, err := s.fetcher.FetchPoints(ctx, beach.Lat, beach.Lng)
		if err != nil {
			s.metrics.ForecastRequests.WithLabelValues("error").Inc()
			s.metrics.ForecastDuration.Observe(time.Since(start).Seconds())
			s.logger.Error("forecast processing failed",
				"beach", beach.Name,
				"lat", beach.Lat,
				"lng", beach.Lng,
				"error", err,
			)
			return nil, &ProcessingError{Err: err}
		}
		flat = append(flat, s.enrichBeachData(points, beach)...)
		s.metrics.BeachesProcessed.Inc()
	}

	grouped := mapForecastByTime(flat)
	s.metrics.ForecastRequests.WithLabelValues("success").Inc()
	s.metrics.ForecastDuration.Observe(time.Since(start).Seconds())
	s.logger.Debug("forecast prepared", "beaches", len(beaches), "times", len(grouped))
	return grouped, nil
}

func (s *Service) enrichBeachData(points []domain.ForecastPoint, beach domain.Beach) []domain.BeachForecast {
	out := make([]domain.BeachForecast, 0, len(points))
	for _, p := range points {
		out = append(out, domain.NewBeachForecast(beach, p, s.rating.Rate(beach, p)))
	}
	return out
}

// mapForecastByTime groups entries by Time, keeping first-occurrence order of
// times and input order within each group.
func mapForecastByTime(entries []domain.BeachForecast) []domain.TimeForecast {
	grouped := make([]domain.TimeForecast, 0)
	for _, entry := range entries {
		i := indexOfTime(grouped, entry.Time)
		if i < 0 {
			grouped = append(grouped, domain.TimeForecast{Time: entry.Time, Forecast: []domain.BeachForecast{entry}})
			continue
		}
		grouped[i].Forecast = append(grouped[i].Forecast, entry)
	}
	return grouped
}

func indexOfTime(groups []domain.TimeForecast, t string) int {
	for i, g := range groups {
		if g.Time == t {
			return i
		}
	}
	return -1
}
