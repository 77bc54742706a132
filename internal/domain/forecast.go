package domain

import "context"

// ForecastPoint is one normalized hour of StormGlass data for a coordinate.
type ForecastPoint struct {
	Time           string  `json:"time"`
	WaveHeight     float64 `json:"waveHeight"`
	WaveDirection  float64 `json:"waveDirection"`
	SwellDirection float64 `json:"swellDirection"`
	SwellHeight    float64 `json:"swellHeight"`
	SwellPeriod    float64 `json:"swellPeriod"`
	WindDirection  float64 `json:"windDirection"`
	WindSpeed      float64 `json:"windSpeed"`
}

// PointFetcher returns the normalized forecast points for a coordinate.
type PointFetcher interface {
	FetchPoints(ctx context.Context, lat, lng float64) ([]ForecastPoint, error)
}

// BeachForecast is a forecast point enriched with the beach it belongs to
// and its rating. The embedded point fields are flattened in JSON.
type BeachForecast struct {
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Rating   int      `json:"rating"`
	ForecastPoint
}

// NewBeachForecast merges beach metadata, a point and its rating.
// The owning user is not carried over.
func NewBeachForecast(beach Beach, point ForecastPoint, rating int) BeachForecast {
	return BeachForecast{
		Name:          beach.Name,
		Position:      beach.Position,
		Lat:           beach.Lat,
		Lng:           beach.Lng,
		Rating:        rating,
		ForecastPoint: point,
	}
}

// TimeForecast groups every beach forecast sharing the same time.
type TimeForecast struct {
	Time     string          `json:"time"`
	Forecast []BeachForecast `json:"forecast"`
}
