package stormglass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/surf-forecast-service/internal/domain"
	"github.com/couchcryptid/surf-forecast-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Source is the upstream provider whose values are read from every field.
const Source = "noaa"

// forecastParams is the fixed field list requested from /weather/point.
var forecastParams = []string{
	"swellDirection",
	"swellHeight",
	"swellPeriod",
	"waveDirection",
	"waveHeight",
	"windDirection",
	"windSpeed",
}

// Client implements domain.PointFetcher against the StormGlass point forecast API.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	clock      clockwork.Clock
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a StormGlass client. baseURL is the API root without
// a trailing slash, e.g. https://api.stormglass.io/v2.
func NewClient(baseURL, token string, timeout time.Duration, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		clock:   clock,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchPoints requests the next day of hourly points for a coordinate and
// returns only the hours with a complete set of noaa values.
func (c *Client) FetchPoints(ctx context.Context, lat, lng float64) ([]domain.ForecastPoint, error) {
	end := c.clock.Now().AddDate(0, 0, 1).Unix()
	params := url.Values{
		"lat":    {formatCoordinate(lat)},
		"lng":    {formatCoordinate(lng)},
		"params": {strings.Join(forecastParams, ",")},
		"source": {Source},
		"end":    {strconv.FormatInt(end, 10)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather/point?"+params.Encode(), nil)
	if err != nil {
		return nil, &ClientRequestError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Authorization", c.token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.StormGlassAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.StormGlassRequests.WithLabelValues("transport_error").Inc()
		return nil, &ClientRequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.StormGlassRequests.WithLabelValues("response_error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return nil, &ResponseError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var sgResp forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&sgResp); err != nil {
		c.metrics.StormGlassRequests.WithLabelValues("decode_error").Inc()
		return nil, &ClientRequestError{Err: fmt.Errorf("decode response: %w", err)}
	}
	c.metrics.StormGlassRequests.WithLabelValues("success").Inc()

	points, dropped := normalize(sgResp, Source)
	if dropped > 0 {
		c.metrics.PointsDropped.Add(float64(dropped))
		c.logger.Debug("dropped incomplete forecast hours",
			"lat", lat,
			"lng", lng,
			"dropped", dropped,
			"kept", len(points),
		)
	}
	return points, nil
}

// normalize flattens each hour to the given source and drops hours with
// any value missing. It returns the kept points and the dropped count.
func normalize(resp forecastResponse, source string) ([]domain.ForecastPoint, int) {
	points := make([]domain.ForecastPoint, 0, len(resp.Hours))
	dropped := 0
	for _, h := range resp.Hours {
		point, ok := h.toPoint(source)
		if !ok {
			dropped++
			continue
		}
		points = append(points, point)
	}
	return points, dropped
}

// formatCoordinate renders a coordinate with the shortest exact decimal form,
// so 151.289824 stays "151.289824" and 10 stays "10".
func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// StormGlass API response types.

type forecastResponse struct {
	Hours []hour `json:"hours"`
}

// sourceValues maps a provider name to its reading. A null reading decodes
// to a nil pointer and counts as missing.
type sourceValues map[string]*float64

func (s sourceValues) value(source string) (float64, bool) {
	v, ok := s[source]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

type hour struct {
	Time           string       `json:"time"`
	WaveHeight     sourceValues `json:"waveHeight"`
	WaveDirection  sourceValues `json:"waveDirection"`
	SwellDirection sourceValues `json:"swellDirection"`
	SwellHeight    sourceValues `json:"swellHeight"`
	SwellPeriod    sourceValues `json:"swellPeriod"`
	WindDirection  sourceValues `json:"windDirection"`
	WindSpeed      sourceValues `json:"windSpeed"`
}

func (h hour) toPoint(source string) (domain.ForecastPoint, bool) {
	if h.Time == "" {
		return domain.ForecastPoint{}, false
	}

	p := domain.ForecastPoint{Time: h.Time}
	fields := []struct {
		values sourceValues
		dst    *float64
	}{
		{h.WaveHeight, &p.WaveHeight},
		{h.WaveDirection, &p.WaveDirection},
		{h.SwellDirection, &p.SwellDirection},
		{h.SwellHeight, &p.SwellHeight},
		{h.SwellPeriod, &p.SwellPeriod},
		{h.WindDirection, &p.WindDirection},
		{h.WindSpeed, &p.WindSpeed},
	}
	for _, f := range fields {
		v, ok := f.values.value(source)
		if !ok {
			return domain.ForecastPoint{}, false
		}
		*f.dst = v
	}
	return p, true
}
