package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/umbrella-gate/internal/domain"
	"github.com/couchcryptid/umbrella-gate/internal/observability"
)

const (
	defaultBaseURL = "https://api.open-meteo.com/v1/forecast"
	currentFields  = "rain,showers,weather_code,wind_speed_10m,is_day"
)

// Client implements domain.WeatherProvider using the Open-Meteo forecast API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an Open-Meteo client.
func NewClient(timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: defaultBaseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// Current fetches current conditions for a coordinate.
func (c *Client) Current(ctx context.Context, lat, lon float64) (domain.Observation, error) {
	params := url.Values{
		"latitude":        {strconv.FormatFloat(lat, 'f', 4, 64)},
		"longitude":       {strconv.FormatFloat(lon, 'f', 4, 64)},
		"current":         {currentFields},
		"wind_speed_unit": {"kmh"},
		"timezone":        {"GMT"},
	}

	start := time.Now()
	obs, err := c.doRequest(ctx, c.baseURL+"?"+params.Encode())
	c.metrics.WeatherAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.WeatherRequests.WithLabelValues("error").Inc()
		return domain.Observation{}, err
	}
	c.metrics.WeatherRequests.WithLabelValues("success").Inc()
	return obs, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (domain.Observation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("current weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return domain.Observation{}, fmt.Errorf("open-meteo API error: status %d: %s", resp.StatusCode, body)
	}

	var meteoResp response
	if err := json.NewDecoder(resp.Body).Decode(&meteoResp); err != nil {
		return domain.Observation{}, fmt.Errorf("decode response: %w", err)
	}
	if meteoResp.Current == nil {
		return domain.Observation{}, fmt.Errorf("decode response: missing current block")
	}

	cur := meteoResp.Current
	obs := domain.Observation{
		RainMM:       cur.Rain,
		ShowersMM:    cur.Showers,
		WeatherCode:  cur.WeatherCode,
		WindSpeedKMH: cur.WindSpeed,
		IsDay:        cur.IsDay == 1,
	}
	if t, err := time.Parse("2006-01-02T15:04", cur.Time); err == nil {
		obs.Time = t
	} else {
		c.logger.Debug("unparseable observation time", "time", cur.Time, "error", err)
	}
	return obs, nil
}

// Open-Meteo API response types.

type response struct {
	Current *current `json:"current"`
}

type current struct {
	Time        string  `json:"time"` // ISO 8601 without seconds, GMT
	Rain        float64 `json:"rain"`
	Showers     float64 `json:"showers"`
	WeatherCode int     `json:"weather_code"`
	WindSpeed   float64 `json:"wind_speed_10m"`
	IsDay       int     `json:"is_day"`
}
