// Package openmeteo fetches forecast bundles from the Open-Meteo forecast API
package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/sony/gobreaker"
)

const DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// Fields requested for both the current observation and the hourly series
var requestedFields = []string{
	"temperature_2m",
	"relative_humidity_2m",
	"cloud_cover",
	"wind_speed_10m",
	"weather_code",
	"precipitation",
	"wind_direction_10m",
	"apparent_temperature",
}

// ForecastClient fetches a forecast bundle for a coordinate pair
type ForecastClient interface {
	Fetch(ctx context.Context, coords models.Coordinates) (*models.ForecastBundle, error)
}

// Client implements ForecastClient against the Open-Meteo API.
// Each call is a single attempt; the breaker only short-circuits while the API keeps failing.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a forecast client. An empty baseURL selects the public API.
func NewClient(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		userAgent:  userAgent,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "open-meteo-forecast",
			Timeout: time.Minute,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			IsSuccessful: countsAsSuccess,
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Printf("circuit %s: %s -> %s", name, from, to)
			},
		}),
	}
}

// Fetch retrieves the current observation and hourly series for coords
func (c *Client) Fetch(ctx context.Context, coords models.Coordinates) (*models.ForecastBundle, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	params.Set("current", strings.Join(requestedFields, ","))
	params.Set("hourly", strings.Join(requestedFields, ","))
	params.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("reading response: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &statusError{code: resp.StatusCode, reason: apiReason(body)}
		}
		return body, nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", models.ErrTransport, err)
	}

	var payload forecastResponse
	if err := json.Unmarshal(result.([]byte), &payload); err != nil {
		return nil, fmt.Errorf("%w: decoding forecast: %v", models.ErrDataIntegrity, err)
	}

	bundle, err := payload.toBundle()
	if err != nil {
		return nil, err
	}
	bundle.FetchedAt = time.Now()
	return bundle, nil
}

// statusError is a non-2xx answer from the forecast API
type statusError struct {
	code   int
	reason string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("forecast API returned status %d: %s", e.code, e.reason)
}

// countsAsSuccess reports whether err leaves the breaker's failure count alone.
// Only server-side failures and network errors should open the circuit.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code < 500
	}
	return false
}

// apiReason extracts the "reason" field Open-Meteo puts in error bodies
func apiReason(body []byte) string {
	var e struct {
		Reason string `json:"reason"`
	}
	if json.Unmarshal(body, &e) == nil && e.Reason != "" {
		return e.Reason
	}
	if len(body) > 200 {
		body = body[:200]
	}
	return string(body)
}
