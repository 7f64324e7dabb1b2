package geolocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

const DefaultIPLookupURL = "https://ipapi.co/json/"

type ipResponse struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	City        string   `json:"city"`
	CountryName string   `json:"country_name"`
	Error       bool     `json:"error"`
	Reason      string   `json:"reason"`
}

// IPLocator estimates the position from the public IP address
type IPLocator struct {
	url        string
	userAgent  string
	httpClient *http.Client
}

// NewIPLocator creates a locator querying url, or DefaultIPLookupURL when empty
func NewIPLocator(url, userAgent string) *IPLocator {
	if url == "" {
		url = DefaultIPLookupURL
	}
	return &IPLocator{
		url:        url,
		userAgent:  userAgent,
		httpClient: &http.Client{},
	}
}

// Locate performs a single lookup
func (l *IPLocator) Locate(ctx context.Context) (*Fix, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if l.userAgent != "" {
		req.Header.Set("User-Agent", l.userAgent)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPositionUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: lookup service returned status %d", ErrPermissionDenied, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: lookup service returned status %d", ErrPositionUnavailable, resp.StatusCode)
	}

	var body ipResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrPositionUnavailable, err)
	}
	if body.Error {
		return nil, fmt.Errorf("%w: %s", ErrPositionUnavailable, body.Reason)
	}
	if body.Latitude == nil || body.Longitude == nil {
		return nil, fmt.Errorf("%w: response has no coordinates", ErrPositionUnavailable)
	}

	return &Fix{
		Coordinates: models.Coordinates{Latitude: *body.Latitude, Longitude: *body.Longitude},
		City:        body.City,
		Country:     body.CountryName,
	}, nil
}
