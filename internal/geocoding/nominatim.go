package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

const DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"

// nominatimResponse represents one Nominatim search candidate
type nominatimResponse struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// Search returns Nominatim's candidates for query in ranked order
func (g *Geocoder) Search(ctx context.Context, query string) ([]Location, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", strconv.Itoa(g.limit))
	if g.language != "" {
		params.Set("accept-language", g.language)
	}

	if err := g.limiter.Wait(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: waiting for rate limiter: %v", models.ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: executing request: %v", models.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: nominatim API returned status %d", models.ErrTransport, resp.StatusCode)
	}

	var results []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", models.ErrDataIntegrity, err)
	}

	locations := make([]Location, 0, len(results))
	for _, r := range results {
		lat, err := strconv.ParseFloat(strings.TrimSpace(r.Lat), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing latitude %q: %v", models.ErrDataIntegrity, r.Lat, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(r.Lon), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing longitude %q: %v", models.ErrDataIntegrity, r.Lon, err)
		}
		name := r.DisplayName
		if name == "" {
			name = r.Name
		}
		locations = append(locations, Location{
			Latitude:  lat,
			Longitude: lon,
			Name:      name,
		})
	}

	return locations, nil
}
