// Package geocoding resolves free-text queries to coordinates
package geocoding

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"golang.org/x/time/rate"
)

// Nominatim usage policy allows one request per second
const nominatimInterval = time.Second

var zipcodePattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// Location represents a geocoded search candidate
type Location struct {
	Latitude  float64
	Longitude float64
	Name      string
}

// Coordinates returns the location's coordinate pair
func (l *Location) Coordinates() models.Coordinates {
	return models.Coordinates{Latitude: l.Latitude, Longitude: l.Longitude}
}

// Resolver turns a query into the single best location
type Resolver interface {
	Geocode(ctx context.Context, query string) (*Location, error)
}

// Options configures a Geocoder
type Options struct {
	BaseURL   string // Nominatim search endpoint
	UserAgent string // required by the Nominatim usage policy
	Language  string // accept-language preference
	Limit     int    // candidates requested per search
	ZipcodeDB *sql.DB
}

// Geocoder searches Nominatim, answering US zipcodes from the local table when it is provisioned
type Geocoder struct {
	baseURL    string
	userAgent  string
	language   string
	limit      int
	httpClient *http.Client
	limiter    *rate.Limiter
	zipDB      *sql.DB
}

// NewGeocoder creates a new geocoder
func NewGeocoder(opts Options) *Geocoder {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultNominatimURL
	}
	if opts.Limit <= 0 {
		opts.Limit = 5
	}
	return &Geocoder{
		baseURL:    opts.BaseURL,
		userAgent:  opts.UserAgent,
		language:   opts.Language,
		limit:      opts.Limit,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Every(nominatimInterval), 1),
		zipDB:      opts.ZipcodeDB,
	}
}

// Geocode returns the first ranked candidate for query.
// An empty result set is models.ErrNotFound, not a transport error.
func (g *Geocoder) Geocode(ctx context.Context, query string) (*Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	if isZipcode(query) && g.zipDB != nil {
		loc, err := lookupZipcodeInDB(g.zipDB, query)
		if err == nil {
			return loc, nil
		}
		log.Printf("zipcode lookup for %s: %v", query, err)
		// a zipcode missing locally may still be known to Nominatim
	}

	results, err := g.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no results for '%s'", models.ErrNotFound, query)
	}
	return &results[0], nil
}

// isZipcode checks if a string looks like a US zipcode
func isZipcode(s string) bool {
	return zipcodePattern.MatchString(s)
}
