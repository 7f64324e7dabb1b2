// Package geolocation provides the device position used for the initial forecast load
package geolocation

import (
	"context"
	"errors"
	"fmt"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

var (
	// ErrPermissionDenied means the user or configuration refused location access.
	ErrPermissionDenied = errors.New("location access denied")
	// ErrUnsupported means no location provider is available.
	ErrUnsupported = errors.New("location is not supported")
	// ErrPositionUnavailable means the provider could not produce a fix right now.
	ErrPositionUnavailable = errors.New("position unavailable")
)

// Mode selects the location provider
type Mode string

const (
	ModeIP     Mode = "ip"
	ModeStatic Mode = "static"
	ModeOff    Mode = "off"
)

// Fix is a single best-effort position
type Fix struct {
	Coordinates models.Coordinates
	City        string
	Country     string
}

// Locator produces one best-effort fix per call. Failures are never retried.
type Locator interface {
	Locate(ctx context.Context) (*Fix, error)
}

// Options configures New
type Options struct {
	Mode      Mode
	URL       string // IP lookup endpoint, ModeIP only
	UserAgent string
	Latitude  float64 // ModeStatic only
	Longitude float64
}

// New returns the Locator for opts.Mode
func New(opts Options) Locator {
	switch opts.Mode {
	case ModeIP:
		return NewIPLocator(opts.URL, opts.UserAgent)
	case ModeStatic:
		return Static(models.Coordinates{Latitude: opts.Latitude, Longitude: opts.Longitude})
	case ModeOff:
		return Disabled{}
	default:
		return unsupported{mode: opts.Mode}
	}
}

// Static always reports the same coordinates
type Static models.Coordinates

func (s Static) Locate(ctx context.Context) (*Fix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Fix{Coordinates: models.Coordinates(s)}, nil
}

// Disabled refuses every request
type Disabled struct{}

func (Disabled) Locate(context.Context) (*Fix, error) {
	return nil, fmt.Errorf("%w: location lookup is turned off", ErrPermissionDenied)
}

type unsupported struct {
	mode Mode
}

func (u unsupported) Locate(context.Context) (*Fix, error) {
	return nil, fmt.Errorf("%w: unknown provider %q", ErrUnsupported, u.mode)
}
