package ui

import (
	"context"
	"errors"

	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/wmo"
)

// describeError maps an error to the single message shown to the user
func describeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, geolocation.ErrPermissionDenied):
		return "Location access was denied. Search for a place with / instead."
	case errors.Is(err, geolocation.ErrUnsupported):
		return "Location lookup is not supported here. Search for a place with / instead."
	case errors.Is(err, geolocation.ErrPositionUnavailable):
		return "Your position could not be determined right now. Press r to try again or / to search."
	case errors.Is(err, models.ErrNotFound):
		return "No matching location found. Check the spelling or try a nearby city."
	case errors.Is(err, wmo.ErrUnknownCode):
		return "The forecast contains a weather condition this app does not recognize."
	case errors.Is(err, models.ErrDataIntegrity):
		return "The forecast service returned data that could not be read."
	case errors.Is(err, models.ErrTransport):
		return "Could not reach the weather service. Check your connection and try again."
	case errors.Is(err, context.DeadlineExceeded):
		return "The request timed out. Please try again."
	}
	return err.Error()
}
