package models

import (
	"strings"
	"time"
)

// MinHourlyEntries is the shortest hourly series the forecast provider returns
const MinHourlyEntries = 24

// Coordinates is a latitude/longitude pair in degrees
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Location is display metadata for a bundle that came from a text search
type Location struct {
	City        string
	Country     string
	DisplayName string
}

// NewLocation derives city and country from a comma separated display name
// ("Hanoi, Vietnam" -> city "Hanoi", country "Vietnam")
func NewLocation(displayName string) *Location {
	parts := strings.Split(displayName, ", ")
	return &Location{
		City:        strings.TrimSpace(parts[0]),
		Country:     strings.TrimSpace(parts[len(parts)-1]),
		DisplayName: displayName,
	}
}

// Units maps each measured field to the unit string reported by the provider
type Units struct {
	Temperature         string
	ApparentTemperature string
	Humidity            string
	CloudCover          string
	WindSpeed           string
	WindDirection       string
	Precipitation       string
}

// CurrentObservation is the live observation of a bundle
type CurrentObservation struct {
	Time                time.Time
	Temperature         float64
	WeatherCode         int
	ApparentTemperature *float64
	Humidity            *float64
	CloudCover          *float64
	WindSpeed           *float64
	WindDirection       *float64
	Precipitation       *float64
}

// HourlySeries holds parallel arrays indexed by position in Time.
// Optional series are nil when the provider omitted them, and individual
// elements are nil when the provider returned null for that hour.
type HourlySeries struct {
	Time          []time.Time
	Temperature   []float64
	WeatherCode   []int
	Precipitation []float64

	Humidity            []*float64
	WindSpeed           []*float64
	WindDirection       []*float64
	CloudCover          []*float64
	ApparentTemperature []*float64
}

// Len returns the number of hourly slots
func (h *HourlySeries) Len() int {
	return len(h.Time)
}

// IndexAt returns the slot whose timestamp is the hour containing t.
// Matching is on the full timestamp, so the same hour on different days never collides.
func (h *HourlySeries) IndexAt(t time.Time) (int, bool) {
	for i, slot := range h.Time {
		if !t.Before(slot) && t.Before(slot.Add(time.Hour)) {
			return i, true
		}
	}
	return -1, false
}

// ForecastBundle is one fetched forecast response. It is read-only once handed to the UI.
type ForecastBundle struct {
	Coordinates          Coordinates
	Timezone             string
	TimezoneAbbreviation string
	UTCOffset            int // seconds east of UTC
	Current              CurrentObservation
	CurrentUnits         Units
	HourlyUnits          Units
	Hourly               HourlySeries
	Location             *Location // set only for bundles resolved from a text search
	FetchedAt            time.Time
}

// TimeLocation returns the fixed zone the bundle's timestamps are expressed in
func (b *ForecastBundle) TimeLocation() *time.Location {
	name := b.TimezoneAbbreviation
	if name == "" {
		name = b.Timezone
	}
	if name == "" {
		name = "UTC"
	}
	return time.FixedZone(name, b.UTCOffset)
}

// DisplayName returns the name shown in the dashboard header
func (b *ForecastBundle) DisplayName() string {
	if b.Location != nil && b.Location.DisplayName != "" {
		return b.Location.DisplayName
	}
	return "Current Location"
}
