// Package snapshot derives the display-ready forecast view from a fetched bundle
package snapshot

import (
	"errors"
	"fmt"
	"time"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/wmo"
)

// ErrIndexOutOfRange is returned when the selected hour is outside the hourly series
var ErrIndexOutOfRange = fmt.Errorf("%w: selected hour out of range", models.ErrDataIntegrity)

// CodeTable resolves a weather code for a day/night period
type CodeTable interface {
	Lookup(code int, period wmo.Period) (wmo.Entry, error)
}

// Builder turns a bundle and a selection into a ForecastSnapshot
type Builder struct {
	codes CodeTable
	now   func() time.Time
}

// NewBuilder creates a builder backed by the given code table
func NewBuilder(codes CodeTable) *Builder {
	return &Builder{
		codes: codes,
		now:   time.Now,
	}
}

// WithClock returns a copy of the builder that reads the wall clock from now
func (b *Builder) WithClock(now func() time.Time) *Builder {
	return &Builder{codes: b.codes, now: now}
}

// Build derives the snapshot for sel. With a live selection the current observation is
// the source and the timestamp is the wall clock in the bundle's zone. With an hour
// selected, hourly values at that index win for every field the bundle provides.
func (b *Builder) Build(bundle *models.ForecastBundle, sel models.Selection) (*models.ForecastSnapshot, error) {
	if bundle == nil {
		return nil, errors.New("no forecast bundle")
	}

	idx, hourly := sel.Index()
	if hourly && (idx < 0 || idx >= bundle.Hourly.Len()) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, idx, bundle.Hourly.Len())
	}

	cur := bundle.Current
	snap := &models.ForecastSnapshot{Selection: sel}

	if hourly {
		h := bundle.Hourly
		if idx >= len(h.Temperature) || idx >= len(h.WeatherCode) || idx >= len(h.Precipitation) {
			return nil, fmt.Errorf("%w: hourly series shorter than time at index %d", models.ErrDataIntegrity, idx)
		}
		snap.Time = h.Time[idx]
		snap.Temperature = h.Temperature[idx]
		snap.WeatherCode = h.WeatherCode[idx]
		snap.Precipitation = value(h.Precipitation[idx])
	} else {
		snap.Time = b.now().In(bundle.TimeLocation())
		snap.Temperature = cur.Temperature
		snap.WeatherCode = cur.WeatherCode
		snap.Precipitation = clone(cur.Precipitation)
	}

	period := wmo.PeriodFor(snap.Time.Hour())
	entry, err := b.codes.Lookup(snap.WeatherCode, period)
	if err != nil {
		return nil, fmt.Errorf("resolving weather code at %s: %w", snap.Time.Format(time.RFC3339), err)
	}
	snap.IsDay = period == wmo.Day
	snap.WeatherDescription = entry.Description
	snap.WeatherImage = entry.Image
	snap.WeatherIcon = entry.Icon

	h := bundle.Hourly
	snap.Humidity = pick(h.Humidity, idx, hourly, cur.Humidity)
	snap.WindSpeed = pick(h.WindSpeed, idx, hourly, cur.WindSpeed)
	snap.WindDirection = pick(h.WindDirection, idx, hourly, cur.WindDirection)
	snap.CloudCover = pick(h.CloudCover, idx, hourly, cur.CloudCover)
	snap.ApparentTemperature = pick(h.ApparentTemperature, idx, hourly, cur.ApparentTemperature)

	return snap, nil
}

// pick reads series[idx] when an hour is selected and the series has a value there,
// otherwise the current observation's value
func pick(series []*float64, idx int, hourly bool, current *float64) *float64 {
	if hourly && idx < len(series) && series[idx] != nil {
		return clone(series[idx])
	}
	return clone(current)
}

func clone(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return value(*v)
}

func value(v float64) *float64 {
	return &v
}
