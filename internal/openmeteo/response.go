package openmeteo

import (
	"fmt"
	"time"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// Open-Meteo sends local times without an offset when timezone=auto
const timeLayout = "2006-01-02T15:04"

type unitsResponse struct {
	Temperature         string `json:"temperature_2m"`
	ApparentTemperature string `json:"apparent_temperature"`
	Humidity            string `json:"relative_humidity_2m"`
	CloudCover          string `json:"cloud_cover"`
	WindSpeed           string `json:"wind_speed_10m"`
	WindDirection       string `json:"wind_direction_10m"`
	Precipitation       string `json:"precipitation"`
}

func (u unitsResponse) toUnits() models.Units {
	return models.Units{
		Temperature:         u.Temperature,
		ApparentTemperature: u.ApparentTemperature,
		Humidity:            u.Humidity,
		CloudCover:          u.CloudCover,
		WindSpeed:           u.WindSpeed,
		WindDirection:       u.WindDirection,
		Precipitation:       u.Precipitation,
	}
}

type forecastResponse struct {
	Latitude             float64 `json:"latitude"`
	Longitude            float64 `json:"longitude"`
	Timezone             string  `json:"timezone"`
	TimezoneAbbreviation string  `json:"timezone_abbreviation"`
	UTCOffsetSeconds     int     `json:"utc_offset_seconds"`

	Current *struct {
		Time                string   `json:"time"`
		Temperature         *float64 `json:"temperature_2m"`
		ApparentTemperature *float64 `json:"apparent_temperature"`
		Humidity            *float64 `json:"relative_humidity_2m"`
		CloudCover          *float64 `json:"cloud_cover"`
		WindSpeed           *float64 `json:"wind_speed_10m"`
		WindDirection       *float64 `json:"wind_direction_10m"`
		Precipitation       *float64 `json:"precipitation"`
		WeatherCode         *int     `json:"weather_code"`
	} `json:"current"`
	CurrentUnits unitsResponse `json:"current_units"`

	Hourly *struct {
		Time                []string   `json:"time"`
		Temperature         []*float64 `json:"temperature_2m"`
		WeatherCode         []*int     `json:"weather_code"`
		Precipitation       []*float64 `json:"precipitation"`
		Humidity            []*float64 `json:"relative_humidity_2m"`
		WindSpeed           []*float64 `json:"wind_speed_10m"`
		WindDirection       []*float64 `json:"wind_direction_10m"`
		CloudCover          []*float64 `json:"cloud_cover"`
		ApparentTemperature []*float64 `json:"apparent_temperature"`
	} `json:"hourly"`
	HourlyUnits unitsResponse `json:"hourly_units"`
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", models.ErrDataIntegrity, fmt.Sprintf(format, args...))
}

// toBundle validates the payload and converts it to a ForecastBundle
func (r *forecastResponse) toBundle() (*models.ForecastBundle, error) {
	if r.Current == nil {
		return nil, malformed("response has no current block")
	}
	if r.Hourly == nil {
		return nil, malformed("response has no hourly block")
	}

	bundle := &models.ForecastBundle{
		Coordinates:          models.Coordinates{Latitude: r.Latitude, Longitude: r.Longitude},
		Timezone:             r.Timezone,
		TimezoneAbbreviation: r.TimezoneAbbreviation,
		UTCOffset:            r.UTCOffsetSeconds,
		CurrentUnits:         r.CurrentUnits.toUnits(),
		HourlyUnits:          r.HourlyUnits.toUnits(),
	}
	zone := bundle.TimeLocation()

	cur := r.Current
	if cur.Temperature == nil {
		return nil, malformed("current temperature missing")
	}
	if cur.WeatherCode == nil {
		return nil, malformed("current weather code missing")
	}
	curTime, err := time.ParseInLocation(timeLayout, cur.Time, zone)
	if err != nil {
		return nil, malformed("current time %q: %v", cur.Time, err)
	}
	bundle.Current = models.CurrentObservation{
		Time:                curTime,
		Temperature:         *cur.Temperature,
		WeatherCode:         *cur.WeatherCode,
		ApparentTemperature: cur.ApparentTemperature,
		Humidity:            cur.Humidity,
		CloudCover:          cur.CloudCover,
		WindSpeed:           cur.WindSpeed,
		WindDirection:       cur.WindDirection,
		Precipitation:       cur.Precipitation,
	}

	h := r.Hourly
	n := len(h.Time)
	if n < models.MinHourlyEntries {
		return nil, malformed("hourly series has %d entries, want at least %d", n, models.MinHourlyEntries)
	}

	series := &bundle.Hourly
	series.Time = make([]time.Time, n)
	for i, s := range h.Time {
		ts, err := time.ParseInLocation(timeLayout, s, zone)
		if err != nil {
			return nil, malformed("hourly time[%d] %q: %v", i, s, err)
		}
		if i > 0 && !ts.After(series.Time[i-1]) {
			return nil, malformed("hourly time[%d] is not ascending", i)
		}
		series.Time[i] = ts
	}

	if series.Temperature, err = required("temperature_2m", h.Temperature, n); err != nil {
		return nil, err
	}
	if series.Precipitation, err = required("precipitation", h.Precipitation, n); err != nil {
		return nil, err
	}
	if len(h.WeatherCode) != n {
		return nil, malformed("hourly weather_code has %d entries, want %d", len(h.WeatherCode), n)
	}
	series.WeatherCode = make([]int, n)
	for i, v := range h.WeatherCode {
		if v == nil {
			return nil, malformed("hourly weather_code[%d] is null", i)
		}
		series.WeatherCode[i] = *v
	}

	optional := []struct {
		name string
		src  []*float64
		dst  *[]*float64
	}{
		{"relative_humidity_2m", h.Humidity, &series.Humidity},
		{"wind_speed_10m", h.WindSpeed, &series.WindSpeed},
		{"wind_direction_10m", h.WindDirection, &series.WindDirection},
		{"cloud_cover", h.CloudCover, &series.CloudCover},
		{"apparent_temperature", h.ApparentTemperature, &series.ApparentTemperature},
	}
	for _, o := range optional {
		if o.src == nil {
			continue
		}
		if len(o.src) != n {
			return nil, malformed("hourly %s has %d entries, want %d", o.name, len(o.src), n)
		}
		*o.dst = o.src
	}

	return bundle, nil
}

// required converts a mandatory series, rejecting wrong lengths and nulls
func required(name string, src []*float64, n int) ([]float64, error) {
	if len(src) != n {
		return nil, malformed("hourly %s has %d entries, want %d", name, len(src), n)
	}
	out := make([]float64, n)
	for i, v := range src {
		if v == nil {
			return nil, malformed("hourly %s[%d] is null", name, i)
		}
		out[i] = *v
	}
	return out, nil
}
