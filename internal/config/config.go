// Package config loads runtime settings from the environment and an optional .env file
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/ngmaloney/weather-terminal/internal/database"
	"github.com/ngmaloney/weather-terminal/internal/geocoding"
	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/openmeteo"
)

const DefaultUserAgent = "weather-terminal/1.0 (https://github.com/ngmaloney/weather-terminal)"

var validate = validator.New()

type Config struct {
	ForecastURL    string `validate:"required,url"`
	GeocodingURL   string `validate:"required,url"`
	GeolocationURL string `validate:"required,url"`

	// GeolocationMode picks the device position provider.
	GeolocationMode geolocation.Mode `validate:"oneof=ip static off"`
	Latitude        float64          `validate:"latitude"`
	Longitude       float64          `validate:"longitude"`

	Language    string
	SearchLimit int `validate:"min=1,max=50"`

	Units models.TemperatureUnit

	CodesFile string `validate:"omitempty,file"` // overrides the embedded weather code table
	DBPath    string `validate:"required"`
	UserAgent string `validate:"required"`
	LogFile   string
}

// Load reads configuration from the environment with defaults.
// A .env file in the working directory is applied first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("INFO: error loading .env file: %v", err)
	}

	cfg := &Config{
		ForecastURL:     getenvDefault("WEATHER_FORECAST_URL", openmeteo.DefaultBaseURL),
		GeocodingURL:    getenvDefault("WEATHER_GEOCODING_URL", geocoding.DefaultNominatimURL),
		GeolocationURL:  getenvDefault("WEATHER_GEOLOCATION_URL", geolocation.DefaultIPLookupURL),
		GeolocationMode: geolocation.Mode(getenvDefault("WEATHER_GEOLOCATION", string(geolocation.ModeIP))),
		Language:        getenvDefault("WEATHER_LANGUAGE", "en"),
		SearchLimit:     getenvInt("WEATHER_SEARCH_LIMIT", 5),
		CodesFile:       os.Getenv("WEATHER_CODES_FILE"),
		DBPath:          getenvDefault("WEATHER_DB_PATH", database.DBPath()),
		UserAgent:       getenvDefault("WEATHER_USER_AGENT", DefaultUserAgent),
		LogFile:         os.Getenv("WEATHER_LOG_FILE"),
	}

	units, err := models.ParseTemperatureUnit(getenvDefault("WEATHER_UNITS", "celsius"))
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_UNITS: %w", err)
	}
	cfg.Units = units

	if cfg.Latitude, err = getenvFloat("WEATHER_LATITUDE", 0); err != nil {
		return nil, err
	}
	if cfg.Longitude, err = getenvFloat("WEATHER_LONGITUDE", 0); err != nil {
		return nil, err
	}
	if cfg.GeolocationMode == geolocation.ModeStatic {
		if os.Getenv("WEATHER_LATITUDE") == "" || os.Getenv("WEATHER_LONGITUDE") == "" {
			return nil, fmt.Errorf("WEATHER_GEOLOCATION=static requires WEATHER_LATITUDE and WEATHER_LONGITUDE")
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
