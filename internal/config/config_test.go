package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/openmeteo"
)

var configKeys = []string{
	"WEATHER_FORECAST_URL", "WEATHER_GEOCODING_URL", "WEATHER_GEOLOCATION_URL",
	"WEATHER_GEOLOCATION", "WEATHER_LATITUDE", "WEATHER_LONGITUDE",
	"WEATHER_LANGUAGE", "WEATHER_SEARCH_LIMIT", "WEATHER_UNITS",
	"WEATHER_CODES_FILE", "WEATHER_DB_PATH", "WEATHER_USER_AGENT", "WEATHER_LOG_FILE",
}

// clearEnv isolates a test from the developer's environment and any .env file
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ForecastURL != openmeteo.DefaultBaseURL {
		t.Errorf("ForecastURL = %s", cfg.ForecastURL)
	}
	if cfg.GeolocationMode != geolocation.ModeIP {
		t.Errorf("GeolocationMode = %s, want ip", cfg.GeolocationMode)
	}
	if cfg.Units != models.Celsius {
		t.Errorf("Units = %v, want celsius", cfg.Units)
	}
	if cfg.SearchLimit != 5 {
		t.Errorf("SearchLimit = %d, want 5", cfg.SearchLimit)
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %s", cfg.UserAgent)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEATHER_GEOLOCATION", "static")
	t.Setenv("WEATHER_LATITUDE", "21.0285")
	t.Setenv("WEATHER_LONGITUDE", "105.8542")
	t.Setenv("WEATHER_UNITS", "F")
	t.Setenv("WEATHER_SEARCH_LIMIT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GeolocationMode != geolocation.ModeStatic {
		t.Errorf("GeolocationMode = %s", cfg.GeolocationMode)
	}
	if cfg.Latitude != 21.0285 || cfg.Longitude != 105.8542 {
		t.Errorf("coordinates = %f,%f", cfg.Latitude, cfg.Longitude)
	}
	if cfg.Units != models.Fahrenheit {
		t.Errorf("Units = %v, want fahrenheit", cfg.Units)
	}
	if cfg.SearchLimit != 3 {
		t.Errorf("SearchLimit = %d", cfg.SearchLimit)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("WEATHER_UNITS")
	if err := os.WriteFile(".env", []byte("WEATHER_UNITS=fahrenheit\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Units != models.Fahrenheit {
		t.Errorf("Units = %v, want fahrenheit from .env", cfg.Units)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown units", map[string]string{"WEATHER_UNITS": "kelvin"}},
		{"unknown geolocation mode", map[string]string{"WEATHER_GEOLOCATION": "gps"}},
		{"static without coordinates", map[string]string{"WEATHER_GEOLOCATION": "static"}},
		{"latitude out of range", map[string]string{"WEATHER_LATITUDE": "95"}},
		{"latitude not a number", map[string]string{"WEATHER_LATITUDE": "north"}},
		{"bad forecast url", map[string]string{"WEATHER_FORECAST_URL": "not a url"}},
		{"search limit too large", map[string]string{"WEATHER_SEARCH_LIMIT": "500"}},
		{"missing codes file", map[string]string{"WEATHER_CODES_FILE": filepath.Join("nope", "codes.yaml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load() error = nil, want validation failure")
			}
		})
	}
}
