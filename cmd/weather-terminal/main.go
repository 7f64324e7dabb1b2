package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/weather-terminal/internal/config"
	"github.com/ngmaloney/weather-terminal/internal/geocoding"
	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/openmeteo"
	"github.com/ngmaloney/weather-terminal/internal/ui"
	"github.com/ngmaloney/weather-terminal/internal/wmo"
)

func main() {
	location := flag.String("location", "", "Start with the forecast for a place instead of your current location (city, address or US zipcode)")
	units := flag.String("units", "", "Temperature unit: celsius or fahrenheit (overrides WEATHER_UNITS)")
	provision := flag.Bool("provision-zipcodes", false, "Download the US zipcode table for offline zipcode lookup and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if *units != "" {
		u, err := models.ParseTemperatureUnit(*units)
		if err != nil {
			fmt.Printf("Error: --units: %v\n", err)
			os.Exit(1)
		}
		cfg.Units = u
	}

	if *provision {
		if err := geocoding.ProvisionZipcodeDatabase(context.Background(), cfg.DBPath, geocoding.DefaultZipcodeCSVURL); err != nil {
			log.Fatalf("Provisioning failed: %v", err)
		}
		return
	}

	// The TUI owns the terminal, so logs go to a file or nowhere
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "weather-terminal")
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	codes, err := loadCodes(cfg.CodesFile)
	if err != nil {
		fmt.Printf("Error loading weather codes: %v\n", err)
		os.Exit(1)
	}

	zipDB, err := geocoding.OpenZipcodeDB(cfg.DBPath)
	if err != nil {
		log.Printf("zipcode database unavailable: %v", err)
	}
	if zipDB != nil {
		defer zipDB.Close()
	}

	model := ui.NewModel(ui.Deps{
		Locator: geolocation.New(geolocation.Options{
			Mode:      cfg.GeolocationMode,
			URL:       cfg.GeolocationURL,
			UserAgent: cfg.UserAgent,
			Latitude:  cfg.Latitude,
			Longitude: cfg.Longitude,
		}),
		Resolver: geocoding.NewGeocoder(geocoding.Options{
			BaseURL:   cfg.GeocodingURL,
			UserAgent: cfg.UserAgent,
			Language:  cfg.Language,
			Limit:     cfg.SearchLimit,
			ZipcodeDB: zipDB,
		}),
		Forecast:     openmeteo.NewClient(cfg.ForecastURL, cfg.UserAgent),
		Codes:        codes,
		Units:        cfg.Units,
		InitialQuery: *location,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}

func loadCodes(path string) (*wmo.Table, error) {
	if path != "" {
		return wmo.LoadFile(path)
	}
	return wmo.Default()
}
