package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/weather-terminal/internal/geocoding"
	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/wmo"
)

var ict = time.FixedZone("GMT+7", 7*3600)

// testNow is 09:15 local on the first day of testBundle
var testNow = time.Date(2026, 10, 18, 9, 15, 0, 0, ict)

func ptr(v float64) *float64 { return &v }

// testBundle returns a 48-hour bundle starting at local midnight of testNow
func testBundle(lat, lon float64) *models.ForecastBundle {
	const n = 48
	start := time.Date(2026, 10, 18, 0, 0, 0, 0, ict)

	b := &models.ForecastBundle{
		Coordinates:          models.Coordinates{Latitude: lat, Longitude: lon},
		Timezone:             "Asia/Bangkok",
		TimezoneAbbreviation: "GMT+7",
		UTCOffset:            7 * 3600,
		Current: models.CurrentObservation{
			Time:                testNow,
			Temperature:         31.2,
			WeatherCode:         2,
			ApparentTemperature: ptr(35.4),
			Humidity:            ptr(70),
			CloudCover:          ptr(40),
			WindSpeed:           ptr(12.5),
			WindDirection:       ptr(200),
			Precipitation:       ptr(0),
		},
		CurrentUnits: models.Units{
			Temperature: "°C", ApparentTemperature: "°C", Humidity: "%",
			CloudCover: "%", WindSpeed: "km/h", WindDirection: "°", Precipitation: "mm",
		},
		FetchedAt: testNow,
	}
	b.HourlyUnits = b.CurrentUnits

	h := &b.Hourly
	for i := 0; i < n; i++ {
		h.Time = append(h.Time, start.Add(time.Duration(i)*time.Hour))
		h.Temperature = append(h.Temperature, 20+float64(i%24)/2)
		if i%24 < 12 {
			h.WeatherCode = append(h.WeatherCode, 3)
		} else {
			h.WeatherCode = append(h.WeatherCode, 61)
		}
		precip := 0.0
		if i%24 >= 14 && i%24 < 17 {
			precip = 1.2
		}
		h.Precipitation = append(h.Precipitation, precip)
		h.Humidity = append(h.Humidity, ptr(60+float64(i%24)))
	}
	return b
}

type mockLocator struct {
	fix *geolocation.Fix
	err error
}

func (m *mockLocator) Locate(ctx context.Context) (*geolocation.Fix, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.fix, nil
}

type mockResolver struct {
	locations map[string]*geocoding.Location
	err       error
}

func (m *mockResolver) Geocode(ctx context.Context, query string) (*geocoding.Location, error) {
	if m.err != nil {
		return nil, m.err
	}
	loc, ok := m.locations[query]
	if !ok {
		return nil, models.ErrNotFound
	}
	return loc, nil
}

type mockForecastClient struct {
	mu    sync.Mutex
	calls []models.Coordinates
	err   error
}

func (m *mockForecastClient) Fetch(ctx context.Context, coords models.Coordinates) (*models.ForecastBundle, error) {
	m.mu.Lock()
	m.calls = append(m.calls, coords)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return testBundle(coords.Latitude, coords.Longitude), nil
}

var hanoi = &geolocation.Fix{
	Coordinates: models.Coordinates{Latitude: 21.03, Longitude: 105.85},
	City:        "Hanoi",
	Country:     "Vietnam",
}

// newTestModel returns a sized model wired to mocks with the clock fixed at testNow
func newTestModel(t *testing.T, deps Deps) Model {
	t.Helper()

	codes, err := wmo.Default()
	if err != nil {
		t.Fatalf("wmo.Default() error = %v", err)
	}
	if deps.Locator == nil {
		deps.Locator = &mockLocator{fix: hanoi}
	}
	if deps.Resolver == nil {
		deps.Resolver = &mockResolver{locations: map[string]*geocoding.Location{
			"Da Nang": {Latitude: 16.07, Longitude: 108.22, Name: "Đà Nẵng, Việt Nam"},
		}}
	}
	if deps.Forecast == nil {
		deps.Forecast = &mockForecastClient{}
	}
	deps.Codes = codes

	m := NewModel(deps)
	m.SetClock(func() time.Time { return testNow })
	m.SetSize(120, 50)
	return m
}

// update feeds msg to m and returns the concrete model
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// drain runs a chain of single commands to completion, feeding each result back
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		if i > 10 {
			t.Fatal("command chain did not settle")
		}
		m, cmd = update(t, m, cmd())
	}
	return m
}

// loaded returns a model displaying the device-location bundle
func loaded(t *testing.T) Model {
	t.Helper()
	m := newTestModel(t, Deps{})
	m = drain(t, m, locateDevice(m.locator, m.initialGen))
	if m.state != StateDisplay {
		t.Fatalf("state = %v, want StateDisplay (err: %v)", m.state, m.err)
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}
