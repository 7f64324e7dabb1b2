package ui

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/ngmaloney/weather-terminal/internal/geocoding"
	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/openmeteo"
	"github.com/ngmaloney/weather-terminal/internal/snapshot"
)

// AppState represents the current state of the application
type AppState int

const (
	StateLocating AppState = iota // Waiting for the device position
	StateLoading                  // Waiting for the first forecast of an action
	StateDisplay                  // Dashboard for the last bundle received
	StateError                    // Full-page error, no bundle to show
)

// Deps are the collaborators the dashboard drives
type Deps struct {
	Locator  geolocation.Locator
	Resolver geocoding.Resolver
	Forecast openmeteo.ForecastClient
	Codes    snapshot.CodeTable
	Units    models.TemperatureUnit

	// InitialQuery starts with a search instead of the device position
	InitialQuery string
}

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int
	err    error // full-page error

	// Search
	searchInput textinput.Model
	searchErr   error // inline error next to the search bar
	searchQuery string

	// Collaborators
	locator  geolocation.Locator
	resolver geocoding.Resolver
	forecast openmeteo.ForecastClient
	codes    snapshot.CodeTable
	builder  *snapshot.Builder

	// Data
	requests  requestTracker
	fix       *geolocation.Fix
	bundle    *models.ForecastBundle
	snapshot  *models.ForecastSnapshot
	selection models.Selection
	unit      models.TemperatureUnit

	initialQuery string
	initialGen   uint64
	showDetails  bool
	now          func() time.Time

	spinner spinner.Model
	keys    keyMap
	help    help.Model
}

// NewModel creates a new application model
func NewModel(deps Deps) Model {
	ti := textinput.New()
	ti.Placeholder = "Search city, address or US zipcode (e.g. Hanoi or 02633)..."
	ti.CharLimit = 100
	ti.Width = 50

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	state := StateLocating
	if deps.InitialQuery != "" {
		state = StateLoading
	}

	m := Model{
		state:        state,
		searchInput:  ti,
		locator:      deps.Locator,
		resolver:     deps.Resolver,
		forecast:     deps.Forecast,
		codes:        deps.Codes,
		builder:      snapshot.NewBuilder(deps.Codes),
		selection:    models.Live(),
		unit:         deps.Units,
		initialQuery: deps.InitialQuery,
		showDetails:  true,
		now:          time.Now,
		spinner:      s,
		keys:         defaultKeyMap(),
		help:         help.New(),
	}
	m.initialGen = m.requests.next()
	return m
}

// Init starts the initial load: a search when a query was given, the device position otherwise
func (m Model) Init() tea.Cmd {
	if m.initialQuery != "" {
		return tea.Batch(m.spinner.Tick, tickClock(), searchLocation(m.resolver, m.initialQuery, m.initialGen))
	}
	return tea.Batch(m.spinner.Tick, tickClock(), locateDevice(m.locator, m.initialGen))
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clockMsg:
		if m.bundle != nil && m.selection.IsLive() {
			m.rebuildSnapshot(m.selection)
		}
		return m, tickClock()

	case locateMsg:
		return m.handleLocate(msg)

	case searchResultMsg:
		return m.handleSearchResult(msg)

	case forecastMsg:
		return m.handleForecast(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.searchInput.Focused() {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleLocate(msg locateMsg) (tea.Model, tea.Cmd) {
	if m.requests.stale(msg.gen) {
		return m, nil
	}
	if msg.err != nil {
		m.requests.complete(msg.gen)
		log.Printf("locating device: %v", msg.err)
		m.err = msg.err
		m.state = StateError
		return m, nil
	}

	m.fix = msg.fix
	if m.bundle == nil {
		m.state = StateLoading
	}
	return m, fetchForecast(m.forecast, msg.fix.Coordinates, nil, msg.gen, originLocate)
}

func (m Model) handleSearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	if m.requests.stale(msg.gen) {
		return m, nil
	}
	if msg.err != nil {
		m.requests.complete(msg.gen)
		log.Printf("searching %q: %v", msg.query, msg.err)
		m.failSearch(msg.err)
		return m, nil
	}

	place := models.NewLocation(msg.location.Name)
	return m, fetchForecast(m.forecast, msg.location.Coordinates(), place, msg.gen, originSearch)
}

func (m Model) handleForecast(msg forecastMsg) (tea.Model, tea.Cmd) {
	if !m.requests.complete(msg.gen) {
		log.Printf("discarding stale forecast response (generation %d)", msg.gen)
		return m, nil
	}
	if msg.err != nil {
		log.Printf("fetching forecast: %v", msg.err)
		m.fail(msg.origin, msg.err)
		return m, nil
	}

	// a new bundle always opens in live mode
	snap, err := m.builder.Build(msg.bundle, models.Live())
	if err != nil {
		log.Printf("building snapshot: %v", err)
		m.fail(msg.origin, err)
		return m, nil
	}

	m.bundle = msg.bundle
	m.snapshot = snap
	m.selection = models.Live()
	m.err = nil
	m.searchErr = nil
	m.state = StateDisplay
	if msg.origin == originSearch {
		m.searchInput.SetValue("")
		m.searchInput.Blur()
	}
	return m, nil
}

// fail reports err the way its action chain requires: inline for a search while a
// dashboard is shown, full page otherwise
func (m *Model) fail(from origin, err error) {
	if from == originSearch {
		m.failSearch(err)
		return
	}
	m.err = err
	m.state = StateError
}

func (m *Model) failSearch(err error) {
	if m.bundle == nil {
		m.err = err
		m.state = StateError
		return
	}
	m.searchErr = err
	m.state = StateDisplay
}

// rebuildSnapshot derives the snapshot for sel, keeping the previous one on failure
func (m *Model) rebuildSnapshot(sel models.Selection) bool {
	snap, err := m.builder.Build(m.bundle, sel)
	if err != nil {
		log.Printf("building snapshot: %v", err)
		m.searchErr = err
		return false
	}
	m.snapshot = snap
	m.selection = sel
	return true
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.searchInput.Focused() {
		return m.handleSearchInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.searchErr = nil
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Relocate):
		return m.relocate()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Units):
		// conversion happens at render time, the snapshot is unchanged
		m.unit = m.unit.Toggle()
		return m, nil
	}

	if m.state != StateDisplay || m.bundle == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.PrevHour):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.NextHour):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Live):
		m.searchErr = nil
		m.rebuildSnapshot(models.Live())
	case key.Matches(msg, m.keys.Details):
		m.showDetails = !m.showDetails
	}
	return m, nil
}

// moveSelection steps the hour picker. From live mode the first step lands
// on the current hour's neighbour.
func (m *Model) moveSelection(delta int) {
	idx := m.cursor() + delta
	if idx < 0 {
		idx = 0
	}
	if last := m.bundle.Hourly.Len() - 1; idx > last {
		idx = last
	}
	if current, ok := m.selection.Index(); ok && current == idx {
		return
	}
	m.searchErr = nil
	m.rebuildSnapshot(models.Hour(idx))
}

// handleSearchInput handles keyboard input while the search bar is focused
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.searchInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m, nil
		}
		m.searchQuery = query
		m.searchErr = nil
		m.searchInput.Blur()
		gen := m.requests.next()
		if m.bundle == nil {
			m.err = nil
			m.state = StateLoading
		}
		return m, searchLocation(m.resolver, query, gen)
	}

	// Clear the inline error when the query changes
	if m.searchErr != nil {
		m.searchErr = nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// relocate re-runs the device position chain
func (m Model) relocate() (tea.Model, tea.Cmd) {
	gen := m.requests.next()
	m.searchErr = nil
	if m.bundle == nil || m.state == StateError {
		m.err = nil
		m.state = StateLocating
	}
	return m, locateDevice(m.locator, gen)
}

// SetBundle installs a bundle directly, for rendering without network access
func (m *Model) SetBundle(bundle *models.ForecastBundle) error {
	snap, err := m.builder.Build(bundle, models.Live())
	if err != nil {
		return err
	}
	m.requests.complete(m.requests.next())
	m.bundle = bundle
	m.snapshot = snap
	m.selection = models.Live()
	m.state = StateDisplay
	return nil
}

// SetFix records the device position used for distance display
func (m *Model) SetFix(fix *geolocation.Fix) {
	m.fix = fix
}

// SetSize sets the terminal dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
}

// SetClock replaces the wall clock used for live mode
func (m *Model) SetClock(now func() time.Time) {
	m.now = now
	m.builder = m.builder.WithClock(now)
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{m.viewHeader()}

	switch m.state {
	case StateLocating:
		sections = append(sections, "", fmt.Sprintf("%s %s", m.spinner.View(), mutedStyle.Render("Finding your location...")))
	case StateLoading:
		msg := "Loading forecast..."
		if m.searchQuery != "" {
			msg = fmt.Sprintf("Loading forecast for %s...", m.searchQuery)
		}
		sections = append(sections, "", fmt.Sprintf("%s %s", m.spinner.View(), mutedStyle.Render(msg)))
	case StateError:
		sections = append(sections, "", m.viewError())
	case StateDisplay:
		sections = append(sections, m.viewDisplay())
	}

	sections = append(sections, helpStyle.Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewHeader renders the title, search bar and inline search error
func (m Model) viewHeader() string {
	title := titleStyle.Render("☀ Weather Terminal")

	box := searchBoxStyle
	if m.searchInput.Focused() {
		box = activeSearchBoxStyle
	}
	search := box.Render(m.searchInput.View())

	status := ""
	if m.state == StateDisplay && m.requests.pending() {
		status = m.spinner.View() + mutedStyle.Render(" updating")
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Center, search, " ", status),
	)
	if m.searchErr != nil {
		header = lipgloss.JoinVertical(lipgloss.Left, header, inlineErrorStyle.Render("✗ "+describeError(m.searchErr)))
	}
	return header
}

// viewError renders the full-page error view
func (m Model) viewError() string {
	title := errorStyle.Render("✗ Error")

	errorMsg := "An unknown error occurred"
	if m.err != nil {
		errorMsg = describeError(m.err)
	}

	hint := mutedStyle.Render("Press / to search for a place • r to use your location • q to quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", errorMsg, "", hint)
}

// viewDisplay renders the dashboard for the current bundle
func (m Model) viewDisplay() string {
	if m.bundle == nil || m.snapshot == nil {
		return mutedStyle.Render("No forecast loaded")
	}

	sections := []string{
		sectionHeaderStyle.Render("📍 " + m.bundle.DisplayName()),
		mutedStyle.Render(m.locationLine()),
	}

	paneWidth := (m.width - 4) / 2
	if paneWidth < 30 {
		paneWidth = 30
	}
	panes := []string{m.renderWeatherPane(paneWidth)}
	if m.showDetails {
		panes = append(panes, m.renderDetailsPane(paneWidth))
	}
	sections = append(sections,
		lipgloss.JoinHorizontal(lipgloss.Top, panes...),
		m.renderHourPicker(m.width),
		"",
		m.renderPrecipitationChart(m.width-4),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// locationLine renders coordinates, distance from the device and data age
func (m Model) locationLine() string {
	b := m.bundle
	parts := []string{fmt.Sprintf("%.2f, %.2f", b.Coordinates.Latitude, b.Coordinates.Longitude)}

	if b.Location != nil && m.fix != nil {
		km := geocoding.HaversineDistance(
			m.fix.Coordinates.Latitude, m.fix.Coordinates.Longitude,
			b.Coordinates.Latitude, b.Coordinates.Longitude,
		)
		parts = append(parts, fmt.Sprintf("%s km away", humanize.Comma(int64(math.Round(km)))))
	}

	parts = append(parts, b.TimeLocation().String())
	if !b.FetchedAt.IsZero() {
		parts = append(parts, "updated "+humanize.RelTime(b.FetchedAt, m.now(), "ago", "from now"))
	}
	return strings.Join(parts, " • ")
}
