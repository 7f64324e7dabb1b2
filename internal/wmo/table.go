// Package wmo maps WMO weather interpretation codes to descriptions and icons
package wmo

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed wmo.yaml
var defaultAsset []byte

// ErrUnknownCode is returned for a weather code missing from the table
var ErrUnknownCode = fmt.Errorf("%w: unknown weather code", models.ErrDataIntegrity)

// StandardCodes is the code set Open-Meteo reports. A table must cover all of them.
var StandardCodes = []int{
	0, 1, 2, 3, 45, 48,
	51, 53, 55, 56, 57,
	61, 63, 65, 66, 67,
	71, 73, 75, 77,
	80, 81, 82, 85, 86,
	95, 96, 99,
}

// Period is the day/night half of the lookup key
type Period int

const (
	Day Period = iota
	Night
)

// String implements fmt.Stringer
func (p Period) String() string {
	if p == Night {
		return "night"
	}
	return "day"
}

// PeriodFor returns Day when the local hour is in [6, 18), Night otherwise
func PeriodFor(localHour int) Period {
	if localHour >= 6 && localHour < 18 {
		return Day
	}
	return Night
}

// Entry is what a code resolves to for one period
type Entry struct {
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
	Icon        string `yaml:"icon"`
}

type codeEntries struct {
	Day   Entry `yaml:"day"`
	Night Entry `yaml:"night"`
}

type key struct {
	code   int
	period Period
}

// Table is an immutable code lookup. Build it with Parse, LoadFile or Default.
type Table struct {
	entries map[key]Entry
}

// Lookup resolves a code for a period
func (t *Table) Lookup(code int, period Period) (Entry, error) {
	e, ok := t.entries[key{code, period}]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %d (%s)", ErrUnknownCode, code, period)
	}
	return e, nil
}

// Codes returns the codes in the table in ascending order
func (t *Table) Codes() []int {
	seen := make(map[int]bool)
	var codes []int
	for k := range t.entries {
		if !seen[k.code] {
			seen[k.code] = true
			codes = append(codes, k.code)
		}
	}
	sort.Ints(codes)
	return codes
}

// Parse builds a table from a YAML document keyed by code with day and night entries.
// Every entry needs a description and an image, and every standard code must be present.
func Parse(data []byte) (*Table, error) {
	var raw map[int]codeEntries
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding weather code table: %w", err)
	}

	t := &Table{entries: make(map[key]Entry, len(raw)*2)}
	for code, ce := range raw {
		for period, e := range map[Period]Entry{Day: ce.Day, Night: ce.Night} {
			if e.Description == "" || e.Image == "" {
				return nil, fmt.Errorf("weather code %d (%s): missing description or image", code, period)
			}
			t.entries[key{code, period}] = e
		}
	}

	for _, code := range StandardCodes {
		if _, ok := raw[code]; !ok {
			return nil, fmt.Errorf("weather code table is missing code %d", code)
		}
	}

	return t, nil
}

// LoadFile parses a table from a YAML file on disk
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading weather code table: %w", err)
	}
	return Parse(data)
}

// Default returns the table bundled with the binary
func Default() (*Table, error) {
	return Parse(defaultAsset)
}
