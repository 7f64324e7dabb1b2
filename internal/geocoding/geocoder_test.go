package geocoding

import (
	"testing"
)

func TestIsZipcode(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"02633", true},
		{"02633-1234", true},
		{"90210", true},
		{"0263", false},
		{"026331", false},
		{"02633-12", false},
		{"Hanoi", false},
		{"1 Main St", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := isZipcode(tt.input); got != tt.expected {
				t.Errorf("isZipcode(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewGeocoder_Defaults(t *testing.T) {
	g := NewGeocoder(Options{})
	if g == nil {
		t.Fatal("NewGeocoder() returned nil")
	}
	if g.baseURL != DefaultNominatimURL {
		t.Errorf("baseURL = %s, want %s", g.baseURL, DefaultNominatimURL)
	}
	if g.limit != 5 {
		t.Errorf("limit = %d, want 5", g.limit)
	}
}

func TestHaversineDistance(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantKm                 float64
	}{
		{"same point", 21.03, 105.85, 21.03, 105.85, 0},
		{"hanoi to ho chi minh city", 21.0285, 105.8542, 10.8231, 106.6297, 1138},
		{"one degree of latitude", 0, 0, 1, 0, 111.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if diff := got - tt.wantKm; diff > 5 || diff < -5 {
				t.Errorf("HaversineDistance() = %.1f km, want ~%.1f km", got, tt.wantKm)
			}
		})
	}
}
