package models

import "time"

// Selection is the hour the user is looking at: either the live observation or an hourly slot
type Selection struct {
	index int
	set   bool
}

// Live selects the current observation
func Live() Selection {
	return Selection{}
}

// Hour selects hourly slot i
func Hour(i int) Selection {
	return Selection{index: i, set: true}
}

// Index returns the selected slot and whether an hour is selected at all
func (s Selection) Index() (int, bool) {
	return s.index, s.set
}

// IsLive reports whether the live observation is selected
func (s Selection) IsLive() bool {
	return !s.set
}

// ForecastSnapshot is the display-ready view of one point in time.
// Temperatures are stored in Celsius; conversion happens at render time.
type ForecastSnapshot struct {
	Time               time.Time
	Selection          Selection
	IsDay              bool
	Temperature        float64
	WeatherCode        int
	WeatherDescription string
	WeatherImage       string
	WeatherIcon        string

	Precipitation       *float64
	Humidity            *float64
	WindSpeed           *float64
	WindDirection       *float64
	CloudCover          *float64
	ApparentTemperature *float64
}
