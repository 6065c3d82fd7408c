// Package weather holds the forecast records populated by the One Call client.
package weather

import (
	"time"
)

// Section limits of the One Call API. Requests above these are clamped.
const (
	MaxMinutes = 60
	MaxHours   = 48
	MaxDays    = 8
)

// Units selects the unit system the API reports values in.
type Units string

const (
	UnitsImperial Units = "imperial"
	UnitsMetric   Units = "metric"
	UnitsStandard Units = "standard"
)

// ParseUnits maps a unit name to Units. Anything unrecognised is standard.
func ParseUnits(s string) Units {
	switch Units(s) {
	case UnitsImperial:
		return UnitsImperial
	case UnitsMetric:
		return UnitsMetric
	default:
		return UnitsStandard
	}
}

// Conditions is the first entry of a One Call "weather" array.
type Conditions struct {
	ID          int
	Main        string
	Description string
	Icon        Icon
}

// CurrentWeather represents the "current" section.
type CurrentWeather struct {
	Time    time.Time
	Sunrise time.Time
	Sunset  time.Time

	Temperature float64
	FeelsLike   float64

	// Pressure in hPa
	Pressure float64

	// Humidity percentage (0-100)
	Humidity float64
	DewPoint float64

	// Cloud cover percentage (0-100)
	CloudCover float64
	UVIndex    float64

	// Visibility in meters
	Visibility float64

	WindSpeed     float64
	WindGust      float64
	WindDirection float64 // degrees

	// Precipitation volume for the last hour in mm
	Rain float64
	Snow float64

	Conditions Conditions
}

// MinuteForecast is one entry of the minute-by-minute precipitation forecast.
type MinuteForecast struct {
	Time          time.Time
	Precipitation float64 // mm/h
}

// HourlyForecast represents weather for a specific hour.
type HourlyForecast struct {
	Time time.Time

	Temperature   float64
	FeelsLike     float64
	Pressure      float64
	Humidity      float64
	DewPoint      float64
	UVIndex       float64
	CloudCover    float64
	Visibility    float64
	WindSpeed     float64
	WindGust      float64
	WindDirection float64
	PrecipProb    float64 // Probability of precipitation (0-1)
	Rain          float64
	Snow          float64

	Conditions Conditions
}

// DailyTemperatures holds the temperatures reported for parts of a day.
type DailyTemperatures struct {
	Morning float64
	Day     float64
	Evening float64
	Night   float64
	Min     float64
	Max     float64
}

// DailyFeelsLike holds the perceived temperatures for parts of a day.
type DailyFeelsLike struct {
	Morning float64
	Day     float64
	Evening float64
	Night   float64
}

// DailyForecast represents weather for a single day.
type DailyForecast struct {
	Time     time.Time
	Sunrise  time.Time
	Sunset   time.Time
	Moonrise time.Time
	Moonset  time.Time

	// MoonPhase is 0 and 1 for new moon, 0.5 for full moon.
	MoonPhase float64
	Summary   string

	Temperature DailyTemperatures
	FeelsLike   DailyFeelsLike

	Pressure      float64
	Humidity      float64
	DewPoint      float64
	UVIndex       float64
	CloudCover    float64
	WindSpeed     float64
	WindGust      float64
	WindDirection float64
	PrecipProb    float64

	// Daily precipitation volume in mm
	Rain float64
	Snow float64

	Conditions Conditions
}

// Daylight returns the time between sunrise and sunset, or zero when either is unknown.
func (d *DailyForecast) Daylight() time.Duration {
	if d.Sunrise.IsZero() || d.Sunset.IsZero() || d.Sunset.Before(d.Sunrise) {
		return 0
	}
	return d.Sunset.Sub(d.Sunrise)
}

// UnixTime converts an API timestamp. Zero stays the zero time.
func UnixTime(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}
