package weather

import (
	"math"
	"strings"
)

// RawResponse is the subset of the Tomorrow.io forecast payload we read.
// Any part may be missing.
type RawResponse struct {
	Timelines struct {
		Minutely []Interval `json:"minutely"`
		Hourly   []Interval `json:"hourly"`
		Daily    []Interval `json:"daily"`
	} `json:"timelines"`
	Location struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"location"`
}

// Interval is one timeline step.
type Interval struct {
	Time   string `json:"time"`
	Values Values `json:"values"`
}

// Values holds the data fields of an interval keyed by provider field name.
type Values map[string]any

// Number returns the numeric value stored under key, or 0 if it is absent or not a number.
func (v Values) Number(key string) float64 {
	switch n := v[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// Int returns the value under key rounded to the nearest integer.
func (v Values) Int(key string) int {
	return round(v.Number(key))
}

func firstValues(intervals []Interval) Values {
	if len(intervals) == 0 {
		return nil
	}
	return intervals[0].Values
}

// Normalize flattens a provider response into a Report. inputLocation is the string the user
// asked for and names the city when the provider does not.
func Normalize(raw RawResponse, inputLocation string) Report {
	current := firstValues(raw.Timelines.Minutely)
	if len(current) == 0 {
		current = firstValues(raw.Timelines.Hourly)
	}
	daily := firstValues(raw.Timelines.Daily)

	code := current.Int("weatherCode")
	aqi := current.Int("epaIndex")

	return Report{
		Temperature:     current.Int("temperature"),
		TemperatureUnit: TemperatureUnit,
		Condition:       ConditionFor(code),
		WindSpeed:       current.Int("windSpeed"),
		WindSpeedUnit:   WindSpeedUnit,
		Humidity:        current.Int("humidity"),
		Visibility:      current.Int("visibility"),
		VisibilityUnit:  VisibilityUnit,
		UVIndex:         current.Int("uvIndex"),
		AQI:             AQIDescription(aqi),
		AQIValue:        aqi,
		High:            daily.Int("temperatureMax"),
		Low:             daily.Int("temperatureMin"),
		City:            resolveCity(raw.Location.Name, inputLocation),
		Country:         resolveCountry(raw.Location.Country),
		WeatherCode:     code,
		Icon:            IconFor(code),
	}
}

func resolveCity(name, inputLocation string) string {
	if name != "" && !strings.EqualFold(name, "unknown") {
		return name
	}
	city, _, _ := strings.Cut(inputLocation, ",")
	return city
}

func resolveCountry(country string) string {
	if strings.EqualFold(country, "unknown") {
		return ""
	}
	return country
}

// round rounds half to even; NaN and Inf become 0.
func round(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.RoundToEven(f))
}
