package weather

import (
	"strings"
	"time"
)

// Display units of the numeric Report fields. Requests are always made in metric units.
const (
	TemperatureUnit = "C"
	WindSpeedUnit   = "km/h"
	VisibilityUnit  = "km"
)

// Report is the normalized, display-oriented view of a provider response.
// Every field is populated; missing upstream data yields zero values or "Unknown".
type Report struct {
	Temperature     int    `json:"temperature"`
	TemperatureUnit string `json:"temperature_unit"`
	Condition       string `json:"condition"`
	WindSpeed       int    `json:"wind_speed"`
	WindSpeedUnit   string `json:"wind_speed_unit"`
	Humidity        int    `json:"humidity"`
	Visibility      int    `json:"visibility"`
	VisibilityUnit  string `json:"visibility_unit"`
	UVIndex         int    `json:"uv_index"`
	AQI             string `json:"aqi"`
	AQIValue        int    `json:"aqi_value"`
	High            int    `json:"high"`
	Low             int    `json:"low"`
	City            string `json:"city"`
	Country         string `json:"country"`
	WeatherCode     int    `json:"weather_code"`
	Icon            string `json:"icon"`
}

// Snapshot is a successful lookup kept in the history store.
type Snapshot struct {
	Location  string    `json:"location"`
	FetchedAt time.Time `json:"fetched_at"` // always UTC
	Report    Report    `json:"report"`
}

// LocationKey returns the canonical key used to index a location in stores.
func LocationKey(location string) string {
	return strings.ToLower(strings.Join(strings.Fields(location), " "))
}
