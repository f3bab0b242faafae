package weather

const (
	ConditionUnknown = "Unknown"
	IconUnknown      = "fas fa-question"
)

// Tomorrow.io weather codes, see https://docs.tomorrow.io/reference/data-layers-core.
var conditions = map[int]string{
	0:    ConditionUnknown,
	1000: "Clear",
	1001: "Cloudy",
	1100: "Mostly Clear",
	1101: "Partly Cloudy",
	1102: "Mostly Cloudy",
	2000: "Fog",
	2100: "Light Fog",
	3000: "Light Wind",
	3001: "Wind",
	3002: "Strong Wind",
	4000: "Drizzle",
	4001: "Rain",
	4200: "Light Rain",
	4201: "Heavy Rain",
	5000: "Snow",
	5001: "Flurries",
	5100: "Light Snow",
	5101: "Heavy Snow",
	6000: "Freezing Drizzle",
	6001: "Freezing Rain",
	6200: "Light Freezing Rain",
	6201: "Heavy Freezing Rain",
	7000: "Ice Pellets",
	7101: "Heavy Ice Pellets",
	7102: "Light Ice Pellets",
	8000: "Thunderstorm",
}

// Font Awesome classes per weather code.
var icons = map[int]string{
	1000: "fas fa-sun",
	1001: "fas fa-cloud",
	1100: "fas fa-cloud-sun",
	1101: "fas fa-cloud-sun",
	1102: "fas fa-cloud",
	2000: "fas fa-smog",
	2100: "fas fa-smog",
	3000: "fas fa-wind",
	3001: "fas fa-wind",
	3002: "fas fa-wind",
	4000: "fas fa-cloud-rain",
	4001: "fas fa-cloud-showers-heavy",
	4200: "fas fa-cloud-rain",
	4201: "fas fa-cloud-showers-heavy",
	5000: "fas fa-snowflake",
	5001: "fas fa-snowflake",
	5100: "fas fa-snowflake",
	5101: "fas fa-snowflake",
	6000: "fas fa-icicles",
	6001: "fas fa-icicles",
	6200: "fas fa-icicles",
	6201: "fas fa-icicles",
	7000: "fas fa-icicles",
	7101: "fas fa-icicles",
	7102: "fas fa-icicles",
	8000: "fas fa-bolt",
}

// ConditionFor maps a weather code to a human-readable label.
func ConditionFor(code int) string {
	if c, ok := conditions[code]; ok {
		return c
	}
	return ConditionUnknown
}

// IconFor maps a weather code to an icon class.
func IconFor(code int) string {
	if i, ok := icons[code]; ok {
		return i
	}
	return IconUnknown
}

// AQIDescription maps an EPA air quality index to its category.
func AQIDescription(aqi int) string {
	switch {
	case aqi <= 50:
		return "Good"
	case aqi <= 100:
		return "Moderate"
	case aqi <= 150:
		return "Unhealthy for Sensitive Groups"
	case aqi <= 200:
		return "Unhealthy"
	case aqi <= 300:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}
