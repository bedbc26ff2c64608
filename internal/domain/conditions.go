package domain

import "fmt"

type WeatherConditions struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	WindSpeed   float64 `json:"windSpeed"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	Cloudiness  float64 `json:"cloudiness"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
}

// DefaultWeather is the neutral substitute used when the provider is unavailable.
func DefaultWeather() WeatherConditions {
	return WeatherConditions{
		Temperature: 20,
		FeelsLike:   20,
		WindSpeed:   1,
		Humidity:    30,
		Pressure:    1013,
		Cloudiness:  0,
		Condition:   "Clear",
		Description: "clear sky",
	}
}

type CongestionLevel string

const (
	CongestionLow    CongestionLevel = "Low"
	CongestionMedium CongestionLevel = "Medium"
	CongestionHigh   CongestionLevel = "High"
)

// CongestionFromSpeed classifies an average speed in km/h.
func CongestionFromSpeed(kmh float64) CongestionLevel {
	switch {
	case kmh < 20:
		return CongestionHigh
	case kmh < 40:
		return CongestionMedium
	default:
		return CongestionLow
	}
}

type Incident struct {
	Type        string   `json:"type"`
	Severity    string   `json:"severity"`
	Description string   `json:"description"`
	Location    GeoPoint `json:"location"`
}

type TrafficConditions struct {
	CongestionLevel CongestionLevel `json:"congestionLevel"`
	AverageSpeed    float64         `json:"averageSpeed"`
	Incidents       []Incident      `json:"incidents"`
}

// DefaultTraffic is the neutral substitute used when the provider is unavailable.
func DefaultTraffic() TrafficConditions {
	return TrafficConditions{
		CongestionLevel: CongestionLow,
		AverageSpeed:    50,
		Incidents:       []Incident{},
	}
}

// ConditionFetchError reports a failed weather or traffic lookup.
type ConditionFetchError struct {
	Provider string
	Err      error
}

func (e *ConditionFetchError) Error() string {
	return fmt.Sprintf("fetch %s conditions: %v", e.Provider, e.Err)
}

func (e *ConditionFetchError) Unwrap() error { return e.Err }

// Place is a single geocoding match.
type Place struct {
	DisplayName string            `json:"displayName"`
	Point       GeoPoint          `json:"point"`
	Address     map[string]string `json:"address,omitempty"`
}
