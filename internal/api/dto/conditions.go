package dto

import (
	"customer-route-service/internal/domain"
	"customer-route-service/internal/services"
)

type ConditionsQuery struct {
	Lat    *float64 `json:"lat" validate:"required,latitude"`
	Lon    *float64 `json:"lon" validate:"required,longitude"`
	Radius float64  `json:"radius" validate:"gte=0,lte=100"`
}

type ConditionsResponse struct {
	Weather  domain.WeatherConditions `json:"weather"`
	Traffic  domain.TrafficConditions `json:"traffic"`
	Degraded []string                 `json:"degraded"`
}

func NewConditionsResponse(c services.Conditions) ConditionsResponse {
	degraded := c.Degraded
	if degraded == nil {
		degraded = []string{}
	}
	return ConditionsResponse{Weather: c.Weather, Traffic: c.Traffic, Degraded: degraded}
}

type GeocodeQuery struct {
	Q string `json:"q" validate:"required,max=200"`
}

type GeocodeResponse struct {
	Places []domain.Place `json:"places"`
}

type ListCustomersResponse struct {
	Customers []domain.CustomerLocation `json:"customers"`
}
