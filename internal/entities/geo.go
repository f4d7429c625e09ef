package entities

import "math"

// Coordinate точка на карте с человекочитаемым адресом.
type Coordinate struct {
	Latitude  float64
	Longitude float64
	Address   string
}

func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) ||
		math.IsInf(c.Latitude, 0) || math.IsInf(c.Longitude, 0) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Payload представление для событий реального времени.
func (c Coordinate) Payload() map[string]any {
	return map[string]any{
		"latitude":  c.Latitude,
		"longitude": c.Longitude,
		"address":   c.Address,
	}
}
