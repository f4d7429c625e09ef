package dto

import "dispatch/internal/entities"

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

type StatusUpdate struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type SuspensionResponse struct {
	Message        string `json:"message"`
	Reason         string `json:"reason"`
	SuspendedUntil string `json:"suspended_until"`
}

func FromCoordinate(c entities.Coordinate) Coordinate {
	return Coordinate{
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Address:   c.Address,
	}
}

func (c Coordinate) ToDomain() entities.Coordinate {
	return entities.Coordinate{
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Address:   c.Address,
	}
}

func toDomainCoordinates(points []Coordinate) []entities.Coordinate {
	if len(points) == 0 {
		return nil
	}
	result := make([]entities.Coordinate, len(points))
	for i, p := range points {
		result[i] = p.ToDomain()
	}
	return result
}

type PingResponse struct {
	Message string `json:"message"`
	Service string `json:"service"`
}
