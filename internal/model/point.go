package model

import (
	"strconv"
)

// Coordinate is a latitude/longitude pair in decimal degrees
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// String formats the pair as "lat,lng" with the shortest exact representation
func (c Coordinate) String() string {
	return FormatDegrees(c.Latitude) + "," + FormatDegrees(c.Longitude)
}

// FormatDegrees formats a float without trailing zeros
func FormatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CollectionPoint is one entry of the points endpoint response
type CollectionPoint struct {
	Nome             string   `json:"nome"`
	Endereco         string   `json:"endereco"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	DistanciaKm      *float64 `json:"distancia_km,omitempty"`
	MateriaisAceitos []string `json:"materiais_aceitos,omitempty"`
}

// Coordinate returns the point location
func (p CollectionPoint) Coordinate() Coordinate {
	return Coordinate{Latitude: p.Latitude, Longitude: p.Longitude}
}

// DistanceLabel returns " (<km> km)" or "" when the distance is missing or zero
func (p CollectionPoint) DistanceLabel() string {
	if p.DistanciaKm == nil || *p.DistanciaKm == 0 {
		return ""
	}
	return " (" + FormatDegrees(*p.DistanciaKm) + " km)"
}

// PointsResult is the body returned by POST /find_recycling_points
type PointsResult struct {
	Pontos []CollectionPoint `json:"pontos"`
	Error  string            `json:"error,omitempty"`
}
