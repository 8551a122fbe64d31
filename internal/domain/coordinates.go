package domain

import (
	"fmt"
	"math"
)

// Earth radius used for great-circle math, in kilometers.
const earthRadiusKm = 6371.0

// Immutable geographic coordinate (latitude, longitude) in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Validate reports whether the coordinate lies inside the WGS84 value range.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("validate coordinate: latitude %.4f outside [-90, 90]: %w", c.Lat, ErrInvalidCoordinate)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("validate coordinate: longitude %.4f outside [-180, 180]: %w", c.Lon, ErrInvalidCoordinate)
	}
	return nil
}

// DistanceTo returns the great-circle distance to other in kilometers,
// using the haversine formula. Symmetric; zero for identical points.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	lat1 := c.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - c.Lat) * math.Pi / 180
	dLon := (other.Lon - c.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// A Waypoint is a coordinate with an opaque identifier.
// An ordered sequence of waypoints forms a route path.
type Waypoint struct {
	ID string
	Coordinate
}
