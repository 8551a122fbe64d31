package domain

import (
	"errors"
	"math"
	"testing"
)

func TestCoordinateValidate(t *testing.T) {
	valid := []Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 90, Lon: 180},
		{Lat: -90, Lon: -180},
		{Lat: 33.7490, Lon: -84.3880},
	}
	for _, c := range valid {
		if err := c.Validate(); err != nil {
			t.Fatalf("coordinate %+v should be valid: %v", c, err)
		}
	}

	invalid := []Coordinate{
		{Lat: 91, Lon: 0},
		{Lat: -90.0001, Lon: 0},
		{Lat: 0, Lon: 180.5},
		{Lat: 0, Lon: -181},
	}
	for _, c := range invalid {
		err := c.Validate()
		if err == nil {
			t.Fatalf("coordinate %+v should be invalid", c)
		}
		if !errors.Is(err, ErrInvalidCoordinate) {
			t.Fatalf("error for %+v should wrap ErrInvalidCoordinate: %v", c, err)
		}
	}
}

func TestDistanceToSymmetricAndZero(t *testing.T) {
	atlanta := Coordinate{Lat: 33.7490, Lon: -84.3880}
	ringgold := Coordinate{Lat: 34.9161, Lon: -85.1077}

	if d := atlanta.DistanceTo(atlanta); d != 0 {
		t.Fatalf("distance to self = %v, want 0", d)
	}

	ab := atlanta.DistanceTo(ringgold)
	ba := ringgold.DistanceTo(atlanta)
	if math.Abs(ab-ba) > 1e-6 {
		t.Fatalf("distance not symmetric: %v vs %v", ab, ba)
	}

	// Atlanta to Ringgold is roughly 145 km as the crow flies.
	if ab < 140 || ab > 151 {
		t.Fatalf("Atlanta-Ringgold distance = %v km, want ~145", ab)
	}
}

func TestDistanceToOneDegreeLatitude(t *testing.T) {
	a := Coordinate{Lat: 0, Lon: 0}
	b := Coordinate{Lat: 1, Lon: 0}

	// One degree of latitude on a 6371 km sphere is ~111.19 km.
	want := 6371 * math.Pi / 180
	if d := a.DistanceTo(b); math.Abs(d-want) > 0.01 {
		t.Fatalf("one degree latitude = %v km, want %v", d, want)
	}
}
