package domain

import (
	"fmt"
	"math"
)

// One degree of latitude spans roughly 111 km everywhere; longitude degrees
// shrink with cos(latitude).
const kmPerDegreeLat = 111.0

// Geographic bounding box in decimal degrees.
// Invariant after construction: North > South and East > West.
type BoundingBox struct {
	North float64
	South float64
	East  float64
	West  float64
}

// BoundingBoxFromPoints returns the smallest box covering all points, grown by
// paddingKm on every side. Padding is converted to degrees with the local
// 111 km/degree approximation.
func BoundingBoxFromPoints(points []Coordinate, paddingKm float64) (BoundingBox, error) {
	if len(points) == 0 {
		return BoundingBox{}, fmt.Errorf("bounding box from points: %w", ErrEmptyInput)
	}

	minLat, maxLat := points[0].Lat, points[0].Lat
	minLon, maxLon := points[0].Lon, points[0].Lon
	for _, p := range points[1:] {
		minLat = math.Min(minLat, p.Lat)
		maxLat = math.Max(maxLat, p.Lat)
		minLon = math.Min(minLon, p.Lon)
		maxLon = math.Max(maxLon, p.Lon)
	}

	latPad := paddingKm / kmPerDegreeLat

	meanLat := (minLat + maxLat) / 2
	lonScale := math.Cos(meanLat * math.Pi / 180)
	// Near the poles cos(lat) collapses and the padding would explode.
	if lonScale < 0.01 {
		lonScale = 0.01
	}
	lonPad := paddingKm / (kmPerDegreeLat * lonScale)

	return BoundingBox{
		North: maxLat + latPad,
		South: minLat - latPad,
		East:  maxLon + lonPad,
		West:  minLon - lonPad,
	}, nil
}

// AdaptivePadding sizes padding to the largest pairwise span of the points.
// Short hops keep the base padding so arterial roads stay inside the box;
// 50-200 km spans get 15% of the span; longer hauls are held at 30 km so
// network downloads stay manageable. The result is clamped to [min, max].
func AdaptivePadding(points []Coordinate, baseKm, minKm, maxKm float64) float64 {
	padding := baseKm

	span := 0.0
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if d := points[i].DistanceTo(points[j]); d > span {
				span = d
			}
		}
	}

	switch {
	case span > 200:
		padding = 30
	case span >= 50:
		padding = 0.15 * span
	}

	if padding < minKm {
		padding = minKm
	}
	if padding > maxKm {
		padding = maxKm
	}
	return padding
}

// Contains reports whether other lies fully inside the box.
func (b BoundingBox) Contains(other BoundingBox) bool {
	return b.North >= other.North &&
		b.South <= other.South &&
		b.East >= other.East &&
		b.West <= other.West
}

// AreaKm2 approximates the covered area in square kilometers.
func (b BoundingBox) AreaKm2() float64 {
	heightKm := (b.North - b.South) * kmPerDegreeLat

	meanLat := (b.North + b.South) / 2
	widthKm := (b.East - b.West) * kmPerDegreeLat * math.Cos(meanLat*math.Pi/180)

	return math.Abs(heightKm * widthKm)
}

// OverSizeLimit reports whether the box area exceeds maxAreaKm2. Used to
// refuse an expensive network fetch before attempting it.
func (b BoundingBox) OverSizeLimit(maxAreaKm2 float64) bool {
	return b.AreaKm2() > maxAreaKm2
}

// Key returns a stable string form, rounded to ~100 m, for use as a cache key.
func (b BoundingBox) Key() string {
	return fmt.Sprintf("%.3f,%.3f,%.3f,%.3f", b.North, b.South, b.East, b.West)
}
