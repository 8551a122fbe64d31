package roadnet

import (
	"strconv"
	"strings"

	"freight-matching-service/internal/domain"
)

// Fallback speeds by OSM highway class, km/h.
var classSpeeds = map[string]float64{
	"motorway":    110,
	"primary":     70,
	"residential": 30,
}

const (
	defaultSpeedKmh = 50.0
	minSpeedKmh     = 5.0
	maxSpeedKmh     = 130.0
)

// EdgeSpeedKmh derives an edge travel speed from the posted maxspeed tag when
// parseable, else from the road-class table, else the default. The result is
// always clamped to [5, 130] km/h.
func EdgeSpeedKmh(maxspeed, highway string) float64 {
	if v, ok := parseMaxspeed(maxspeed); ok {
		return clampSpeed(v)
	}
	if v, ok := classSpeeds[highway]; ok {
		return clampSpeed(v)
	}
	return defaultSpeedKmh
}

// parseMaxspeed handles the common tag shapes: "60", "60 km/h", "40 mph".
// Unparseable values ("signals", "none", "") report false.
func parseMaxspeed(raw string) (float64, bool) {
	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) == 0 {
		return 0, false
	}

	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}

	if len(fields) > 1 && strings.EqualFold(fields[1], "mph") {
		v *= domain.MilesToKm
	}
	return v, true
}

func clampSpeed(v float64) float64 {
	if v < minSpeedKmh {
		return minSpeedKmh
	}
	if v > maxSpeedKmh {
		return maxSpeedKmh
	}
	return v
}
