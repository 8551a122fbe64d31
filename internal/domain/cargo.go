package domain

import "fmt"

// Freight handling class of a cargo item.
type CargoType string

const (
	CargoStandard     CargoType = "standard"
	CargoFragile      CargoType = "fragile"
	CargoHazmat       CargoType = "hazmat"
	CargoRefrigerated CargoType = "refrigerated"
)

// ParseCargoType validates a raw cargo type string from storage or transport.
func ParseCargoType(s string) (CargoType, error) {
	switch CargoType(s) {
	case CargoStandard, CargoFragile, CargoHazmat, CargoRefrigerated:
		return CargoType(s), nil
	}
	return "", fmt.Errorf("unknown cargo type %q", s)
}

// A single freight item occupying truck capacity.
type Cargo struct {
	VolumeM3  float64
	WeightLbs float64
	Type      CargoType
}

// incompatiblePairs lists cargo type pairs that must never share a truck.
// Lookups are symmetric.
var incompatiblePairs = [][2]CargoType{
	{CargoHazmat, CargoFragile},
	{CargoHazmat, CargoRefrigerated},
}

// CompatibleCargoTypes reports whether two cargo types may travel together.
func CompatibleCargoTypes(a, b CargoType) bool {
	for _, pair := range incompatiblePairs {
		if (pair[0] == a && pair[1] == b) || (pair[0] == b && pair[1] == a) {
			return false
		}
	}
	return true
}
