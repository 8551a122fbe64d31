package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"freight-matching-service/internal/domain"
)

type CargoSeed struct {
	VolumeM3  float64 `json:"volume_m3"`
	WeightLbs float64 `json:"weight_lbs"`
	Type      string  `json:"type"`
}

type PointSeed struct {
	ID  string  `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type OrderSeed struct {
	OrderID   string    `json:"order_id"`
	Pickup    PointSeed `json:"pickup"`
	Dropoff   PointSeed `json:"dropoff"`
	VolumeM3  float64   `json:"volume_m3"`
	WeightLbs float64   `json:"weight_lbs"`
	CargoType string    `json:"cargo_type"`
	Revenue   float64   `json:"revenue"`
}

type TruckSeed struct {
	CapacityM3   float64 `json:"capacity_m3"`
	MaxWeightLbs float64 `json:"max_weight_lbs"`
	AutonomyKm   float64 `json:"autonomy_km"`
}

// ContractSeed is one contracted lane: a route, its truck, and the
// cargo already committed to it.
type ContractSeed struct {
	RouteID       string      `json:"route_id"`
	TruckID       string      `json:"truck_id"`
	Profitability float64     `json:"profitability"`
	Truck         TruckSeed   `json:"truck"`
	Stops         []PointSeed `json:"stops"`
	Cargo         []CargoSeed `json:"cargo"`
}

// loadOrderSeeds reads and validates an order seed file. Orders without
// an ID get a generated one, so hand-written demo files stay terse.
func loadOrderSeeds(jsonPath string) ([]OrderSeed, error) {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed orders: read %q: %w", jsonPath, err)
	}

	var data []OrderSeed
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("seed orders: parse json: %w", err)
	}

	for i := range data {
		item := &data[i]
		if strings.TrimSpace(item.OrderID) == "" {
			item.OrderID = uuid.NewString()
		}

		pickup := domain.Coordinate{Lat: item.Pickup.Lat, Lon: item.Pickup.Lon}
		if err := pickup.Validate(); err != nil {
			return nil, fmt.Errorf("seed orders: order %q pickup: %w", item.OrderID, err)
		}
		dropoff := domain.Coordinate{Lat: item.Dropoff.Lat, Lon: item.Dropoff.Lon}
		if err := dropoff.Validate(); err != nil {
			return nil, fmt.Errorf("seed orders: order %q dropoff: %w", item.OrderID, err)
		}

		if item.VolumeM3 <= 0 || item.WeightLbs <= 0 {
			return nil, fmt.Errorf("seed orders: order %q: volume and weight must be positive", item.OrderID)
		}
		if _, err := domain.ParseCargoType(item.CargoType); err != nil {
			return nil, fmt.Errorf("seed orders: order %q: %w", item.OrderID, err)
		}
	}

	return data, nil
}

// loadContractSeeds reads and validates a contract seed file.
func loadContractSeeds(jsonPath string) ([]ContractSeed, error) {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed contracts: read %q: %w", jsonPath, err)
	}

	var data []ContractSeed
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("seed contracts: parse json: %w", err)
	}

	for i, item := range data {
		if strings.TrimSpace(item.RouteID) == "" {
			return nil, fmt.Errorf("seed contracts: item %d: route_id cannot be empty", i+1)
		}
		if strings.TrimSpace(item.TruckID) == "" {
			return nil, fmt.Errorf("seed contracts: route %q: truck_id cannot be empty", item.RouteID)
		}
		if item.Truck.CapacityM3 <= 0 || item.Truck.MaxWeightLbs <= 0 {
			return nil, fmt.Errorf("seed contracts: route %q: truck capacity and weight limit must be positive", item.RouteID)
		}
		if len(item.Stops) < 2 {
			return nil, fmt.Errorf("seed contracts: route %q: at least two stops required", item.RouteID)
		}

		for _, s := range item.Stops {
			c := domain.Coordinate{Lat: s.Lat, Lon: s.Lon}
			if err := c.Validate(); err != nil {
				return nil, fmt.Errorf("seed contracts: route %q stop %q: %w", item.RouteID, s.ID, err)
			}
		}
		for _, cg := range item.Cargo {
			if _, err := domain.ParseCargoType(cg.Type); err != nil {
				return nil, fmt.Errorf("seed contracts: route %q: %w", item.RouteID, err)
			}
		}
	}

	return data, nil
}
