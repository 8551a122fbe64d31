package domain

import "fmt"

// Freight truck aggregate holding loaded cargo against volume and weight limits.
type Truck struct {
	ID           string
	CapacityM3   float64
	MaxWeightLbs float64
	AutonomyKm   float64
	Cargo        []Cargo
}

func NewTruck(id string, capacityM3, maxWeightLbs float64) *Truck {
	return &Truck{
		ID:           id,
		CapacityM3:   capacityM3,
		MaxWeightLbs: maxWeightLbs,
	}
}

// LoadedVolumeM3 sums the volume of all cargo currently on the truck.
func (t *Truck) LoadedVolumeM3() float64 {
	var total float64
	for _, c := range t.Cargo {
		total += c.VolumeM3
	}
	return total
}

// LoadedWeightLbs sums the weight of all cargo currently on the truck.
func (t *Truck) LoadedWeightLbs() float64 {
	var total float64
	for _, c := range t.Cargo {
		total += c.WeightLbs
	}
	return total
}

// AvailableVolumeM3 is the remaining volume capacity.
func (t *Truck) AvailableVolumeM3() float64 {
	return t.CapacityM3 - t.LoadedVolumeM3()
}

// AvailableWeightLbs is the remaining weight capacity.
func (t *Truck) AvailableWeightLbs() float64 {
	return t.MaxWeightLbs - t.LoadedWeightLbs()
}

// Load a single cargo item onto the truck.
func (t *Truck) Load(c Cargo) error {
	if t.LoadedVolumeM3()+c.VolumeM3 > t.CapacityM3 {
		return fmt.Errorf("load truck %s: volume %.2f m3 exceeds capacity %.2f m3",
			t.ID, t.LoadedVolumeM3()+c.VolumeM3, t.CapacityM3)
	}
	if t.LoadedWeightLbs()+c.WeightLbs > t.MaxWeightLbs {
		return fmt.Errorf("load truck %s: weight %.1f lbs exceeds limit %.1f lbs",
			t.ID, t.LoadedWeightLbs()+c.WeightLbs, t.MaxWeightLbs)
	}
	for _, existing := range t.Cargo {
		if !CompatibleCargoTypes(c.Type, existing.Type) {
			return fmt.Errorf("load truck %s: cargo type %s incompatible with loaded %s",
				t.ID, c.Type, existing.Type)
		}
	}

	t.Cargo = append(t.Cargo, c)
	return nil
}

// LoadOrder loads all cargo items of an order onto the truck.
func (t *Truck) LoadOrder(o Order) error {
	for _, c := range o.Cargo {
		if err := t.Load(c); err != nil {
			return fmt.Errorf("load order %s: %w", o.ID, err)
		}
	}
	return nil
}

// Unload all cargo from the truck.
func (t *Truck) Clear() {
	t.Cargo = nil
}
