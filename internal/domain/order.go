package domain

// A freight order: cargo to move from a pickup point to a dropoff point for an
// agreed revenue.
type Order struct {
	ID      string
	Pickup  Coordinate
	Dropoff Coordinate
	Cargo   []Cargo
	Revenue float64
}

// TotalVolumeM3 sums the volume of all cargo items on the order.
func (o Order) TotalVolumeM3() float64 {
	var total float64
	for _, c := range o.Cargo {
		total += c.VolumeM3
	}
	return total
}

// TotalWeightLbs sums the weight of all cargo items on the order.
func (o Order) TotalWeightLbs() float64 {
	var total float64
	for _, c := range o.Cargo {
		total += c.WeightLbs
	}
	return total
}

// DirectDistanceKm is the great-circle pickup-to-dropoff distance.
func (o Order) DirectDistanceKm() float64 {
	return o.Pickup.DistanceTo(o.Dropoff)
}

// CompatibleWith reports whether every cargo item on the order may travel
// alongside every item in existing.
func (o Order) CompatibleWith(existing []Cargo) bool {
	for _, mine := range o.Cargo {
		for _, theirs := range existing {
			if !CompatibleCargoTypes(mine.Type, theirs.Type) {
				return false
			}
		}
	}
	return true
}
