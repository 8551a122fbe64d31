package domain

// Represents a contract route operated by a single truck.
// The path is the ordered sequence of stops the truck drives; assigned cargo
// is everything already committed to the route by earlier matches.
type Route struct {
	ID            string
	TruckID       string
	Path          []Waypoint
	AssignedCargo []Cargo
	// Daily margin of the route as contracted, in USD. Negative for the
	// loss-making lanes this system exists to fill.
	Profitability float64
}

// PathCoordinates returns the bare coordinates of the route path in order.
func (r Route) PathCoordinates() []Coordinate {
	coords := make([]Coordinate, 0, len(r.Path))
	for _, wp := range r.Path {
		coords = append(coords, wp.Coordinate)
	}
	return coords
}

// AssignedVolumeM3 sums the volume already committed to the route.
func (r Route) AssignedVolumeM3() float64 {
	var total float64
	for _, c := range r.AssignedCargo {
		total += c.VolumeM3
	}
	return total
}

// AssignedWeightLbs sums the weight already committed to the route.
func (r Route) AssignedWeightLbs() float64 {
	var total float64
	for _, c := range r.AssignedCargo {
		total += c.WeightLbs
	}
	return total
}
