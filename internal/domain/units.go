package domain

// Unit conversions used across costing and capacity math. Costs are
// quoted per mile and cargo arrives in imperial units, while routing
// works in kilometers.
const (
	KmToMiles = 0.621371
	MilesToKm = 1.609344
	LbsToKg   = 0.453592
)
