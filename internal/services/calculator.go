package services

// CalculateEmission derives the emission quantity from a raw activity
// measurement. The product is stored at full precision; rounding happens
// only at presentation boundaries (see the report service).
func CalculateEmission(activityAmount, factorValue float64) float64 {
	return activityAmount * factorValue
}
