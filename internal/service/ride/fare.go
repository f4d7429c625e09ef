package ride

const (
	DefaultBaseFare  = 30.0
	DefaultPerKmRate = 10.0
)

// EstimateFare base + km × rate, округление до сотых.
func EstimateFare(distanceKm, baseFare, perKmRate float64) float64 {
	return round2(baseFare + distanceKm*perKmRate)
}
