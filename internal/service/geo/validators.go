package geo

import "math"

func isValidDistance(km float64) bool {
	return !math.IsNaN(km) && !math.IsInf(km, 0) && km >= 0
}
