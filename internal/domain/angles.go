package domain

import "math"

// NormalizeDegrees приводит угол к [0, 360).
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	// -1e-18 + 360 == 360 во float64; заодно убираем -0
	if d >= 360 || d == 0 {
		d = 0
	}
	return d
}
