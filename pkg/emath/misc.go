package emath

import "math"

// Some functions that only operate on basic types, that are useful

func GammaExpand_F64(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055 * math.Pow(f, 1.0/2.4) - 0.055
}

// RoundTo rounds v to the nearest multiple of step (halves round up).
func RoundTo(v, step float64) float64 {
	return math.Floor(v/step + 0.5) * step
}

func Clamp(v, min, max float64) float64 {
	if v < min { return min }
	if v > max { return max }
	return v
}

func Deg2Rad(d float64) float64 { return d * math.Pi / 180.0 }
func Rad2Deg(r float64) float64 { return r * 180.0 / math.Pi }
