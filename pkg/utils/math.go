package utils

import "math"

// RoundDecimal rounds a float64 value to the specified number of decimal places.
// For example, RoundDecimal(3.14159, 2) returns 3.14.
func RoundDecimal(value float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(value*pow) / pow
}

// Clamp01 bounds a score to the [0, 1] interval.
func Clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
