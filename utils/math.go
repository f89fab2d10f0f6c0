// utils/math.go
package utils

import "math"

const Epsilon = 1e-9

// FloatEquals compares two floating-point numbers for near-equality.
func FloatEquals(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// RoundToPrecision rounds a float64 to a specified number of decimal places.
func RoundToPrecision(value float64, precision int) float64 {
	pow := math.Pow(10, float64(precision))
	return math.Round(value*pow) / pow
}

// SignedAmount rounds a money amount to cents and normalizes negative zero.
func SignedAmount(value float64) float64 {
	v := RoundToPrecision(value, 2)
	if FloatEquals(v, 0) {
		return 0 // avoids printing -0.00
	}
	return v
}
