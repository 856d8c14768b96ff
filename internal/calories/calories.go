// Package calories estimates energy expenditure for load-carrying walks
// using a MET-based model. All functions are pure; out-of-domain input
// yields a zero result rather than an error so a bad sample can never
// abort a session update.
package calories

import "math"

// Base MET for walking at a moderate pace.
const baseMET = 3.5

// Assumed average pace used to estimate time on feet, km/h.
const assumedPaceKmh = 5.0

// Burned estimates calories for a session. The model adds roughly 0.5 MET
// per 10% of body weight carried and 0.2 MET per 1% of average grade, then
// applies MET * total weight * hours with hours derived from the assumed
// pace. Returns 0 when any input is non-finite, the body weight is not
// positive, or distance/elevation are negative.
func Burned(userWeightKg, ruckWeightKg, distanceKm, elevationGainM float64) float64 {
	if !finite(userWeightKg, ruckWeightKg, distanceKm, elevationGainM) {
		return 0
	}
	if userWeightKg <= 0 || distanceKm < 0 || elevationGainM < 0 {
		return 0
	}

	weightPct := (ruckWeightKg / userWeightKg) * 100
	metForWeight := (weightPct / 10) * 0.5

	var metForElevation float64
	if distanceKm > 0 {
		gradePct := (elevationGainM / (distanceKm * 1000)) * 100
		metForElevation = gradePct * 0.2
	}

	totalMET := baseMET + metForWeight + metForElevation
	totalWeightKg := userWeightKg + ruckWeightKg
	hours := distanceKm / assumedPaceKmh

	return totalMET * totalWeightKg * hours
}

// PaceMinPerKm returns the average pace in minutes per kilometer, or 0 when
// either input is not positive.
func PaceMinPerKm(distanceKm float64, durationSeconds int) float64 {
	if distanceKm <= 0 || durationSeconds <= 0 {
		return 0
	}
	return (float64(durationSeconds) / 60) / distanceKm
}

// AverageSpeedKmh returns the average speed in km/h, or 0 when either input
// is not positive.
func AverageSpeedKmh(distanceKm float64, durationSeconds int) float64 {
	if distanceKm <= 0 || durationSeconds <= 0 {
		return 0
	}
	return distanceKm / (float64(durationSeconds) / 3600)
}

// EnergyPerKg estimates energy expenditure per kilogram of body weight,
// useful for comparing workouts across users of different weights.
func EnergyPerKg(ruckWeightKg, distanceKm, elevationGainM float64) float64 {
	// Base cost of walking, kcal/kg/km, plus ~0.01 kcal/kg/km per kg of
	// load and ~0.002 kcal/kg per meter climbed.
	const baseCost = 0.75
	costForWeight := 0.01 * ruckWeightKg
	costForElevation := 0.002 * elevationGainM

	return (baseCost+costForWeight)*distanceKm + costForElevation
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
