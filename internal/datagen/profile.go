//-------------------------------------------------------------------------
//
// posmart - Point-of-Sale Analytics Mart
//
// Copyright (c) 2025 - 2026, Beanlake Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import "time"

// DemandProfile shapes when synthetic transactions happen. A coffee shop has
// a strong morning peak, a lunch bump, and thin evenings; weekends trade a
// little lighter than weekdays.
//
// Morning rush: 7AM - 10AM (100% of peak)
// Late morning: 10AM - 12PM (70%)
// Lunch: 12PM - 2PM (80%)
// Afternoon: 2PM - 5PM (50%)
// Evening: 5PM - 8PM (30%)
// Closed-ish: 8PM - 6AM (near zero, the odd straggler)
// Weekend: 85% of weekday
type DemandProfile struct{}

// ActivityLevel returns the relative transaction volume (0.0 to 1.0) for an
// hour of day on a given weekday.
func (DemandProfile) ActivityLevel(hour int, weekday time.Weekday) float64 {
	var base float64

	switch {
	case hour >= 7 && hour < 10:
		base = 1.0
	case hour >= 10 && hour < 12:
		base = 0.70
	case hour >= 12 && hour < 14:
		base = 0.80
	case hour >= 14 && hour < 17:
		base = 0.50
	case hour >= 17 && hour < 20:
		base = 0.30
	case hour == 6 || hour == 20:
		base = 0.05
	default:
		base = 0.0
	}

	if weekday == time.Saturday || weekday == time.Sunday {
		base *= 0.85
	}

	return base
}

// HourWeights returns per-hour integer weights for a weekday, suitable for
// ChooseWeighted. Hours with zero demand get zero weight.
func (p DemandProfile) HourWeights(weekday time.Weekday) []int {
	weights := make([]int, 24)
	for h := 0; h < 24; h++ {
		weights[h] = int(p.ActivityLevel(h, weekday) * 100)
	}
	return weights
}
