// Package calorie estimates energy needs from body metrics.
package calorie

import (
	"math"
	"strings"
)

var activityMultipliers = map[string]float64{
	"sedentary":  1.2,
	"light":      1.375,
	"moderate":   1.55,
	"active":     1.725,
	"veryactive": 1.9,
}

const defaultMultiplier = 1.2

type Result struct {
	BMR  int `json:"bmr"`
	TDEE int `json:"tdee"`
}

// BMR uses the Mifflin-St Jeor equation. Weight is in kg, height in cm.
// Any gender other than "male" uses the female constant.
func BMR(weight, height float64, age int, gender string) int {
	bmr := 10*weight + 6.25*height - 5*float64(age)
	if strings.EqualFold(gender, "male") {
		bmr += 5
	} else {
		bmr -= 161
	}
	return int(math.Round(bmr))
}

// TDEE scales bmr by the activity multiplier; unknown activity levels count
// as sedentary.
func TDEE(bmr int, activity string) int {
	multiplier, ok := activityMultipliers[strings.ToLower(activity)]
	if !ok {
		multiplier = defaultMultiplier
	}
	return int(math.Round(float64(bmr) * multiplier))
}

func Calculate(weight, height float64, age int, gender, activity string) Result {
	bmr := BMR(weight, height, age, gender)
	return Result{BMR: bmr, TDEE: TDEE(bmr, activity)}
}
