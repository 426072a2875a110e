package metabolism

import (
	"math"
	"strings"
)

// Goal is the user's stated weight objective.
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

// ParseGoal normalizes raw input; ok is false for anything unrecognized.
func ParseGoal(raw string) (Goal, bool) {
	switch g := Goal(strings.ToLower(strings.TrimSpace(raw))); g {
	case GoalLose, GoalMaintain, GoalGain:
		return g, true
	default:
		return GoalMaintain, false
	}
}

// Gender selects the BMR equation. Anything other than male uses the female equation.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ParseGender normalizes raw input.
func ParseGender(raw string) (Gender, bool) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(raw))); g {
	case GenderMale, GenderFemale, GenderOther:
		return g, true
	default:
		return GenderOther, false
	}
}

const (
	goalAdjustment = 500
	simpleFactor   = 24
	activityFactor = 1.55
)

// BMI returns weight / (height in metres)^2. ok is false when height is not positive.
func BMI(heightCm, weightKg float64) (float64, bool) {
	if heightCm <= 0 || !finite(heightCm) || !finite(weightKg) {
		return 0, false
	}
	m := heightCm / 100
	return weightKg / (m * m), true
}

// SimpleCalorieTarget is the activity-free heuristic used for profile targets:
// round(weight*24) adjusted by 500 for lose/gain.
func SimpleCalorieTarget(weightKg float64, goal Goal) int {
	return int(math.Round(weightKg*simpleFactor)) + adjustment(goal)
}

// DetailedCalorieTarget applies Harris-Benedict BMR, a moderate activity factor
// and the goal adjustment.
func DetailedCalorieTarget(weightKg, heightCm float64, age int, gender Gender, goal Goal) int {
	var bmr float64
	if gender == GenderMale {
		bmr = 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*float64(age)
	} else {
		bmr = 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*float64(age)
	}
	return int(math.Round(bmr*activityFactor + float64(adjustment(goal))))
}

func adjustment(goal Goal) int {
	switch goal {
	case GoalLose:
		return -goalAdjustment
	case GoalGain:
		return goalAdjustment
	default:
		return 0
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
