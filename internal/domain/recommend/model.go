package recommend

import "github.com/yanqian/desi-diet/internal/domain/metabolism"

// HealthRequest carries the profile fields recommendations are derived from.
type HealthRequest struct {
	Height float64           `json:"height"`
	Weight float64           `json:"weight"`
	Age    int               `json:"age"`
	Goal   metabolism.Goal   `json:"goal"`
	Gender metabolism.Gender `json:"gender"`
}

// WorkoutPlan is the weekly training outline for a BMI band.
type WorkoutPlan struct {
	Focus     string   `json:"focus"`
	Weekly    string   `json:"weekly"`
	Exercises []string `json:"exercises"`
}

// Recipe is a suggested dish with its headline nutrition.
type Recipe struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
	Protein  int    `json:"protein"`
	Fiber    int    `json:"fiber"`
}

// ProgressGoals sets a 12 week target.
type ProgressGoals struct {
	WeightTarget string   `json:"weightTarget"`
	BMITarget    float64  `json:"bmiTarget"`
	Timeframe    string   `json:"timeframe"`
	Milestones   []string `json:"milestones"`
}

// HealthResult is the full recommendation payload.
type HealthResult struct {
	BMI           float64       `json:"bmi"`
	Category      string        `json:"category"`
	CalorieTarget int           `json:"calorieTarget"`
	WorkoutPlan   WorkoutPlan   `json:"workoutPlan"`
	Recipes       []Recipe      `json:"recipes"`
	HealthTips    []string      `json:"healthTips"`
	RiskFactors   []string      `json:"riskFactors"`
	ProgressGoals ProgressGoals `json:"progressGoals"`
}

// Fitness levels and workout focuses understood by the generator.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"

	FocusCardio      = "cardio"
	FocusStrength    = "strength"
	FocusFlexibility = "flexibility"
	FocusMixed       = "mixed"
)

// WorkoutRequest configures a generated session. Zero values take defaults.
type WorkoutRequest struct {
	Goal         string   `json:"goal"`
	FitnessLevel string   `json:"fitnessLevel"`
	Duration     *int     `json:"duration"`
	Equipment    []string `json:"equipment"`
	Focus        string   `json:"focus"`
}

// Exercise is one generated movement. Timed moves set Duration, counted moves set Reps.
type Exercise struct {
	Name       string `json:"name"`
	Duration   string `json:"duration,omitempty"`
	Rest       string `json:"rest,omitempty"`
	Reps       string `json:"reps,omitempty"`
	Sets       int    `json:"sets,omitempty"`
	Difficulty string `json:"difficulty"`
}

// Progression is the four week ramp for a fitness level.
type Progression struct {
	Week1 string `json:"week1"`
	Week2 string `json:"week2"`
	Week3 string `json:"week3"`
	Week4 string `json:"week4"`
}

// Workout is a generated session.
type Workout struct {
	Title       string      `json:"title"`
	Duration    string      `json:"duration"`
	Difficulty  string      `json:"difficulty"`
	Goal        string      `json:"goal"`
	Exercises   []Exercise  `json:"exercises"`
	Tips        []string    `json:"tips"`
	Progression Progression `json:"progression"`
}
