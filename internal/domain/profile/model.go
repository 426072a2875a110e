package profile

import (
	"github.com/yanqian/desi-diet/internal/domain/metabolism"
	"github.com/yanqian/desi-diet/pkg/util"
)

// UserProfile holds the anthropometric input. CalorieTarget is always derived.
type UserProfile struct {
	Name          string            `json:"name"`
	Age           int               `json:"age"`
	Weight        float64           `json:"weight"`
	Height        float64           `json:"height"`
	Gender        metabolism.Gender `json:"gender"`
	Goal          metabolism.Goal   `json:"goal"`
	CalorieTarget int               `json:"calorieTarget"`
}

// IsComplete reports whether the profile carries a name.
func IsComplete(p UserProfile) bool {
	return p.Name != ""
}

// BMI category labels used on the profile page.
const (
	CategoryUnderweight = "Underweight"
	CategoryNormal      = "Normal"
	CategoryOverweight  = "Overweight"
	CategoryObese       = "Obese"
)

// Assessment is a classified BMI with advice for the category.
type Assessment struct {
	BMI      float64  `json:"bmi"`
	Category string   `json:"category"`
	Advice   []string `json:"advice"`
}

var advice = map[string][]string{
	CategoryUnderweight: {
		"Focus on nutrient-dense, high-calorie foods",
		"Include healthy fats like nuts, seeds, and avocados",
		"Add protein-rich foods like paneer, eggs, and legumes",
		"Consider strength training to build muscle mass",
		"Eat frequent, smaller meals throughout the day",
	},
	CategoryNormal: {
		"Maintain your current healthy eating patterns",
		"Continue regular physical activity",
		"Focus on balanced nutrition with all food groups",
		"Stay hydrated and get adequate sleep",
		"Monitor portion sizes to maintain weight",
	},
	CategoryOverweight: {
		"Create a moderate calorie deficit (300-500 calories)",
		"Increase physical activity with cardio and strength training",
		"Focus on portion control and mindful eating",
		"Choose whole grains over refined carbohydrates",
		"Include more vegetables and lean proteins in your diet",
	},
	CategoryObese: {
		"Consult with a healthcare professional",
		"Start with light exercise like walking or swimming",
		"Focus on gradual, sustainable weight loss",
		"Consider meal planning and calorie tracking",
		"Prioritize whole foods and avoid processed foods",
	},
}

// Category maps a BMI value onto the half-open bands
// [0,18.5) [18.5,25) [25,30) [30,inf).
func Category(bmi float64) string {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25:
		return CategoryNormal
	case bmi < 30:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

// ClassifyBMI computes and classifies BMI. ok is false when height is not
// positive; no BMI is computed in that case.
func ClassifyBMI(heightCm, weightKg float64) (Assessment, bool) {
	bmi, ok := metabolism.BMI(heightCm, weightKg)
	if !ok {
		return Assessment{}, false
	}
	category := Category(bmi)
	tips := make([]string, len(advice[category]))
	copy(tips, advice[category])
	return Assessment{
		BMI:      util.RoundTo(bmi, 1),
		Category: category,
		Advice:   tips,
	}, true
}
