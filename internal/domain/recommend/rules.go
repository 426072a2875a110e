package recommend

import (
	"math"

	"github.com/yanqian/desi-diet/internal/domain/metabolism"
	"github.com/yanqian/desi-diet/pkg/util"
)

// Category labels returned with health recommendations.
const (
	LabelUnderweight = "Underweight"
	LabelNormal      = "Normal weight"
	LabelOverweight  = "Overweight"
	LabelObese       = "Obese"
)

const noRiskFactors = "No significant risk factors identified"

// bmiCategory uses the same half-open bands as the profile page.
func bmiCategory(bmi float64) string {
	if bmi < 18.5 {
		return LabelUnderweight
	}
	if bmi < 25 {
		return LabelNormal
	}
	if bmi < 30 {
		return LabelOverweight
	}
	return LabelObese
}

var (
	cardioActivities      = []string{"Brisk Walking", "Cycling", "Swimming", "Dancing"}
	strengthActivities    = []string{"Push-ups", "Squats", "Lunges", "Planks"}
	flexibilityActivities = []string{"Yoga", "Stretching", "Pilates"}
)

func workoutPlan(bmi float64, _ metabolism.Goal) WorkoutPlan {
	switch {
	case bmi > 30:
		return WorkoutPlan{
			Focus:     "Low-impact cardio and strength building",
			Weekly:    "4-5 days cardio, 2-3 days strength",
			Exercises: concat(cardioActivities[:2], strengthActivities[:2]),
		}
	case bmi < 18.5:
		return WorkoutPlan{
			Focus:     "Strength training and muscle building",
			Weekly:    "3-4 days strength, 2-3 days cardio",
			Exercises: concat(strengthActivities, cardioActivities[:1]),
		}
	default:
		return WorkoutPlan{
			Focus:     "Balanced fitness routine",
			Weekly:    "3-4 days mixed training",
			Exercises: concat(cardioActivities[:2], strengthActivities[:3]),
		}
	}
}

var recipes = map[metabolism.Goal][]Recipe{
	metabolism.GoalLose: {
		{Name: "Quinoa Biryani", Calories: 320, Protein: 12, Fiber: 8},
		{Name: "Grilled Tandoori Chicken", Calories: 280, Protein: 35, Fiber: 2},
		{Name: "Mixed Dal with Vegetables", Calories: 240, Protein: 15, Fiber: 12},
	},
	metabolism.GoalGain: {
		{Name: "Mutton Curry with Rice", Calories: 580, Protein: 28, Fiber: 4},
		{Name: "Paneer Makhani", Calories: 450, Protein: 20, Fiber: 3},
		{Name: "Aloo Paratha with Curd", Calories: 420, Protein: 12, Fiber: 6},
	},
	metabolism.GoalMaintain: {
		{Name: "Vegetable Pulao", Calories: 350, Protein: 8, Fiber: 6},
		{Name: "Fish Curry", Calories: 320, Protein: 25, Fiber: 4},
		{Name: "Chana Masala", Calories: 280, Protein: 12, Fiber: 10},
	},
}

// RecipesFor returns the fixed list for goal; unknown goals get the maintain list.
func RecipesFor(goal metabolism.Goal) []Recipe {
	list, ok := recipes[goal]
	if !ok {
		list = recipes[metabolism.GoalMaintain]
	}
	out := make([]Recipe, len(list))
	copy(out, list)
	return out
}

var commonTips = []string{
	"Stay hydrated with 8-10 glasses of water daily",
	"Include probiotics like yogurt in your diet",
	"Practice portion control using smaller plates",
}

func healthTips(bmi float64, _ metabolism.Goal) []string {
	switch {
	case bmi > 30:
		return concat(commonTips, []string{
			"Focus on gradual weight loss of 1-2 lbs per week",
			"Replace refined grains with whole grains",
			"Include more fiber-rich vegetables in meals",
		})
	case bmi < 18.5:
		return concat(commonTips, []string{
			"Eat frequent small meals throughout the day",
			"Include healthy fats like nuts and avocados",
			"Focus on protein-rich foods for muscle building",
		})
	default:
		return concat(commonTips, []string{
			"Maintain your current eating pattern",
			"Include variety in your meals",
			"Continue regular physical activity",
		})
	}
}

// riskFactors never returns an empty slice.
func riskFactors(bmi float64, age int) []string {
	risks := make([]string, 0, 8)
	if bmi > 30 {
		risks = append(risks, "Increased risk of diabetes", "Higher cardiovascular risk", "Joint stress concerns")
	}
	if bmi < 18.5 {
		risks = append(risks, "Nutritional deficiency risk", "Weakened immune system", "Bone health concerns")
	}
	if age > 40 {
		risks = append(risks, "Age-related metabolism changes", "Increased focus on bone health needed")
	}
	if len(risks) == 0 {
		return []string{noRiskFactors}
	}
	return risks
}

// progressGoals reports BMITarget to one decimal, the same precision as the
// BMI shown on the profile.
func progressGoals(goal metabolism.Goal, bmi float64) ProgressGoals {
	const timeframe = "12 weeks"
	weightMilestones := []string{"Week 2: 2-3 lbs", "Week 6: 4-6 lbs", "Week 12: 8-12 lbs"}
	switch goal {
	case metabolism.GoalLose:
		target := "6-8 lbs"
		if bmi > 30 {
			target = "8-12 lbs"
		}
		return ProgressGoals{
			WeightTarget: target,
			BMITarget:    util.RoundTo(math.Max(bmi-2, 22), 1),
			Timeframe:    timeframe,
			Milestones:   weightMilestones,
		}
	case metabolism.GoalGain:
		return ProgressGoals{
			WeightTarget: "8-12 lbs",
			BMITarget:    util.RoundTo(math.Min(bmi+2, 24), 1),
			Timeframe:    timeframe,
			Milestones:   weightMilestones,
		}
	default:
		return ProgressGoals{
			WeightTarget: "Maintain current weight",
			BMITarget:    util.RoundTo(bmi, 1),
			Timeframe:    timeframe,
			Milestones:   []string{"Focus on fitness improvements", "Build healthy habits", "Maintain consistency"},
		}
	}
}

func concat[T any](parts ...[]T) []T {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]T, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
