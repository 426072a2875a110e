package recommend

import (
	"fmt"
	"strings"
)

var exercisePools = struct {
	cardio, strength, flexibility []Exercise
}{
	cardio: []Exercise{
		{Name: "High Knees", Duration: "30s", Rest: "15s", Difficulty: LevelBeginner},
		{Name: "Jumping Jacks", Duration: "45s", Rest: "15s", Difficulty: LevelBeginner},
		{Name: "Burpees", Duration: "20s", Rest: "40s", Difficulty: LevelAdvanced},
		{Name: "Mountain Climbers", Duration: "30s", Rest: "30s", Difficulty: LevelIntermediate},
	},
	strength: []Exercise{
		{Name: "Push-ups", Reps: "8-12", Sets: 3, Difficulty: LevelBeginner},
		{Name: "Squats", Reps: "12-15", Sets: 3, Difficulty: LevelBeginner},
		{Name: "Planks", Duration: "30-60s", Sets: 3, Difficulty: LevelBeginner},
		{Name: "Lunges", Reps: "10 each leg", Sets: 3, Difficulty: LevelIntermediate},
	},
	flexibility: []Exercise{
		{Name: "Child's Pose", Duration: "30s", Difficulty: LevelBeginner},
		{Name: "Downward Dog", Duration: "30s", Difficulty: LevelBeginner},
		{Name: "Warrior II", Duration: "30s each side", Difficulty: LevelIntermediate},
		{Name: "Pigeon Pose", Duration: "45s each side", Difficulty: LevelIntermediate},
	},
}

var baseWorkoutTips = []string{
	"Warm up for 5 minutes before starting",
	"Stay hydrated throughout the workout",
	"Listen to your body and rest when needed",
}

var goalWorkoutTips = map[string][]string{
	"lose":     {"Focus on maintaining heart rate in fat-burning zone", "Combine cardio with strength training"},
	"gain":     {"Progressive overload is key", "Focus on compound movements", "Ensure adequate rest between sets"},
	"maintain": {"Consistency is more important than intensity", "Mix different types of exercises"},
}

var levelWorkoutTips = map[string][]string{
	LevelBeginner:     {"Start slowly and focus on form", "Don't skip rest days"},
	LevelIntermediate: {"Challenge yourself with variations", "Track your progress"},
	LevelAdvanced:     {"Push your limits safely", "Focus on advanced techniques"},
}

var progressions = map[string]Progression{
	LevelBeginner: {
		Week1: "Focus on learning proper form",
		Week2: "Increase duration by 5 minutes",
		Week3: "Add one more set to each exercise",
		Week4: "Increase intensity slightly",
	},
	LevelIntermediate: {
		Week1: "Increase weight or resistance",
		Week2: "Add complex movements",
		Week3: "Decrease rest time between sets",
		Week4: "Try advanced variations",
	},
	LevelAdvanced: {
		Week1: "Increase training frequency",
		Week2: "Add explosive movements",
		Week3: "Incorporate supersets",
		Week4: "Focus on weak points",
	},
}

// Defaults applied to empty workout request fields.
const (
	DefaultGoal     = "maintain"
	DefaultLevel    = LevelIntermediate
	DefaultDuration = 30
	DefaultFocus    = FocusMixed
)

// GenerateWorkout builds a session from already defaulted inputs. It is a pure
// function of its arguments.
func GenerateWorkout(goal, level string, duration int, focus string) Workout {
	return Workout{
		Title:       fmt.Sprintf("AI-Generated %s Workout", focus),
		Duration:    fmt.Sprintf("%d minutes", duration),
		Difficulty:  level,
		Goal:        goal,
		Exercises:   selectExercises(level, focus, duration),
		Tips:        workoutTips(goal, level),
		Progression: progressionFor(level),
	}
}

// allowedAt reports whether an exercise of difficulty suits level. Unknown
// levels allow everything.
func allowedAt(level, difficulty string) bool {
	switch level {
	case LevelBeginner:
		return difficulty == LevelBeginner
	case LevelIntermediate:
		return difficulty == LevelBeginner || difficulty == LevelIntermediate
	default:
		return true
	}
}

func filterByLevel(pool []Exercise, level string) []Exercise {
	out := make([]Exercise, 0, len(pool))
	for _, ex := range pool {
		if allowedAt(level, ex.Difficulty) {
			out = append(out, ex)
		}
	}
	return out
}

func selectExercises(level, focus string, duration int) []Exercise {
	cardio := filterByLevel(exercisePools.cardio, level)
	strength := filterByLevel(exercisePools.strength, level)
	flexibility := filterByLevel(exercisePools.flexibility, level)

	switch focus {
	case FocusCardio:
		return head(cardio, atLeastOne(duration/5))
	case FocusStrength:
		return head(strength, atLeastOne(duration/8))
	case FocusFlexibility:
		return head(flexibility, atLeastOne(duration/3))
	default:
		return concat(head(cardio, 2), head(strength, 3), head(flexibility, 2))
	}
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// head returns the first n items, or all of them when fewer exist.
func head(items []Exercise, n int) []Exercise {
	if n > len(items) {
		n = len(items)
	}
	out := make([]Exercise, n)
	copy(out, items[:n])
	return out
}

func workoutTips(goal, level string) []string {
	return concat(baseWorkoutTips, goalWorkoutTips[goal], levelWorkoutTips[level])
}

func progressionFor(level string) Progression {
	if p, ok := progressions[level]; ok {
		return p
	}
	return progressions[LevelBeginner]
}

// normalizeWorkoutRequest fills defaults and lowercases the enumerations.
func normalizeWorkoutRequest(req WorkoutRequest) (goal, level string, duration int, focus string) {
	goal = strings.ToLower(strings.TrimSpace(req.Goal))
	if goal == "" {
		goal = DefaultGoal
	}
	level = strings.ToLower(strings.TrimSpace(req.FitnessLevel))
	if level == "" {
		level = DefaultLevel
	}
	duration = DefaultDuration
	if req.Duration != nil {
		duration = *req.Duration
	}
	focus = strings.ToLower(strings.TrimSpace(req.Focus))
	if focus == "" {
		focus = DefaultFocus
	}
	return goal, level, duration, focus
}
