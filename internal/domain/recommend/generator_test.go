package recommend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateWorkout_BeginnerCardioScenario(t *testing.T) {
	w := GenerateWorkout("lose", LevelBeginner, 15, FocusCardio)

	// floor(15/5) = 3, clipped to the two beginner cardio moves.
	require.Len(t, w.Exercises, 2)
	for _, ex := range w.Exercises {
		require.Equal(t, LevelBeginner, ex.Difficulty)
	}
	require.Equal(t, "High Knees", w.Exercises[0].Name)
	require.Equal(t, "AI-Generated cardio Workout", w.Title)
	require.Equal(t, "15 minutes", w.Duration)
	require.Equal(t, "Focus on learning proper form", w.Progression.Week1)
	require.Equal(t, []string{
		"Warm up for 5 minutes before starting",
		"Stay hydrated throughout the workout",
		"Listen to your body and rest when needed",
		"Focus on maintaining heart rate in fat-burning zone",
		"Combine cardio with strength training",
		"Start slowly and focus on form",
		"Don't skip rest days",
	}, w.Tips)
}

func TestGenerateWorkout_SelectionSizes(t *testing.T) {
	require.Len(t, GenerateWorkout("gain", LevelAdvanced, 15, FocusCardio).Exercises, 3)
	require.Len(t, GenerateWorkout("gain", LevelAdvanced, 2, FocusCardio).Exercises, 1)
	require.Len(t, GenerateWorkout("gain", LevelAdvanced, 0, FocusStrength).Exercises, 1)
	require.Len(t, GenerateWorkout("gain", LevelAdvanced, 16, FocusStrength).Exercises, 2)
	require.Len(t, GenerateWorkout("gain", LevelAdvanced, 9, FocusFlexibility).Exercises, 3)
	require.Len(t, GenerateWorkout("gain", LevelAdvanced, 120, FocusFlexibility).Exercises, 4)
}

func TestGenerateWorkout_MixedSlice(t *testing.T) {
	w := GenerateWorkout("maintain", LevelIntermediate, 30, FocusMixed)
	names := make([]string, 0, len(w.Exercises))
	for _, ex := range w.Exercises {
		names = append(names, ex.Name)
	}
	require.Equal(t, []string{
		"High Knees", "Jumping Jacks",
		"Push-ups", "Squats", "Planks",
		"Child's Pose", "Downward Dog",
	}, names)

	unknown := GenerateWorkout("maintain", LevelIntermediate, 30, "yoga")
	require.Equal(t, w.Exercises, unknown.Exercises)
}

func TestGenerateWorkout_LevelFilter(t *testing.T) {
	intermediate := GenerateWorkout("maintain", LevelIntermediate, 60, FocusCardio)
	for _, ex := range intermediate.Exercises {
		require.NotEqual(t, LevelAdvanced, ex.Difficulty)
	}
	require.Len(t, intermediate.Exercises, 3)

	advanced := GenerateWorkout("maintain", LevelAdvanced, 60, FocusCardio)
	require.Len(t, advanced.Exercises, 4)

	unknown := GenerateWorkout("maintain", "elite", 60, FocusCardio)
	require.Equal(t, advanced.Exercises, unknown.Exercises)
	require.Equal(t, progressions[LevelBeginner], unknown.Progression)
}

func TestGenerateWorkout_Deterministic(t *testing.T) {
	a, err := json.Marshal(GenerateWorkout("gain", LevelAdvanced, 45, FocusStrength))
	require.NoError(t, err)
	b, err := json.Marshal(GenerateWorkout("gain", LevelAdvanced, 45, FocusStrength))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestNormalizeWorkoutRequest_Defaults(t *testing.T) {
	goal, level, duration, focus := normalizeWorkoutRequest(WorkoutRequest{})
	require.Equal(t, "maintain", goal)
	require.Equal(t, LevelIntermediate, level)
	require.Equal(t, 30, duration)
	require.Equal(t, FocusMixed, focus)

	zero := 0
	_, _, duration, _ = normalizeWorkoutRequest(WorkoutRequest{Duration: &zero, Focus: " Cardio "})
	require.Equal(t, 0, duration)
}
