package recommend

import (
	"context"
	"log/slog"

	"github.com/yanqian/desi-diet/internal/domain/metabolism"
	apperrors "github.com/yanqian/desi-diet/pkg/errors"
	"github.com/yanqian/desi-diet/pkg/util"
)

// Service produces deterministic health and workout recommendations.
type Service interface {
	HealthRecommendations(ctx context.Context, req HealthRequest) (HealthResult, error)
	GenerateWorkout(ctx context.Context, req WorkoutRequest) (Workout, error)
	Recipes(ctx context.Context, goal metabolism.Goal) []Recipe
}

type service struct {
	logger *slog.Logger
}

// NewService constructs a Service instance.
func NewService(logger *slog.Logger) Service {
	return &service{logger: logger.With("component", "recommend.service")}
}

func (s *service) HealthRecommendations(ctx context.Context, req HealthRequest) (HealthResult, error) {
	if req.Height <= 0 || req.Weight <= 0 {
		return HealthResult{}, apperrors.Wrap(apperrors.CodeInvalidInput, "height and weight must be positive", nil)
	}
	if req.Age < 0 {
		return HealthResult{}, apperrors.Wrap(apperrors.CodeInvalidInput, "age cannot be negative", nil)
	}
	bmi, _ := metabolism.BMI(req.Height, req.Weight)
	gender, _ := metabolism.ParseGender(string(req.Gender))
	goal, _ := metabolism.ParseGoal(string(req.Goal))
	result := HealthResult{
		BMI:           util.RoundTo(bmi, 1),
		Category:      bmiCategory(bmi),
		CalorieTarget: metabolism.DetailedCalorieTarget(req.Weight, req.Height, req.Age, gender, goal),
		WorkoutPlan:   workoutPlan(bmi, goal),
		Recipes:       RecipesFor(goal),
		HealthTips:    healthTips(bmi, goal),
		RiskFactors:   riskFactors(bmi, req.Age),
		ProgressGoals: progressGoals(goal, bmi),
	}
	s.logger.Debug("health recommendations generated", "category", result.Category, "goal", goal)
	return result, nil
}

func (s *service) GenerateWorkout(ctx context.Context, req WorkoutRequest) (Workout, error) {
	goal, level, duration, focus := normalizeWorkoutRequest(req)
	if duration < 0 {
		return Workout{}, apperrors.Wrap(apperrors.CodeInvalidInput, "duration cannot be negative", nil)
	}
	s.logger.Debug("generating workout", "goal", goal, "level", level, "duration", duration, "focus", focus)
	return GenerateWorkout(goal, level, duration, focus), nil
}

func (s *service) Recipes(_ context.Context, goal metabolism.Goal) []Recipe {
	return RecipesFor(goal)
}
