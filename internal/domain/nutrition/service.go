package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yanqian/desi-diet/internal/domain/catalog"
	"github.com/yanqian/desi-diet/internal/domain/state"
	apperrors "github.com/yanqian/desi-diet/pkg/errors"
)

// Config tunes the meal service.
type Config struct {
	DefaultTarget int
	MaxAttempts   int
}

// FoodLookup resolves catalog ids.
type FoodLookup interface {
	Get(id string) (catalog.FoodItem, bool)
}

// TargetSource supplies a user's daily calorie target, found=false when the
// user has none yet.
type TargetSource interface {
	CalorieTarget(ctx context.Context, userID int64) (int, bool, error)
}

// View is a user's plan together with its derived totals.
type View struct {
	Meals  MealPlan `json:"meals"`
	Totals Totals   `json:"totals"`
}

// Service exposes per-user meal tracking.
type Service interface {
	Plan(ctx context.Context, userID int64) (View, error)
	AddToMeal(ctx context.Context, userID int64, slot, foodID string, quantity int) (View, error)
	RemoveFromMeal(ctx context.Context, userID int64, slot, foodID string) (View, error)
	UpdateQuantity(ctx context.Context, userID int64, slot, foodID string, quantity int) (View, error)
	ClearMeal(ctx context.Context, userID int64, slot string) (View, error)
	ClearAllMeals(ctx context.Context, userID int64) (View, error)
}

type service struct {
	cfg     Config
	store   state.Store
	foods   FoodLookup
	targets TargetSource
	logger  *slog.Logger
}

// NewService constructs a Service instance.
func NewService(cfg Config, store state.Store, foods FoodLookup, targets TargetSource, logger *slog.Logger) Service {
	if cfg.DefaultTarget <= 0 {
		cfg.DefaultTarget = DefaultTarget
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	return &service{
		cfg:     cfg,
		store:   store,
		foods:   foods,
		targets: targets,
		logger:  logger.With("component", "nutrition.service"),
	}
}

func (s *service) Plan(ctx context.Context, userID int64) (View, error) {
	plan, _, err := s.load(ctx, userID)
	if err != nil {
		return View{}, err
	}
	return s.view(ctx, userID, plan)
}

func (s *service) AddToMeal(ctx context.Context, userID int64, slot, foodID string, quantity int) (View, error) {
	mealSlot, err := parseSlot(slot)
	if err != nil {
		return View{}, err
	}
	if quantity < 1 {
		return View{}, apperrors.Wrap(apperrors.CodeInvalidInput, "quantity must be at least 1", nil)
	}
	food, ok := s.foods.Get(foodID)
	if !ok {
		return View{}, apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("food %q not found", foodID), nil)
	}
	return s.mutate(ctx, userID, func(p *MealPlan) {
		p.Add(mealSlot, food, quantity)
	})
}

func (s *service) RemoveFromMeal(ctx context.Context, userID int64, slot, foodID string) (View, error) {
	mealSlot, err := parseSlot(slot)
	if err != nil {
		return View{}, err
	}
	return s.mutate(ctx, userID, func(p *MealPlan) {
		p.Remove(mealSlot, foodID)
	})
}

func (s *service) UpdateQuantity(ctx context.Context, userID int64, slot, foodID string, quantity int) (View, error) {
	mealSlot, err := parseSlot(slot)
	if err != nil {
		return View{}, err
	}
	return s.mutate(ctx, userID, func(p *MealPlan) {
		p.UpdateQuantity(mealSlot, foodID, quantity)
	})
}

func (s *service) ClearMeal(ctx context.Context, userID int64, slot string) (View, error) {
	mealSlot, err := parseSlot(slot)
	if err != nil {
		return View{}, err
	}
	return s.mutate(ctx, userID, func(p *MealPlan) {
		p.Clear(mealSlot)
	})
}

func (s *service) ClearAllMeals(ctx context.Context, userID int64) (View, error) {
	return s.mutate(ctx, userID, func(p *MealPlan) {
		p.ClearAll()
	})
}

// mutate applies fn to the freshly loaded plan and saves it against the
// version it was read at, reloading on conflict.
func (s *service) mutate(ctx context.Context, userID int64, fn func(*MealPlan)) (View, error) {
	key := state.UserKey(state.MealsKey, userID)
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		plan, version, err := s.load(ctx, userID)
		if err != nil {
			return View{}, err
		}
		fn(&plan)
		payload, err := json.Marshal(plan)
		if err != nil {
			return View{}, apperrors.Wrap(apperrors.CodeStorage, "failed to encode meals", err)
		}
		_, err = s.store.Save(ctx, key, payload, version)
		if err == nil {
			return s.view(ctx, userID, plan)
		}
		if !errors.Is(err, state.ErrVersionConflict) {
			return View{}, apperrors.Wrap(apperrors.CodeStorage, "failed to save meals", err)
		}
		s.logger.Debug("meal plan changed concurrently, retrying", "userId", userID, "attempt", attempt)
	}
	s.logger.Warn("meal plan update gave up after conflicts", "userId", userID, "attempts", s.cfg.MaxAttempts)
	return View{}, apperrors.Wrap(apperrors.CodeConflict, "meals were changed elsewhere, please retry", state.ErrVersionConflict)
}

func (s *service) load(ctx context.Context, userID int64) (MealPlan, int64, error) {
	key := state.UserKey(state.MealsKey, userID)
	plan, version, found, err := state.LoadJSON[MealPlan](ctx, s.store, key, s.logger)
	if err != nil {
		return MealPlan{}, 0, apperrors.Wrap(apperrors.CodeStorage, "failed to load meals", err)
	}
	if !found {
		return NewMealPlan(), version, nil
	}
	plan.normalize()
	return plan, version, nil
}

func (s *service) view(ctx context.Context, userID int64, plan MealPlan) (View, error) {
	target := s.cfg.DefaultTarget
	if s.targets != nil {
		t, found, err := s.targets.CalorieTarget(ctx, userID)
		if err != nil {
			return View{}, err
		}
		// a stored profile without a usable target keeps the default
		if found && t > 0 {
			target = t
		}
	}
	return View{Meals: plan, Totals: plan.Totals(target)}, nil
}

func parseSlot(raw string) (MealSlot, error) {
	slot, err := ParseSlot(raw)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	return slot, nil
}
