package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yanqian/desi-diet/internal/domain/metabolism"
	"github.com/yanqian/desi-diet/internal/domain/state"
	apperrors "github.com/yanqian/desi-diet/pkg/errors"
)

// Accepted input ranges.
const (
	MinAge, MaxAge       = 1, 120
	MinWeight, MaxWeight = 30.0, 200.0
	MinHeight, MaxHeight = 100.0, 250.0
	MaxNameLength        = 50
)

// Overview is what the profile page renders.
type Overview struct {
	Profile  *UserProfile `json:"profile"`
	Complete bool         `json:"complete"`
	BMI      *Assessment  `json:"bmi,omitempty"`
}

// Service manages per-user profiles.
type Service interface {
	Get(ctx context.Context, userID int64) (UserProfile, bool, error)
	Overview(ctx context.Context, userID int64) (Overview, error)
	Update(ctx context.Context, userID int64, p UserProfile) (Overview, error)
	CalorieTarget(ctx context.Context, userID int64) (int, bool, error)
}

type service struct {
	store  state.Store
	logger *slog.Logger
}

const maxSaveAttempts = 3

// NewService constructs a Service instance.
func NewService(store state.Store, logger *slog.Logger) Service {
	return &service{
		store:  store,
		logger: logger.With("component", "profile.service"),
	}
}

func (s *service) Get(ctx context.Context, userID int64) (UserProfile, bool, error) {
	p, _, found, err := s.load(ctx, userID)
	return p, found, err
}

func (s *service) Overview(ctx context.Context, userID int64) (Overview, error) {
	p, found, err := s.Get(ctx, userID)
	if err != nil {
		return Overview{}, err
	}
	if !found {
		return Overview{}, nil
	}
	return overviewOf(p), nil
}

func (s *service) CalorieTarget(ctx context.Context, userID int64) (int, bool, error) {
	p, found, err := s.Get(ctx, userID)
	if err != nil || !found {
		return 0, false, err
	}
	return p.CalorieTarget, true, nil
}

// Update validates p, derives its calorie target and replaces the stored profile.
func (s *service) Update(ctx context.Context, userID int64, p UserProfile) (Overview, error) {
	normalized, err := normalize(p)
	if err != nil {
		return Overview{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	normalized.CalorieTarget = metabolism.SimpleCalorieTarget(normalized.Weight, normalized.Goal)

	payload, err := json.Marshal(normalized)
	if err != nil {
		return Overview{}, apperrors.Wrap(apperrors.CodeStorage, "failed to encode profile", err)
	}
	key := state.UserKey(state.ProfileKey, userID)
	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		_, version, _, err := s.load(ctx, userID)
		if err != nil {
			return Overview{}, err
		}
		_, err = s.store.Save(ctx, key, payload, version)
		if err == nil {
			s.logger.Info("profile saved", "userId", userID, "goal", normalized.Goal, "calorieTarget", normalized.CalorieTarget)
			return overviewOf(normalized), nil
		}
		if !errors.Is(err, state.ErrVersionConflict) {
			return Overview{}, apperrors.Wrap(apperrors.CodeStorage, "failed to save profile", err)
		}
	}
	return Overview{}, apperrors.Wrap(apperrors.CodeConflict, "profile was changed elsewhere, please retry", state.ErrVersionConflict)
}

func (s *service) load(ctx context.Context, userID int64) (UserProfile, int64, bool, error) {
	p, version, found, err := state.LoadJSON[UserProfile](ctx, s.store, state.UserKey(state.ProfileKey, userID), s.logger)
	if err != nil {
		return UserProfile{}, 0, false, apperrors.Wrap(apperrors.CodeStorage, "failed to load profile", err)
	}
	return p, version, found, nil
}

func overviewOf(p UserProfile) Overview {
	out := Overview{Profile: &p, Complete: IsComplete(p)}
	if assessment, ok := ClassifyBMI(p.Height, p.Weight); ok {
		out.BMI = &assessment
	}
	return out
}

func normalize(p UserProfile) (UserProfile, error) {
	p.Name = strings.TrimSpace(p.Name)
	if len([]rune(p.Name)) > MaxNameLength {
		return p, fmt.Errorf("name cannot exceed %d characters", MaxNameLength)
	}
	if p.Age < MinAge || p.Age > MaxAge {
		return p, fmt.Errorf("age must be between %d and %d", MinAge, MaxAge)
	}
	if p.Weight < MinWeight || p.Weight > MaxWeight {
		return p, fmt.Errorf("weight must be between %.0f and %.0f kg", MinWeight, MaxWeight)
	}
	if p.Height < MinHeight || p.Height > MaxHeight {
		return p, fmt.Errorf("height must be between %.0f and %.0f cm", MinHeight, MaxHeight)
	}
	gender, ok := metabolism.ParseGender(string(p.Gender))
	if !ok {
		return p, fmt.Errorf("gender must be one of male, female, other")
	}
	goal, ok := metabolism.ParseGoal(string(p.Goal))
	if !ok {
		return p, fmt.Errorf("goal must be one of lose, maintain, gain")
	}
	p.Gender = gender
	p.Goal = goal
	return p, nil
}
