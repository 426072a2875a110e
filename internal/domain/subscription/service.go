package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/yanqian/desi-diet/pkg/errors"
	"github.com/yanqian/desi-diet/pkg/util"
)

// Config drives the dummy checkout.
type Config struct {
	Period time.Duration
}

// Service manages plan selection and feature gating.
type Service interface {
	Plans(ctx context.Context) []Plan
	Subscribe(ctx context.Context, userID int64, req SubscribeRequest) (Status, error)
	Status(ctx context.Context, userID int64) (Status, error)
	Cancel(ctx context.Context, userID int64) (Status, error)
	HasTier(ctx context.Context, userID int64, required Tier) (bool, error)
	IsSubscribed(ctx context.Context, userID int64) (bool, error)
	SweepExpired(ctx context.Context) (int64, error)
}

type service struct {
	cfg    Config
	repo   Repository
	now    util.Clock
	logger *slog.Logger
}

const declinedMessage = "Invalid card details. Use a 16-digit number starting with 4."

// NewService constructs a Service instance.
func NewService(cfg Config, repo Repository, now util.Clock, logger *slog.Logger) Service {
	if cfg.Period <= 0 {
		cfg.Period = 30 * 24 * time.Hour
	}
	if now == nil {
		now = util.NowUTC
	}
	return &service{
		cfg:    cfg,
		repo:   repo,
		now:    now,
		logger: logger.With("component", "subscription.service"),
	}
}

func (s *service) Plans(context.Context) []Plan {
	return Plans()
}

func (s *service) Subscribe(ctx context.Context, userID int64, req SubscribeRequest) (Status, error) {
	plan, ok := FindPlan(req.PlanID)
	if !ok {
		return Status{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown plan %q", req.PlanID), nil)
	}
	if plan.Tier == TierBasic {
		if err := s.repo.Delete(ctx, userID); err != nil {
			return Status{}, apperrors.Wrap(apperrors.CodeStorage, "failed to update subscription", err)
		}
		s.logger.Info("user moved to basic plan", "userId", userID)
		return basicStatus(), nil
	}
	if !req.Card.Valid() {
		s.logger.Info("payment declined", "userId", userID, "planId", plan.ID)
		return Status{}, apperrors.Wrap(apperrors.CodePaymentDeclined, declinedMessage, nil)
	}
	now := s.now()
	sub := Subscription{
		ID:          uuid.NewString(),
		UserID:      userID,
		PlanID:      plan.ID,
		Tier:        plan.Tier,
		AmountCents: plan.PriceCents,
		StartedAt:   now,
		ExpiresAt:   now.Add(s.cfg.Period),
	}
	if err := s.repo.Upsert(ctx, sub); err != nil {
		return Status{}, apperrors.Wrap(apperrors.CodeStorage, "failed to save subscription", err)
	}
	s.logger.Info("subscription started", "userId", userID, "planId", plan.ID, "expiresAt", sub.ExpiresAt)
	return statusOf(sub), nil
}

func (s *service) Status(ctx context.Context, userID int64) (Status, error) {
	sub, active, err := s.active(ctx, userID)
	if err != nil {
		return Status{}, err
	}
	if !active {
		return basicStatus(), nil
	}
	return statusOf(sub), nil
}

func (s *service) Cancel(ctx context.Context, userID int64) (Status, error) {
	sub, found, err := s.repo.Get(ctx, userID)
	if err != nil {
		return Status{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load subscription", err)
	}
	if !found || sub.CancelledAt != nil {
		return basicStatus(), nil
	}
	now := s.now()
	sub.CancelledAt = &now
	if err := s.repo.Upsert(ctx, sub); err != nil {
		return Status{}, apperrors.Wrap(apperrors.CodeStorage, "failed to cancel subscription", err)
	}
	s.logger.Info("subscription cancelled", "userId", userID, "planId", sub.PlanID)
	return basicStatus(), nil
}

func (s *service) HasTier(ctx context.Context, userID int64, required Tier) (bool, error) {
	if required == TierBasic {
		return true, nil
	}
	sub, active, err := s.active(ctx, userID)
	if err != nil || !active {
		return false, err
	}
	return tierOf(sub).Includes(required), nil
}

// IsSubscribed reports whether the user holds an active paid subscription.
func (s *service) IsSubscribed(ctx context.Context, userID int64) (bool, error) {
	_, active, err := s.active(ctx, userID)
	return active, err
}

// SweepExpired deletes subscriptions that are cancelled or past their expiry.
func (s *service) SweepExpired(ctx context.Context) (int64, error) {
	removed, err := s.repo.DeleteInactive(ctx, s.now())
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeStorage, "failed to sweep subscriptions", err)
	}
	if removed > 0 {
		s.logger.Info("inactive subscriptions removed", "count", removed)
	}
	return removed, nil
}

func (s *service) active(ctx context.Context, userID int64) (Subscription, bool, error) {
	sub, found, err := s.repo.Get(ctx, userID)
	if err != nil {
		return Subscription{}, false, apperrors.Wrap(apperrors.CodeStorage, "failed to load subscription", err)
	}
	if !found || !sub.ActiveAt(s.now()) {
		return Subscription{}, false, nil
	}
	return sub, true, nil
}

func tierOf(sub Subscription) Tier {
	if plan, ok := FindPlan(sub.PlanID); ok {
		return plan.Tier
	}
	return TierForAmount(sub.AmountCents)
}

func statusOf(sub Subscription) Status {
	end := sub.ExpiresAt
	return Status{
		Subscribed:      true,
		Tier:            tierOf(sub),
		PlanID:          sub.PlanID,
		SubscriptionEnd: &end,
	}
}

func basicStatus() Status {
	return Status{Subscribed: false, Tier: TierBasic}
}
