package subscription

import (
	"context"
	"strings"
	"time"
)

// Tier gates features. Higher tiers include everything below them.
type Tier string

const (
	TierBasic        Tier = "basic"
	TierPremium      Tier = "premium"
	TierProfessional Tier = "professional"
)

func (t Tier) rank() int {
	switch t {
	case TierPremium:
		return 1
	case TierProfessional:
		return 2
	default:
		return 0
	}
}

// Includes reports whether t grants at least required.
func (t Tier) Includes(required Tier) bool {
	return t.rank() >= required.rank()
}

// TierForAmount maps a charged monthly amount in cents onto a tier. It only
// applies to records whose plan is no longer in the catalog.
func TierForAmount(cents int) Tier {
	switch {
	case cents <= 999:
		return TierBasic
	case cents <= 1999:
		return TierPremium
	default:
		return TierProfessional
	}
}

// Plan is an entry of the fixed plan catalog.
type Plan struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	PriceCents  int      `json:"-"`
	Tier        Tier     `json:"tier"`
	Features    []string `json:"features"`
	Recommended bool     `json:"recommended,omitempty"`
}

var plans = []Plan{
	{
		ID:         "basic",
		Name:       "Basic Plan",
		Price:      0,
		PriceCents: 0,
		Tier:       TierBasic,
		Features:   []string{"Track daily meals", "Basic food library", "Calorie tracking"},
	},
	{
		ID:         "premium",
		Name:       "Premium Plan",
		Price:      9.99,
		PriceCents: 999,
		Tier:       TierPremium,
		Features: []string{
			"Everything in Basic Plan",
			"Personalized recipe suggestions",
			"Unlimited meal history",
			"Progress graphs and insights",
		},
		Recommended: true,
	},
	{
		ID:         "pro",
		Name:       "Professional Plan",
		Price:      19.99,
		PriceCents: 1999,
		Tier:       TierProfessional,
		Features: []string{
			"Everything in Premium Plan",
			"Nutritionist consultations",
			"Custom meal planning",
			"Priority support",
		},
	},
}

// Plans returns the plan catalog.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	for i, p := range plans {
		p.Features = append([]string(nil), p.Features...)
		out[i] = p
	}
	return out
}

// FindPlan looks a plan up by id; "professional" is accepted for "pro".
func FindPlan(id string) (Plan, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == string(TierProfessional) {
		id = "pro"
	}
	for _, p := range Plans() {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// Card is the dummy checkout's card input.
type Card struct {
	Name   string `json:"name"`
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVC    string `json:"cvc"`
}

// Valid accepts 16 digit numbers starting with 4. Spaces are ignored.
func (c Card) Valid() bool {
	number := strings.ReplaceAll(c.Number, " ", "")
	if len(number) != 16 || number[0] != '4' {
		return false
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Subscription is a user's paid plan.
type Subscription struct {
	ID          string     `json:"id"`
	UserID      int64      `json:"userId"`
	PlanID      string     `json:"planId"`
	Tier        Tier       `json:"tier"`
	AmountCents int        `json:"amountCents"`
	StartedAt   time.Time  `json:"startedAt"`
	ExpiresAt   time.Time  `json:"expiresAt"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
}

// ActiveAt reports whether the subscription grants its tier at now.
func (s Subscription) ActiveAt(now time.Time) bool {
	return s.CancelledAt == nil && now.Before(s.ExpiresAt)
}

// SubscribeRequest is the checkout payload.
type SubscribeRequest struct {
	PlanID string `json:"planId"`
	Card   Card   `json:"card"`
}

// Status is what clients poll to decide which features to show.
type Status struct {
	Subscribed      bool       `json:"subscribed"`
	Tier            Tier       `json:"tier"`
	PlanID          string     `json:"planId,omitempty"`
	SubscriptionEnd *time.Time `json:"subscriptionEnd,omitempty"`
}

// Repository persists at most one subscription per user.
type Repository interface {
	Get(ctx context.Context, userID int64) (Subscription, bool, error)
	Upsert(ctx context.Context, sub Subscription) error
	Delete(ctx context.Context, userID int64) error
	// DeleteInactive removes cancelled subscriptions and those expired at now.
	DeleteInactive(ctx context.Context, now time.Time) (int64, error)
}
