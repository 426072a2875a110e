package subscriptionrepo

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/desi-diet/internal/domain/subscription"
)

// MemoryRepository keeps subscriptions in memory for tests/dev.
type MemoryRepository struct {
	mu   sync.RWMutex
	subs map[int64]subscription.Subscription
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{subs: make(map[int64]subscription.Subscription)}
}

// Get returns the user's subscription.
func (r *MemoryRepository) Get(_ context.Context, userID int64) (subscription.Subscription, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.subs[userID]
	return sub, ok, nil
}

// Upsert replaces the user's subscription.
func (r *MemoryRepository) Upsert(_ context.Context, sub subscription.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[sub.UserID] = sub
	return nil
}

// Delete removes the user's subscription if any.
func (r *MemoryRepository) Delete(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, userID)
	return nil
}

// DeleteInactive removes cancelled and expired subscriptions.
func (r *MemoryRepository) DeleteInactive(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, sub := range r.subs {
		if !sub.ActiveAt(now) {
			delete(r.subs, id)
			removed++
		}
	}
	return removed, nil
}

var _ subscription.Repository = (*MemoryRepository)(nil)
