package subscriptionrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yanqian/desi-diet/internal/domain/subscription"
)

// SubscriptionRow is the gorm model backing SQLiteRepository.
type SubscriptionRow struct {
	UserID      int64      `gorm:"primaryKey;autoIncrement:false"`
	PublicID    string     `gorm:"column:public_id"`
	PlanID      string
	Tier        string
	AmountCents int
	StartedAt   time.Time
	ExpiresAt   time.Time `gorm:"index"`
	CancelledAt *time.Time
}

// TableName pins the table name.
func (SubscriptionRow) TableName() string { return "subscriptions" }

// SQLiteRepository implements subscription.Repository on an embedded database.
type SQLiteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository constructs the repository. SubscriptionRow must be migrated.
func NewSQLiteRepository(db *gorm.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Get fetches the user's subscription.
func (r *SQLiteRepository) Get(ctx context.Context, userID int64) (subscription.Subscription, bool, error) {
	var row SubscriptionRow
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return subscription.Subscription{}, false, nil
		}
		return subscription.Subscription{}, false, err
	}
	return subscription.Subscription{
		ID:          row.PublicID,
		UserID:      row.UserID,
		PlanID:      row.PlanID,
		Tier:        subscription.Tier(row.Tier),
		AmountCents: row.AmountCents,
		StartedAt:   row.StartedAt,
		ExpiresAt:   row.ExpiresAt,
		CancelledAt: row.CancelledAt,
	}, true, nil
}

// Upsert inserts or replaces the user's subscription.
func (r *SQLiteRepository) Upsert(ctx context.Context, sub subscription.Subscription) error {
	row := SubscriptionRow{
		UserID:      sub.UserID,
		PublicID:    sub.ID,
		PlanID:      sub.PlanID,
		Tier:        string(sub.Tier),
		AmountCents: sub.AmountCents,
		StartedAt:   sub.StartedAt,
		ExpiresAt:   sub.ExpiresAt,
		CancelledAt: sub.CancelledAt,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}

// Delete removes the user's subscription.
func (r *SQLiteRepository) Delete(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&SubscriptionRow{}).Error
}

// DeleteInactive removes cancelled and expired subscriptions.
func (r *SQLiteRepository) DeleteInactive(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("cancelled_at IS NOT NULL OR expires_at <= ?", now).
		Delete(&SubscriptionRow{})
	return result.RowsAffected, result.Error
}

var _ subscription.Repository = (*SQLiteRepository)(nil)
