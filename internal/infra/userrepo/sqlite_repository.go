package userrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yanqian/desi-diet/internal/domain/auth"
)

// UserRow is the gorm model backing SQLiteRepository.
type UserRow struct {
	ID           int64  `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	Name         string `gorm:"not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

// TableName pins the table name.
func (UserRow) TableName() string { return "users" }

// SQLiteRepository persists users in an embedded database.
type SQLiteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository constructs the repository. UserRow must be migrated.
func NewSQLiteRepository(db *gorm.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a new user row.
func (r *SQLiteRepository) Create(ctx context.Context, email, name, passwordHash string) (auth.User, error) {
	db := r.db.WithContext(ctx)
	var count int64
	if err := db.Model(&UserRow{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return auth.User{}, err
	}
	if count > 0 {
		return auth.User{}, auth.ErrEmailExists
	}
	row := UserRow{Email: email, Name: name, PasswordHash: passwordHash, CreatedAt: time.Now().UTC()}
	if err := db.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return auth.User{}, auth.ErrEmailExists
		}
		return auth.User{}, err
	}
	return toUser(row), nil
}

// GetByEmail fetches a user by email.
func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (auth.User, bool, error) {
	return r.first(ctx, "email = ?", email)
}

// GetByID fetches by primary key.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (auth.User, bool, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *SQLiteRepository) first(ctx context.Context, query string, arg any) (auth.User, bool, error) {
	var row UserRow
	if err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.User{}, false, nil
		}
		return auth.User{}, false, err
	}
	return toUser(row), true, nil
}

func toUser(row UserRow) auth.User {
	return auth.User{
		ID:           row.ID,
		Email:        row.Email,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt.UTC(),
	}
}

var _ auth.Repository = (*SQLiteRepository)(nil)
