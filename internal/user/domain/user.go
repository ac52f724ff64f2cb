package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// User represents an account. Password is null for accounts created by an
// OAuth login; Provider/ProviderID are null for password accounts.
type User struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Email      *string        `json:"email,omitempty" gorm:"uniqueIndex:uq_users_email"`
	Nickname   string         `json:"nickname" gorm:"not null"`
	Password   *string        `json:"-"`
	Provider   *string        `json:"-" gorm:"uniqueIndex:uq_users_oauth"`
	ProviderID *string        `json:"-" gorm:"uniqueIndex:uq_users_oauth"`
	Image      string         `json:"image"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// HasPassword reports whether this account can log in with a password
func (u *User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByProvider(ctx context.Context, provider, providerID string) (*User, error)
	Save(ctx context.Context, user *User) error
}
