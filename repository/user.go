package repository

import (
	"context"
	"time"

	"github.com/taskdeck/backend/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// GetByResetToken resolves the user holding the token, provided the token
	// has not expired at the reference time.
	GetByResetToken(ctx context.Context, token string, reference time.Time) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	// SetResetToken stores the token/expiry pair on the user.
	SetResetToken(ctx context.Context, id, token string, expires time.Time) error
	// UpdatePassword replaces the password hash and clears any reset token.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
