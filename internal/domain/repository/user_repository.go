package repository

import (
	"context"
	"time"

	"blog-backend/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// SetResetToken stores the hashed reset token and its expiry.
	SetResetToken(ctx context.Context, id, tokenHash string, expires time.Time) error
	// GetByResetToken resolves a user whose stored token hash matches and
	// whose expiry is still in the future. Returns ErrNotFound otherwise.
	GetByResetToken(ctx context.Context, tokenHash string) (*entity.User, error)
	// ResetPassword stores the new hash and clears both reset token fields.
	ResetPassword(ctx context.Context, id, passwordHash string) error
}
