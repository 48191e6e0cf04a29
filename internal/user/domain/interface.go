package domain

import (
	"context"
	"errors"
)

// ErrUserMissing is returned by write methods when the target record does not
// exist.
var ErrUserMissing = errors.New("user not found")

//go:generate mockgen -destination=../../mocks/mock_repository.go -package=mocks github.com/Dayasagar88/Chai-or-Nodejs/internal/user/domain UserRepository

// UserRepository persists credential records. Lookup methods return (nil, nil)
// when no record matches so callers can distinguish absence from failure.
type UserRepository interface {
	GetByEmailOrUsername(ctx context.Context, email, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error

	// SetRefreshToken overwrites the stored refresh token unconditionally.
	// A nil token clears the session. Returns ErrUserMissing when id is unknown.
	SetRefreshToken(ctx context.Context, id string, token *string) error

	// RotateRefreshToken replaces the stored refresh token only if the current
	// value equals expected. Returns false when the stored value differed,
	// meaning the presented token was already rotated or revoked.
	RotateRefreshToken(ctx context.Context, id, expected, next string) (bool, error)

	UpdatePasswordHash(ctx context.Context, id, hash string) error
	UpdateProfileFields(ctx context.Context, id string, fields ProfileFields) (*User, error)
}
