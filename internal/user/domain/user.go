package domain

import "time"

// User is the credential record persisted by the store. RefreshToken holds the
// single currently-active refresh token for the user, or nil when no session
// exists.
type User struct {
	ID            string
	Username      string
	Email         string
	FullName      string
	PasswordHash  string
	AvatarURL     string
	CoverImageURL string
	RefreshToken  *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProfileFields is a partial update of the non-credential columns. Nil fields
// are left untouched.
type ProfileFields struct {
	FullName      *string
	Email         *string
	AvatarURL     *string
	CoverImageURL *string
}
