package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Dayasagar88/Chai-or-Nodejs/internal/apperror"
	"github.com/Dayasagar88/Chai-or-Nodejs/internal/user/domain"
	"github.com/Dayasagar88/Chai-or-Nodejs/internal/user/dto"
)

type UserService struct {
	repo   domain.UserRepository
	tokens TokenGenerator
	hasher PasswordHasher
	log    zerolog.Logger
}

func NewUserService(repo domain.UserRepository, tokens TokenGenerator, hasher PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
		log:    log,
	}
}

// Register creates a credential record. Username is lower-cased before the
// conflict check and storage so uniqueness is case-insensitive.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.UserOutput, *apperror.Error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.TrimSpace(input.Email)
	fullName := strings.TrimSpace(input.FullName)

	if username == "" || email == "" || fullName == "" || strings.TrimSpace(input.Password) == "" {
		return nil, apperror.InvalidInput("all fields are required")
	}
	if input.AvatarURL == "" {
		return nil, apperror.MissingAvatar("avatar image required")
	}

	existing, err := s.repo.GetByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, apperror.Internal("failed to check existing user", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("user already exists with email or username")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:            uuid.NewString(),
		Username:      username,
		Email:         email,
		FullName:      fullName,
		PasswordHash:  hash,
		AvatarURL:     input.AvatarURL,
		CoverImageURL: input.CoverImageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperror.Internal("failed to create user", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("username", username).Msg("user registered")

	out := dto.NewUserOutput(user)

	return &out, nil
}

// Login verifies credentials and opens a session. The new refresh token is
// persisted before the token pair is returned; a refresh arriving right after
// login always sees the stored value.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginOutput, *apperror.Error) {
	email := strings.TrimSpace(input.Email)
	username := strings.ToLower(strings.TrimSpace(input.Username))

	if email == "" && username == "" {
		return nil, apperror.InvalidInput("email or username is required")
	}
	if input.Password == "" {
		return nil, apperror.InvalidInput("password is required")
	}

	user, err := s.repo.GetByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, apperror.Internal("failed to look up user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user does not exist")
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, apperror.InvalidCredentials("invalid user credentials")
	}

	pair, appErr := s.issuePair(user.ID)
	if appErr != nil {
		return nil, appErr
	}

	if err := s.repo.SetRefreshToken(ctx, user.ID, &pair.RefreshToken); err != nil {
		return nil, apperror.Internal("failed to persist refresh token", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")

	return &dto.LoginOutput{
		User:         dto.NewUserOutput(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout clears the stored refresh token. Clearing an already-empty slot is
// fine; only an unknown user id fails.
func (s *UserService) Logout(ctx context.Context, userID string) *apperror.Error {
	if err := s.repo.SetRefreshToken(ctx, userID, nil); err != nil {
		if errors.Is(err, domain.ErrUserMissing) {
			return apperror.NotFound("user does not exist")
		}
		return apperror.Internal("failed to clear refresh token", err)
	}

	s.log.Info().Str("user_id", userID).Msg("user logged out")

	return nil
}

// Refresh exchanges a valid refresh token for a new pair and rotates the
// stored token in one conditional update. A token that was already rotated or
// revoked loses the race and is rejected, so each refresh token is usable at
// most once.
func (s *UserService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.TokenResponse, *apperror.Error) {
	presented := input.RefreshToken
	if presented == "" {
		return nil, apperror.Unauthorized("unauthorized request")
	}

	claims, err := s.tokens.Verify(presented, RefreshToken)
	if err != nil {
		// Which check failed matters for diagnostics only; the client response
		// is uniform.
		s.log.Debug().Err(err).Msg("refresh token verification failed")
		return nil, apperror.Unauthorized("refresh token is expired or invalid")
	}

	user, lookupErr := s.repo.GetByID(ctx, claims.UserID)
	if lookupErr != nil {
		return nil, apperror.Internal("failed to look up user", lookupErr)
	}
	if user == nil {
		return nil, apperror.Unauthorized("refresh token is expired or invalid")
	}

	pair, appErr := s.issuePair(user.ID)
	if appErr != nil {
		return nil, appErr
	}

	rotated, rotateErr := s.repo.RotateRefreshToken(ctx, user.ID, presented, pair.RefreshToken)
	if rotateErr != nil {
		return nil, apperror.Internal("failed to rotate refresh token", rotateErr)
	}
	if !rotated {
		s.log.Warn().Str("user_id", user.ID).Msg("refresh token mismatch, possible reuse")
		return nil, apperror.Unauthorized("refresh token is expired or invalid")
	}

	return pair, nil
}

// ChangePassword swaps the stored hash after verifying the old password. The
// refresh token is left alone, so existing sessions survive.
func (s *UserService) ChangePassword(ctx context.Context, userID string, input dto.ChangePasswordInput) *apperror.Error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return apperror.Internal("failed to look up user", err)
	}
	if user == nil {
		return apperror.NotFound("user does not exist")
	}

	if !s.hasher.Verify(input.OldPassword, user.PasswordHash) {
		return apperror.InvalidCredentials("old password is incorrect")
	}

	hash, hashErr := s.hasher.Hash(input.NewPassword)
	if hashErr != nil {
		return apperror.InvalidInput("new password must not be empty")
	}

	if err := s.repo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return apperror.Internal("failed to update password", err)
	}

	s.log.Info().Str("user_id", userID).Msg("password changed")

	return nil
}

// GetCurrentUser returns the sanitized record for an authenticated user.
func (s *UserService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserOutput, *apperror.Error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("failed to look up user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user does not exist")
	}

	out := dto.NewUserOutput(user)

	return &out, nil
}

// UpdateAccount updates fullname and/or email on the caller's own record.
func (s *UserService) UpdateAccount(ctx context.Context, userID string, input dto.UpdateAccountInput) (*dto.UserOutput, *apperror.Error) {
	fullName := strings.TrimSpace(input.FullName)
	email := strings.TrimSpace(input.Email)
	if fullName == "" && email == "" {
		return nil, apperror.InvalidInput("at least one field is required")
	}

	fields := domain.ProfileFields{}
	if fullName != "" {
		fields.FullName = &fullName
	}
	if email != "" {
		fields.Email = &email
	}

	return s.updateProfile(ctx, userID, fields)
}

// UpdateAvatar stores a new avatar ref already produced by the uploader.
func (s *UserService) UpdateAvatar(ctx context.Context, userID, avatarURL string) (*dto.UserOutput, *apperror.Error) {
	if avatarURL == "" {
		return nil, apperror.MissingAvatar("avatar image required")
	}

	return s.updateProfile(ctx, userID, domain.ProfileFields{AvatarURL: &avatarURL})
}

// UpdateCoverImage stores a new cover image ref.
func (s *UserService) UpdateCoverImage(ctx context.Context, userID, coverURL string) (*dto.UserOutput, *apperror.Error) {
	if coverURL == "" {
		return nil, apperror.InvalidInput("cover image required")
	}

	return s.updateProfile(ctx, userID, domain.ProfileFields{CoverImageURL: &coverURL})
}

func (s *UserService) updateProfile(ctx context.Context, userID string, fields domain.ProfileFields) (*dto.UserOutput, *apperror.Error) {
	user, err := s.repo.UpdateProfileFields(ctx, userID, fields)
	if err != nil {
		if errors.Is(err, domain.ErrUserMissing) {
			return nil, apperror.NotFound("user does not exist")
		}
		return nil, apperror.Internal("failed to update profile", err)
	}

	out := dto.NewUserOutput(user)

	return &out, nil
}

func (s *UserService) issuePair(userID string) (*dto.TokenResponse, *apperror.Error) {
	accessToken, err := s.tokens.Issue(userID, AccessToken)
	if err != nil {
		return nil, apperror.Internal("failed to generate access token", err)
	}

	refreshToken, err := s.tokens.Issue(userID, RefreshToken)
	if err != nil {
		return nil, apperror.Internal("failed to generate refresh token", err)
	}

	return &dto.TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
