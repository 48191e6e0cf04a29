package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/Dayasagar88/Chai-or-Nodejs/internal/user/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind selects which secret and expiry a token is issued or verified
// against.
type TokenKind int

const (
	AccessToken TokenKind = iota
	RefreshToken
)

// Verification failures. The refresh flow logs which one occurred but clients
// only ever see a uniform unauthorized response.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrBadSignature   = errors.New("token signature invalid")
)

type TokenGenerator interface {
	Issue(userID string, kind TokenKind) (string, error)
	Verify(tokenString string, kind TokenKind) (*JWTCustomClaims, error)
	Expiry(kind TokenKind) time.Duration
}

type TokenService struct {
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

func NewTokenService(accessSecret, refreshSecret string, accessMinutes, refreshMinutes int) *TokenService {
	return &TokenService{
		AccessTokenSecret:  accessSecret,
		RefreshTokenSecret: refreshSecret,
		AccessTokenExpiry:  time.Duration(accessMinutes) * time.Minute,
		RefreshTokenExpiry: time.Duration(refreshMinutes) * time.Minute,
	}
}

func (ts *TokenService) secret(kind TokenKind) string {
	if kind == RefreshToken {
		return ts.RefreshTokenSecret
	}
	return ts.AccessTokenSecret
}

func (ts *TokenService) Expiry(kind TokenKind) time.Duration {
	if kind == RefreshToken {
		return ts.RefreshTokenExpiry
	}
	return ts.AccessTokenExpiry
}

// Issue signs a claim set {user_id, iat, exp} with the kind's own secret.
// Access and refresh tokens never share a secret, so compromise of one type
// cannot forge the other.
func (ts *TokenService) Issue(userID string, kind TokenKind) (string, error) {
	now := time.Now()
	claims := JWTCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti makes every issued token unique even within the same
			// second, so a rotated refresh token never equals its
			// predecessor.
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.Expiry(kind))),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.secret(kind)))
}

// Verify parses and validates tokenString against the kind's secret and
// returns its claims. Failures are typed so the caller can log expired vs
// tampered distinctly.
func (ts *TokenService) Verify(tokenString string, kind TokenKind) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.secret(kind)), nil
	})

	switch {
	case err == nil && token.Valid:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, ErrTokenMalformed
	default:
		return nil, ErrBadSignature
	}
}
