package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService(t *testing.T) {
	ts := NewTokenService("access-secret-key", "refresh-secret-key", 15, 14400)

	assert.Equal(t, "access-secret-key", ts.AccessTokenSecret)
	assert.Equal(t, "refresh-secret-key", ts.RefreshTokenSecret)
	assert.Equal(t, 15*time.Minute, ts.AccessTokenExpiry)
	assert.Equal(t, 14400*time.Minute, ts.RefreshTokenExpiry)
	assert.Equal(t, ts.AccessTokenExpiry, ts.Expiry(AccessToken))
	assert.Equal(t, ts.RefreshTokenExpiry, ts.Expiry(RefreshToken))
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 15, 14400)

	for _, kind := range []TokenKind{AccessToken, RefreshToken} {
		token, err := ts.Issue("user-123", kind)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := ts.Verify(token, kind)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UserID)
		assert.NotEmpty(t, claims.ID)
	}
}

func TestTokenService_IssuedTokensAreUnique(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 15, 14400)

	first, err := ts.Issue("user-123", RefreshToken)
	require.NoError(t, err)
	second, err := ts.Issue("user-123", RefreshToken)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

// An access token must not verify as a refresh token: the secrets differ.
func TestTokenService_CrossKindRejected(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 15, 14400)

	accessToken, err := ts.Issue("user-123", AccessToken)
	require.NoError(t, err)

	claims, err := ts.Verify(accessToken, RefreshToken)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestTokenService_VerifyExpired(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 15, 14400)

	now := time.Now()
	claims := JWTCustomClaims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("refresh-secret"))
	require.NoError(t, err)

	_, err = ts.Verify(expired, RefreshToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_VerifyMalformed(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 15, 14400)

	_, err := ts.Verify("not-a-jwt", RefreshToken)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenService_VerifyTampered(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 15, 14400)

	token, err := ts.Issue("user-123", RefreshToken)
	require.NoError(t, err)

	forged := token[:len(token)-4] + "AAAA"
	_, err = ts.Verify(forged, RefreshToken)
	assert.ErrorIs(t, err, ErrBadSignature)
}

// Tokens signed with "none" or a non-HMAC alg must be rejected.
func TestTokenService_VerifyRejectsWrongAlg(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 15, 14400)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, JWTCustomClaims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ts.Verify(unsigned, AccessToken)
	assert.Error(t, err)
}
