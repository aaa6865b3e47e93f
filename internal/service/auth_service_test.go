package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradhunt/gradboard-backend/internal/config"
)

func testAuthService(expiry time.Duration) *AuthService {
	return NewAuthService(&config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  expiry,
		BcryptCost: 4, // MinCost, keeps tests fast
	})
}

func TestTokenRoundtrip(t *testing.T) {
	s := testAuthService(time.Hour)

	token, err := s.GenerateAdminToken(42, "admin@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.AdminID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenWrongSecret(t *testing.T) {
	s := testAuthService(time.Hour)
	token, err := s.GenerateAdminToken(1, "admin@example.com")
	require.NoError(t, err)

	other := NewAuthService(&config.Config{JWTSecret: "different-secret", JWTExpiry: time.Hour})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	s := testAuthService(-time.Minute)
	token, err := s.GenerateAdminToken(1, "admin@example.com")
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenTampered(t *testing.T) {
	s := testAuthService(time.Hour)
	token, err := s.GenerateAdminToken(1, "admin@example.com")
	require.NoError(t, err)

	_, err = s.ValidateToken(token[:len(token)-3] + "xxx")
	assert.Error(t, err)
}

func TestTokenMalformed(t *testing.T) {
	s := testAuthService(time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := s.ValidateToken(tok)
		assert.Error(t, err, "token %q should be rejected", tok)
	}
}

func TestTokenAlgNoneRejected(t *testing.T) {
	s := testAuthService(time.Hour)

	claims := Claims{AdminID: 1, Email: "admin@example.com"}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	s := testAuthService(time.Hour)

	hash, err := s.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.NoError(t, s.CheckPassword(hash, "hunter2hunter2"))
	assert.ErrorIs(t, s.CheckPassword(hash, "wrong-password"), ErrInvalidCredentials)
}
