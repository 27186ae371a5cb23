package auth

import (
	"testing"
	"time"

	"github.com/bizify/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 30 * time.Minute,
		Issuer:                "bizify-test",
	})
}

func TestGenerateAccessToken(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	tok, err := svc.GenerateAccessToken(userID, "ada@example.com")

	require.NoError(t, err)
	assert.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), tok.ExpiresAt, 5*time.Second)
	assert.Equal(t, 30*time.Minute, svc.AccessTokenExpiration())
}

func TestValidateAccessToken_Success(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()
	tok, err := svc.GenerateAccessToken(userID, "ada@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(tok.Token)

	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Subject)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	got, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
	assert.Equal(t, tok.ExpiresAt.Unix(), claims.GetExpiresAtTime().Unix())
}

func TestValidateAccessToken_Expired(t *testing.T) {
	svc := newTestJWTService()
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	tok, err := svc.GenerateAccessToken(uuid.New(), "ada@example.com")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateAccessToken(tok.Token)

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateAccessToken_Invalid(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewJWTService(config.JWTConfig{Secret: "another-secret-key-at-least-32-chars", AccessTokenExpiration: time.Minute, Issuer: "bizify-test"})
	tok, err := other.GenerateAccessToken(uuid.New(), "ada@example.com")
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_WrongIssuer(t *testing.T) {
	svc := newTestJWTService()
	other := NewJWTService(config.JWTConfig{Secret: "test-secret-key-at-least-32-chars", AccessTokenExpiration: time.Minute, Issuer: "someone-else"})
	tok, err := other.GenerateAccessToken(uuid.New(), "ada@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(tok.Token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_MissingClaims(t *testing.T) {
	svc := newTestJWTService()
	now := time.Now()
	sign := func(c *Claims) string {
		c.RegisteredClaims = jwt.RegisteredClaims{
			Issuer:    "bizify-test",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
		}
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("test-secret-key-at-least-32-chars"))
		require.NoError(t, err)
		return s
	}

	_, err := svc.ValidateAccessToken(sign(&Claims{UserID: uuid.NewString(), TokenType: "refresh"}))
	assert.ErrorIs(t, err, ErrInvalidTokenType)

	_, err = svc.ValidateAccessToken(sign(&Claims{TokenType: TokenTypeAccess}))
	assert.ErrorIs(t, err, ErrMissingUserID)
}
