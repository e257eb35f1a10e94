package service

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenGenerator(t *testing.T) {
	tests := []struct {
		name           string
		secret         string
		accessExpiry   time.Duration
		refreshExpiry  time.Duration
		expectedSecret string
	}{
		{
			name:           "standard initialization",
			secret:         "test-secret-key",
			accessExpiry:   1 * time.Hour,
			refreshExpiry:  7 * 24 * time.Hour,
			expectedSecret: "test-secret-key",
		},
		{
			name:           "short expiry times",
			secret:         "short-secret",
			accessExpiry:   1 * time.Minute,
			refreshExpiry:  10 * time.Minute,
			expectedSecret: "short-secret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := NewTokenGenerator(tt.secret, tt.accessExpiry, tt.refreshExpiry)

			assert.NotNil(t, tg)
			assert.Equal(t, tt.expectedSecret, tg.secret)
			assert.Equal(t, tt.accessExpiry, tg.accessTokenExpiry)
			assert.Equal(t, tt.refreshExpiry, tg.refreshTokenExpiry)
		})
	}
}

func TestTokenGenerator_GenerateTokens(t *testing.T) {
	secret := "b8a3c2267dc85f855dea9b46b452bf20"
	accessExpiry := 1 * time.Hour
	refreshExpiry := 7 * 24 * time.Hour

	tg := NewTokenGenerator(secret, accessExpiry, refreshExpiry)

	t.Run("success with standard authorID", func(t *testing.T) {
		authorID := 123
		accessToken, refreshToken, err := tg.GenerateTokens(authorID)
		require.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.NotEqual(t, accessToken, refreshToken)
	})

	t.Run("authorID zero", func(t *testing.T) {
		accessToken, refreshToken, err := tg.GenerateTokens(0)
		require.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)

		// Verify authorID 0 is in the token
		authorID, err := tg.ValidateAccessToken(accessToken)
		require.NoError(t, err)
		assert.Equal(t, 0, authorID)
	})

	t.Run("max int authorID", func(t *testing.T) {
		accessToken, refreshToken, err := tg.GenerateTokens(math.MaxInt32)
		require.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)

		authorID, err := tg.ValidateAccessToken(accessToken)
		require.NoError(t, err)
		assert.Equal(t, math.MaxInt32, authorID)
	})

	t.Run("token format validation", func(t *testing.T) {
		accessToken, refreshToken, err := tg.GenerateTokens(789)
		require.NoError(t, err)

		// JWT tokens should have 3 parts separated by dots
		accessParts := strings.Split(accessToken, ".")
		assert.Len(t, accessParts, 3)

		refreshParts := strings.Split(refreshToken, ".")
		assert.Len(t, refreshParts, 3)
	})
}

func TestTokenGenerator_ValidateAccessToken(t *testing.T) {
	secret := "b8a3c2267dc85f855dea9b46b452bf20"
	accessExpiry := 1 * time.Hour
	refreshExpiry := 7 * 24 * time.Hour

	tg := NewTokenGenerator(secret, accessExpiry, refreshExpiry)

	t.Run("valid token", func(t *testing.T) {
		authorID := 456
		accessToken, _, err := tg.GenerateTokens(authorID)
		require.NoError(t, err)

		validatedAuthorID, err := tg.ValidateAccessToken(accessToken)
		require.NoError(t, err)
		assert.Equal(t, authorID, validatedAuthorID)
	})

	t.Run("empty string token", func(t *testing.T) {
		_, err := tg.ValidateAccessToken("")
		assert.Error(t, err)
	})

	t.Run("invalid token format", func(t *testing.T) {
		_, err := tg.ValidateAccessToken("invalid-token")
		assert.Error(t, err)
	})

	t.Run("wrong signature method - non-HMAC", func(t *testing.T) {
		claims := jwt.MapClaims{
			"author_id": 123,
			"exp":       time.Now().Add(1 * time.Hour).Unix(),
			"iat":       time.Now().Unix(),
			"type":      "access",
		}
		token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
		tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = tg.ValidateAccessToken(tokenString)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected signing method")
	})

	t.Run("token without author_id claim", func(t *testing.T) {
		claims := jwt.MapClaims{
			"exp":  time.Now().Add(1 * time.Hour).Unix(),
			"iat":  time.Now().Unix(),
			"type": "access",
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, err := token.SignedString([]byte(secret))
		require.NoError(t, err)

		_, err = tg.ValidateAccessToken(tokenString)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "author_id not found")
	})

	t.Run("token with wrong type - refresh instead of access", func(t *testing.T) {
		claims := jwt.MapClaims{
			"author_id": 123,
			"exp":       time.Now().Add(1 * time.Hour).Unix(),
			"iat":       time.Now().Unix(),
			"type":      "refresh",
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, err := token.SignedString([]byte(secret))
		require.NoError(t, err)

		_, err = tg.ValidateAccessToken(tokenString)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not an access token")
	})

	t.Run("expired token", func(t *testing.T) {
		claims := jwt.MapClaims{
			"author_id": 123,
			"exp":       time.Now().Add(-1 * time.Hour).Unix(),
			"iat":       time.Now().Add(-2 * time.Hour).Unix(),
			"type":      "access",
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, err := token.SignedString([]byte(secret))
		require.NoError(t, err)

		_, err = tg.ValidateAccessToken(tokenString)
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		accessToken, _, err := tg.GenerateTokens(789)
		require.NoError(t, err)

		wrongTG := NewTokenGenerator("wrong-secret", accessExpiry, refreshExpiry)
		_, err = wrongTG.ValidateAccessToken(accessToken)
		assert.Error(t, err)
	})
}

func TestTokenGenerator_ValidateRefreshToken(t *testing.T) {
	secret := "b8a3c2267dc85f855dea9b46b452bf20"
	accessExpiry := 1 * time.Hour
	refreshExpiry := 7 * 24 * time.Hour

	tg := NewTokenGenerator(secret, accessExpiry, refreshExpiry)

	t.Run("valid refresh token", func(t *testing.T) {
		_, refreshToken, err := tg.GenerateTokens(789)
		require.NoError(t, err)

		err = tg.ValidateRefreshToken(refreshToken)
		assert.NoError(t, err)
	})

	t.Run("empty string token", func(t *testing.T) {
		err := tg.ValidateRefreshToken("")
		assert.Error(t, err)
	})

	t.Run("access token used as refresh token", func(t *testing.T) {
		accessToken, _, err := tg.GenerateTokens(789)
		require.NoError(t, err)

		err = tg.ValidateRefreshToken(accessToken)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not a refresh token")
	})

	t.Run("expired refresh token", func(t *testing.T) {
		claims := jwt.MapClaims{
			"exp":  time.Now().Add(-1 * time.Hour).Unix(),
			"iat":  time.Now().Add(-2 * time.Hour).Unix(),
			"type": "refresh",
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, err := token.SignedString([]byte(secret))
		require.NoError(t, err)

		err = tg.ValidateRefreshToken(tokenString)
		assert.Error(t, err)
	})
}

func TestTokenGenerator_TokenClaims(t *testing.T) {
	secret := "b8a3c2267dc85f855dea9b46b452bf20"
	accessExpiry := 1 * time.Hour
	refreshExpiry := 7 * 24 * time.Hour

	tg := NewTokenGenerator(secret, accessExpiry, refreshExpiry)

	t.Run("refresh token has no author_id", func(t *testing.T) {
		_, refreshToken, err := tg.GenerateTokens(456)
		require.NoError(t, err)

		token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (any, error) {
			return []byte(secret), nil
		})
		require.NoError(t, err)
		require.True(t, token.Valid)

		claims, ok := token.Claims.(jwt.MapClaims)
		require.True(t, ok)

		_, hasAuthorID := claims["author_id"]
		assert.False(t, hasAuthorID, "refresh token should not contain author_id")

		tokenType, ok := claims["type"].(string)
		require.True(t, ok)
		assert.Equal(t, "refresh", tokenType)
	})
}
