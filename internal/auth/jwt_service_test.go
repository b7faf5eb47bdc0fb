package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_GenerateAndValidatePair(t *testing.T) {
	svc := NewJWTService("test-secret", 5*time.Minute, 30*24*time.Hour)

	pair, err := svc.GeneratePair(7, "test@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	for _, token := range []string{pair.AccessToken, pair.RefreshToken} {
		claims, err := svc.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, "test@example.com", claims.Email)
	}
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, -time.Minute)

	pair, err := svc.GeneratePair(7, "test@example.com")
	assert.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", 5*time.Minute, time.Hour)
	verifier := NewJWTService("secret-b", 5*time.Minute, time.Hour)

	pair, err := issuer.GeneratePair(7, "test@example.com")
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", 5*time.Minute, time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
