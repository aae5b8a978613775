package auth_test

import (
	"testing"

	"github.com/Abenka/equity-api/internal/auth"
	"github.com/Abenka/equity-api/internal/user"
	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := auth.GenerateToken(42, user.RoleFounder)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := auth.ParseAndValidate(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, user.RoleFounder, claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := auth.GenerateToken(1, user.RoleAdmin)
	assert.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = auth.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := auth.ParseAndValidate("not.a.token")
	assert.Error(t, err)
}
