package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTGenerateAndParse(t *testing.T) {
	m := NewJWTManager("this-is-a-test-secret-with-32-bytes!", time.Hour)

	token, exp, err := m.Generate("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestJWTParseRejectsWrongSecret(t *testing.T) {
	m1 := NewJWTManager("secret-one-secret-one-secret-one!", time.Hour)
	token, _, err := m1.Generate("user-123")
	require.NoError(t, err)

	m2 := NewJWTManager("secret-two-secret-two-secret-two!", time.Hour)
	_, err = m2.Parse(token)
	assert.Error(t, err)
}

func TestJWTParseRejectsExpired(t *testing.T) {
	m := NewJWTManager("this-is-a-test-secret-with-32-bytes!", -time.Minute)
	token, _, err := m.Generate("user-123")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestJWTParseRejectsGarbage(t *testing.T) {
	m := NewJWTManager("this-is-a-test-secret-with-32-bytes!", time.Hour)
	_, err := m.Parse("not-a-token")
	assert.Error(t, err)
}
