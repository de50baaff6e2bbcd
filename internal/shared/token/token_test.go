package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/shared/config"
)

var testCfg = config.JWTConfig{Secret: "test-secret", JWTExpiresIn: time.Hour, Issuer: "eventhub"}

func TestIssueAndParse(t *testing.T) {
	signed, err := Issue(testCfg, 3, "admin@example.com", "admin", time.Now())
	require.NoError(t, err)

	claims, err := Parse(testCfg, signed)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "3", claims.Subject)
}

func TestParseRejects(t *testing.T) {
	expired, err := Issue(testCfg, 1, "john@example.com", "user", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	other := testCfg
	other.Secret = "other"
	foreign, err := Issue(other, 1, "john@example.com", "user", time.Now())
	require.NoError(t, err)

	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 1,
		Type:   "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testCfg.Secret))
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"expired":      expired,
		"wrong secret": foreign,
		"wrong type":   refresh,
		"garbage":      "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(testCfg, tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
