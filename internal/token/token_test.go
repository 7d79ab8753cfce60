package token_test

import (
	"testing"
	"time"

	"quickmatch/backend/internal/token"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	appID   = "app-id"
	appCert = "app-cert"
)

func parse(t *testing.T, tokenString string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(tokenString, func(*jwt.Token) (any, error) {
		return []byte(appCert), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	return parsed.Claims.(jwt.MapClaims)
}

func TestRtcTokenClaims(t *testing.T) {
	issuer := token.NewIssuer(appID, appCert)

	before := time.Now()
	tokenString, err := issuer.RtcToken("room-1", "u1")
	require.NoError(t, err)

	claims := parse(t, tokenString)
	assert.Equal(t, appID, claims["app_id"])
	assert.Equal(t, "room-1", claims["channel"])
	assert.Equal(t, "u1", claims["account"])
	assert.Equal(t, token.RolePublisher, claims["role"])

	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	assert.WithinDuration(t, before.Add(token.TokenTTL), exp, 5*time.Second)
}

func TestRtmTokenClaims(t *testing.T) {
	issuer := token.NewIssuer(appID, appCert)

	tokenString, err := issuer.RtmToken("u1")
	require.NoError(t, err)

	claims := parse(t, tokenString)
	assert.Equal(t, appID, claims["app_id"])
	assert.Equal(t, "u1", claims["account"])
	assert.Equal(t, token.RoleUser, claims["role"])
	assert.NotContains(t, claims, "channel")
}

// TestRepeatedIssuanceBothValid: два токени з однаковими вхідними даними
// мають бути незалежно валідними.
func TestRepeatedIssuanceBothValid(t *testing.T) {
	issuer := token.NewIssuer(appID, appCert)

	first, err := issuer.RtcToken("room-1", "u1")
	require.NoError(t, err)
	second, err := issuer.RtcToken("room-1", "u1")
	require.NoError(t, err)

	firstClaims := parse(t, first)
	secondClaims := parse(t, second)
	assert.Equal(t, firstClaims["channel"], secondClaims["channel"])
	assert.Equal(t, firstClaims["account"], secondClaims["account"])
}

func TestMissingCredentials(t *testing.T) {
	tests := []struct {
		name    string
		appID   string
		appCert string
	}{
		{"no app id", "", appCert},
		{"no certificate", appID, ""},
		{"nothing configured", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issuer := token.NewIssuer(tt.appID, tt.appCert)

			_, err := issuer.RtcToken("room-1", "u1")
			assert.ErrorIs(t, err, token.ErrMissingCredentials)

			_, err = issuer.RtmToken("u1")
			assert.ErrorIs(t, err, token.ErrMissingCredentials)
		})
	}
}
