package handlers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		Issuer:         "medsync-test",
		Secret:         []byte("test-secret-key-for-jwt"),
		AccessTokenTTL: 15 * time.Minute,
	}
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	cfg := testJWTConfig()

	token, expiresIn, err := GenerateAccessToken(cfg, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, int64(900), expiresIn)

	claims, err := ValidateAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, testIdentity, claims.Identity())
	assert.Equal(t, "user-a", claims.Subject)
}

func TestValidateAccessToken_Errors(t *testing.T) {
	cfg := testJWTConfig()

	sign := func(claims CustomClaims, method jwt.SigningMethod, key any) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}

	valid := jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "garbage",
			token: "not.a.token",
		},
		{
			name: "wrong secret",
			token: sign(CustomClaims{TenantID: "t", UserID: "u", RegisteredClaims: valid},
				jwt.SigningMethodHS256, []byte("other-secret")),
		},
		{
			name: "expired",
			token: sign(CustomClaims{TenantID: "t", UserID: "u", RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    cfg.Issuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			}}, jwt.SigningMethodHS256, cfg.Secret),
		},
		{
			name: "wrong issuer",
			token: sign(CustomClaims{TenantID: "t", UserID: "u", RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "someone-else",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}}, jwt.SigningMethodHS256, cfg.Secret),
		},
		{
			name:  "missing tenant",
			token: sign(CustomClaims{UserID: "u", RegisteredClaims: valid}, jwt.SigningMethodHS256, cfg.Secret),
		},
		{
			name:  "unsigned",
			token: sign(CustomClaims{TenantID: "t", UserID: "u", RegisteredClaims: valid}, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateAccessToken(cfg, tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestIdentity_Allows(t *testing.T) {
	assert.True(t, Identity{}.Allows("patient"))
	assert.True(t, testIdentity.Allows("encounter"))
	assert.False(t, testIdentity.Allows("medication"))
}
