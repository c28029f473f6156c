package stream

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateToken(t *testing.T) {
	svc := NewTokenService("api-secret")
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	signed, err := svc.CreateToken("user-123", issuedAt)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		require.IsType(t, &jwt.SigningMethodHMAC{}, token.Method)
		return []byte("api-secret"), nil
	}, jwt.WithoutClaimsValidation())
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.EqualValues(t, issuedAt.Unix(), claims["iat"])
	assert.EqualValues(t, issuedAt.Add(TokenTTL).Unix(), claims["exp"])
}

func TestCreateTokenRejectsWrongSecret(t *testing.T) {
	svc := NewTokenService("api-secret")

	signed, err := svc.CreateToken("user-123", time.Now())
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}
