package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMint(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	signed, err := Mint("secret", CustomTokenInput{
		UID:         "user-123",
		DisplayName: "Test User",
		Email:       "test@example.com",
		PhotoURL:    "https://example.com/p.png",
	}, now)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}, jwt.WithoutClaimsValidation())
	require.NoError(t, err)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "user-123", claims["sub"])
	assert.Equal(t, "Test User", claims["displayName"])
	assert.Equal(t, "test@example.com", claims["email"])
	assert.Equal(t, "https://example.com/p.png", claims["photoURL"])
	assert.EqualValues(t, now.Add(customTokenTTL).Unix(), claims["exp"])
}

func TestMintOmitsEmptyPhotoURL(t *testing.T) {
	signed, err := Mint("secret", CustomTokenInput{
		UID:         "user-123",
		DisplayName: "Test User",
		Email:       "test@example.com",
	}, time.Now())
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}, jwt.WithoutClaimsValidation())
	require.NoError(t, err)

	claims := token.Claims.(jwt.MapClaims)
	_, present := claims["photoURL"]
	assert.False(t, present)
}
