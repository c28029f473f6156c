package stream

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL matches the Stream Chat client default session length.
const TokenTTL = 24 * time.Hour

// TokenService mints Stream Chat user tokens. Stream validates them
// server-side against the API secret, so the payload shape is fixed:
// user_id, iat and exp, signed HS256.
type TokenService struct {
	apiSecret string
}

func NewTokenService(apiSecret string) *TokenService {
	return &TokenService{apiSecret: apiSecret}
}

// CreateToken signs a chat token for the given user id, valid for TokenTTL
// from issuedAt.
func (s *TokenService) CreateToken(userID string, issuedAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     issuedAt.Unix(),
		"exp":     issuedAt.Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.apiSecret))
}
