package token

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/highshore/rumi-talk/internal/models"
)

// A custom token is only a bridge into a real session; clients exchange it
// immediately, so the TTL stays short.
const customTokenTTL = time.Hour

// Service mints custom-auth tokens and keeps the user profile row in step
// with each sign-in.
type Service struct {
	db     *gorm.DB
	secret string
}

func NewService(db *gorm.DB, secret string) *Service {
	return &Service{db: db, secret: secret}
}

// CustomTokenInput carries the profile fields embedded in the token.
type CustomTokenInput struct {
	UID         string
	DisplayName string
	Email       string
	PhotoURL    string
}

// Mint signs a custom token carrying the user's profile claims.
func Mint(secret string, in CustomTokenInput, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":         in.UID,
		"displayName": in.DisplayName,
		"email":       in.Email,
		"iat":         now.Unix(),
		"exp":         now.Add(customTokenTTL).Unix(),
	}
	if in.PhotoURL != "" {
		claims["photoURL"] = in.PhotoURL
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// CreateCustomToken mints a signed token carrying the user's profile claims
// and upserts the profile row: a first sign-in creates the row, a repeat
// sign-in refreshes display name, photo and last-login time.
func (s *Service) CreateCustomToken(ctx context.Context, in CustomTokenInput) (string, error) {
	now := time.Now()

	signed, err := Mint(s.secret, in, now)
	if err != nil {
		return "", err
	}

	if err := s.upsertProfile(ctx, in, now); err != nil {
		return "", err
	}
	return signed, nil
}

func (s *Service) upsertProfile(ctx context.Context, in CustomTokenInput, now time.Time) error {
	db := s.db.WithContext(ctx)

	var user models.User
	err := db.Where("uid = ?", in.UID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(&models.User{
			UID:         in.UID,
			DisplayName: in.DisplayName,
			Email:       in.Email,
			PhotoURL:    in.PhotoURL,
			LastLoginAt: now,
		}).Error
	}
	if err != nil {
		return err
	}

	return db.Model(&user).Updates(map[string]interface{}{
		"display_name":  in.DisplayName,
		"photo_url":     in.PhotoURL,
		"last_login_at": now,
	}).Error
}
