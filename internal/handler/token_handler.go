package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/highshore/rumi-talk/internal/config"
	"github.com/highshore/rumi-talk/internal/database"
	"github.com/highshore/rumi-talk/internal/models"
	"github.com/highshore/rumi-talk/internal/stream"
	"github.com/highshore/rumi-talk/internal/token"
)

// TokenHandler issues Stream Chat tokens and custom-auth tokens.
type TokenHandler struct {
	stream *stream.TokenService
	custom *token.Service
}

func NewTokenHandler(streamSvc *stream.TokenService, customSvc *token.Service) *TokenHandler {
	return &TokenHandler{stream: streamSvc, custom: customSvc}
}

// StreamTokenInput names the user the chat token is for.
type StreamTokenInput struct {
	UserID string `json:"userId" binding:"required" example:"8f14e45f-ceea-467f-a1d6-17f3a2b1c0de"`
}

// StreamTokenResponse carries a freshly signed chat token plus the public
// API key the client SDK needs alongside it.
type StreamTokenResponse struct {
	Token   string `json:"token"`
	UserID  string `json:"userId"`
	APIKey  string `json:"apiKey"`
	Success bool   `json:"success" example:"true"`
}

// CustomTokenInput carries the profile fields embedded in a custom token.
type CustomTokenInput struct {
	UID         string `json:"uid" binding:"required"`
	DisplayName string `json:"displayName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhotoURL    string `json:"photoURL"`
}

// CustomTokenResponse carries a freshly minted custom token.
type CustomTokenResponse struct {
	Token   string `json:"token"`
	UID     string `json:"uid"`
	Success bool   `json:"success" example:"true"`
}

// GenerateStreamToken godoc
// @Summary      Generate a Stream Chat token
// @Description  Mints a chat token for the authenticated user. Callers can only mint tokens for themselves.
// @Tags         tokens
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body StreamTokenInput true "Target user"
// @Success      200  {object}  StreamTokenResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Token requested for another user"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /tokens/stream [post]
func (h *TokenHandler) GenerateStreamToken(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input StreamTokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	if input.UserID != viewerID.(string) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Can only generate tokens for the authenticated user"})
		return
	}

	var user models.User
	if err := database.DB.Where("uid = ?", input.UserID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	signed, err := h.stream.CreateToken(input.UserID, time.Now())
	if err != nil {
		logrus.WithError(err).Error("failed to sign Stream token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	logrus.WithField("uid", input.UserID).Info("generated Stream token")
	c.JSON(http.StatusOK, StreamTokenResponse{
		Token:   signed,
		UserID:  input.UserID,
		APIKey:  config.AppConfig.StreamAPIKey,
		Success: true,
	})
}

// CreateCustomToken godoc
// @Summary      Create a custom auth token
// @Description  Mints a custom token carrying profile claims and upserts the user profile.
// @Tags         tokens
// @Accept       json
// @Produce      json
// @Param        input body CustomTokenInput true "Profile"
// @Success      200  {object}  CustomTokenResponse
// @Failure      400  {object}  ErrorResponse "Missing required field"
// @Failure      500  {object}  ErrorResponse
// @Router       /tokens/custom [post]
func (h *TokenHandler) CreateCustomToken(c *gin.Context) {
	var input CustomTokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	signed, err := h.custom.CreateCustomToken(c.Request.Context(), token.CustomTokenInput{
		UID:         input.UID,
		DisplayName: input.DisplayName,
		Email:       input.Email,
		PhotoURL:    input.PhotoURL,
	})
	if err != nil {
		logrus.WithError(err).Error("failed to create custom token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create custom token"})
		return
	}

	c.JSON(http.StatusOK, CustomTokenResponse{Token: signed, UID: input.UID, Success: true})
}
