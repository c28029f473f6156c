package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/highshore/rumi-talk/internal/database"
	"github.com/highshore/rumi-talk/internal/models"
)

// UserResponse defines the structure for a user's public profile.
type UserResponse struct {
	UID         string `json:"uid" example:"8f14e45f-ceea-467f-a1d6-17f3a2b1c0de"`
	DisplayName string `json:"displayName" example:"testuser"`
	Email       string `json:"email" example:"test@example.com"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

func buildUserResponse(user models.User) UserResponse {
	return UserResponse{
		UID:         user.UID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		PhotoURL:    user.PhotoURL,
	}
}

// GetMe godoc
// @Summary      Get current user's info
// @Description  Retrieves the profile for the currently authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var user models.User
	if err := database.DB.Where("uid = ?", viewerID.(string)).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, buildUserResponse(user))
}

// FindUserByEmail godoc
// @Summary      Find a user by email
// @Description  Exact-match lookup used before sending a friend request by email.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email query     string  true  "Email address"
// @Success      200   {object}  UserResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /users [get]
func FindUserByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An 'email' query parameter is required"})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, buildUserResponse(user))
}
