package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/highshore/rumi-talk/internal/relationship"
)

// FriendHandler exposes the friend-relationship operations over HTTP.
type FriendHandler struct {
	svc *relationship.Service
}

func NewFriendHandler(svc *relationship.Service) *FriendHandler {
	return &FriendHandler{svc: svc}
}

// StatusResponse is the uniform success envelope for friend operations.
type StatusResponse struct {
	Success bool   `json:"success" example:"true"`
	Status  string `json:"status" example:"sent"`
}

// SendFriendRequestInput identifies the target by uid or by email.
type SendFriendRequestInput struct {
	TargetID    string `json:"targetId" example:"8f14e45f-ceea-467f-a1d6-17f3a2b1c0de"`
	TargetEmail string `json:"targetEmail" example:"friend@example.com"`
}

// FriendActionInput identifies the counterparty of an accept/decline (the
// sender) or a cancel (the recipient).
type FriendActionInput struct {
	FromUID string `json:"fromUid,omitempty" example:"8f14e45f-ceea-467f-a1d6-17f3a2b1c0de"`
	ToUID   string `json:"toUid,omitempty" example:"8f14e45f-ceea-467f-a1d6-17f3a2b1c0de"`
}

// RelationshipsResponse is the caller's own view of the friend graph.
type RelationshipsResponse struct {
	Friends          []string `json:"friends"`
	RequestsSent     []string `json:"requestsSent"`
	RequestsReceived []string `json:"requestsReceived"`
}

// SendRequest godoc
// @Summary      Send a friend request
// @Description  Sends a friend request to a user identified by uid or email. Crossed requests auto-accept.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SendFriendRequestInput true "Target"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse "Missing or self-referential target"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /friends/request [post]
func (h *FriendHandler) SendRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input SendFriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := h.svc.SendRequest(c.Request.Context(), viewerID.(string), relationship.SendInput{
		TargetUID:   input.TargetID,
		TargetEmail: input.TargetEmail,
	})
	if err != nil {
		respondFriendError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Success: true, Status: string(status)})
}

// AcceptRequest godoc
// @Summary      Accept a friend request
// @Description  Accepts a pending request from fromUid. Accepting an absent request is a success no-op.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FriendActionInput true "Sender"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /friends/accept [post]
func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input FriendActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := h.svc.AcceptRequest(c.Request.Context(), viewerID.(string), input.FromUID)
	if err != nil {
		respondFriendError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Success: true, Status: string(status)})
}

// DeclineRequest godoc
// @Summary      Decline a friend request
// @Description  Removes a pending request from fromUid. Always succeeds, including when no such request exists.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FriendActionInput true "Sender"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /friends/decline [post]
func (h *FriendHandler) DeclineRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input FriendActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := h.svc.DeclineRequest(c.Request.Context(), viewerID.(string), input.FromUID)
	if err != nil {
		respondFriendError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Success: true, Status: string(status)})
}

// CancelRequest godoc
// @Summary      Cancel a sent friend request
// @Description  Withdraws a request previously sent to toUid. Always succeeds, including when no such request exists.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FriendActionInput true "Recipient"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /friends/cancel [post]
func (h *FriendHandler) CancelRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input FriendActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := h.svc.CancelRequest(c.Request.Context(), viewerID.(string), input.ToUID)
	if err != nil {
		respondFriendError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Success: true, Status: string(status)})
}

// GetRelationships godoc
// @Summary      Get own relationships
// @Description  Returns the caller's friends and pending requests in both directions.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  RelationshipsResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /friends [get]
func (h *FriendHandler) GetRelationships(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	snap, err := h.svc.Overview(c.Request.Context(), viewerID.(string))
	if err != nil {
		respondFriendError(c, err)
		return
	}

	c.JSON(http.StatusOK, RelationshipsResponse{
		Friends:          orEmptyList(snap.Friends),
		RequestsSent:     orEmptyList(snap.RequestsSent),
		RequestsReceived: orEmptyList(snap.RequestsReceived),
	})
}

func orEmptyList(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// respondFriendError maps service errors onto HTTP statuses. Unexpected
// store failures are logged and surfaced as an opaque 500.
func respondFriendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, relationship.ErrInvalidTarget):
		c.JSON(http.StatusBadRequest, gin.H{"error": "A target uid or email is required"})
	case errors.Is(err, relationship.ErrSelfAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot perform this action on yourself"})
	case errors.Is(err, relationship.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		logrus.WithError(err).Error("friend operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
