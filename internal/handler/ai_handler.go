package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/highshore/rumi-talk/internal/ai"
)

// AIHandler exposes the reply-suggestion and translation helpers.
type AIHandler struct {
	client *ai.Client
}

func NewAIHandler(client *ai.Client) *AIHandler {
	return &AIHandler{client: client}
}

// SuggestReplyInput is the conversation tail to reply to, oldest first.
type SuggestReplyInput struct {
	Messages []ai.Message `json:"messages" binding:"required,min=1"`
}

// TranslateInput is a piece of text and the language to render it in.
type TranslateInput struct {
	Text       string `json:"text" binding:"required"`
	TargetLang string `json:"targetLang" binding:"required" example:"Korean"`
}

// TextResponse wraps a single generated string.
type TextResponse struct {
	Text    string `json:"text"`
	Success bool   `json:"success" example:"true"`
}

// SuggestReply godoc
// @Summary      Suggest a chat reply
// @Description  Generates one short reply suggestion for the last message in the given history.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SuggestReplyInput true "Conversation history"
// @Success      200  {object}  TextResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse "Completion API failure"
// @Router       /ai/suggest-reply [post]
func (h *AIHandler) SuggestReply(c *gin.Context) {
	var input SuggestReplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.client.SuggestReply(c.Request.Context(), input.Messages)
	if err != nil {
		logrus.WithError(err).Error("reply suggestion failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate a suggestion"})
		return
	}

	c.JSON(http.StatusOK, TextResponse{Text: reply, Success: true})
}

// Translate godoc
// @Summary      Translate a message
// @Description  Translates the given text into the target language.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body TranslateInput true "Text and target language"
// @Success      200  {object}  TextResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse "Completion API failure"
// @Router       /ai/translate [post]
func (h *AIHandler) Translate(c *gin.Context) {
	var input TranslateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.client.Translate(c.Request.Context(), input.Text, input.TargetLang)
	if err != nil {
		logrus.WithError(err).Error("translation failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to translate"})
		return
	}

	c.JSON(http.StatusOK, TextResponse{Text: out, Success: true})
}
