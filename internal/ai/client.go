package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Message is a single turn of a conversation handed to the completion API.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client calls an OpenAI-compatible chat-completions endpoint. The prompt
// construction here is deliberately plain; the helpers only need a short,
// single-shot answer.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// SuggestReply proposes a short reply to the tail of a conversation. The
// history is ordered oldest-first; the last message is the one being
// replied to.
func (c *Client) SuggestReply(ctx context.Context, history []Message) (string, error) {
	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, Message{
		Role:    "system",
		Content: "You are helping a user reply in a chat. Suggest one short, natural reply to the last message. Answer with the reply text only.",
	})
	messages = append(messages, history...)
	return c.complete(ctx, messages)
}

// Translate renders text into the target language, returning only the
// translated text.
func (c *Client) Translate(ctx context.Context, text, targetLang string) (string, error) {
	messages := []Message{
		{
			Role:    "system",
			Content: fmt.Sprintf("Translate the user's message into %s. Answer with the translation only.", targetLang),
		},
		{Role: "user", Content: text},
	}
	return c.complete(ctx, messages)
}

func (c *Client) complete(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion API returned status %d", resp.StatusCode)
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
