// Package telegram delivers messages through the Bot API sendMessage call.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.telegram.org"
	DefaultTimeout = 10 * time.Second

	parseModeMarkdown = "Markdown"
)

// Notifier sends a text message to a chat. Delivery is fire-and-forget: the
// returned error exists for logging only and implementations never retry.
type Notifier interface {
	Notify(ctx context.Context, chatID, text string) error
}

// Client implements Notifier against the Telegram Bot API.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *log.Logger
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates a new Telegram client for the given bot token.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		client:  &http.Client{Timeout: DefaultTimeout},
		logger:  log.New(os.Stdout, "[telegram] ", log.LstdFlags|log.Lshortfile),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile-time interface check.
var _ Notifier = (*Client)(nil)

// sendMessageRequest is the sendMessage payload.
type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// apiResponse is the Bot API response envelope.
type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// Notify sends text to chatID as Markdown. When the API rejects the message
// (usually markup the platform cannot parse) the text is resent once as
// plain text, so a formatting problem never suppresses a notification.
func (c *Client) Notify(ctx context.Context, chatID, text string) error {
	err := c.send(ctx, sendMessageRequest{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             parseModeMarkdown,
		DisableWebPagePreview: true,
	})
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.logger.Printf("markdown send rejected (%v), falling back to plain text", apiErr)
		return c.send(ctx, sendMessageRequest{
			ChatID:                chatID,
			Text:                  text,
			DisableWebPagePreview: true,
		})
	}
	return err
}

// APIError is a non-ok answer from the Bot API.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram API error %d: %s", e.Code, e.Description)
}

// send performs one sendMessage request.
func (c *Client) send(ctx context.Context, msg sendMessageRequest) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !parsed.OK {
		return &APIError{Code: parsed.ErrorCode, Description: parsed.Description}
	}
	return nil
}
