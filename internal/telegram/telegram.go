package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

const (
	// DefaultBaseURL is the Bot API endpoint prefix; the bot token follows it directly
	DefaultBaseURL = "https://api.telegram.org/bot"
	// DefaultTimeout bounds a single sendMessage round trip
	DefaultTimeout = 10 * time.Second

	parseModeHTML = "HTML"
)

// ErrMalformedResponse is returned when the Bot API answers with something that is not JSON
var ErrMalformedResponse = errors.New("telegram: malformed response")

// APIError is returned when the Bot API answers with "ok": false
type APIError struct {
	StatusCode  int
	ErrorCode   int64
	Description string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("telegram API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("telegram API error (status %d, code %d): %s", e.StatusCode, e.ErrorCode, e.Description)
}

// Client represents a Telegram Bot API client
type Client struct {
	botToken   string
	chatID     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at a different Bot API endpoint
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the timeout of the underlying HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, opts ...Option) (*Client, error) {
	if botToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if chatID == "" {
		return nil, fmt.Errorf("chat ID is required")
	}

	c := &Client{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  DefaultBaseURL,
		timeout:  DefaultTimeout,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	// copy so a shared *http.Client passed via WithHTTPClient is left untouched
	if c.timeout > 0 && c.httpClient.Timeout != c.timeout {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	return c, nil
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends an HTML-formatted text message to the configured chat
func (c *Client) SendMessage(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("message text is required")
	}

	url := fmt.Sprintf("%s%s/sendMessage", c.baseURL, c.botToken)

	jsonData, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: parseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	// The Bot API reports failures in the body, usually alongside a 4xx status,
	// so the "ok" flag decides rather than the status code.
	if !gjson.ValidBytes(body) {
		return fmt.Errorf("%w (status %d)", ErrMalformedResponse, resp.StatusCode)
	}

	result := gjson.ParseBytes(body)
	if !result.Get("ok").Bool() {
		return &APIError{
			StatusCode:  resp.StatusCode,
			ErrorCode:   result.Get("error_code").Int(),
			Description: result.Get("description").String(),
		}
	}

	return nil
}

// Notify sends text to the configured chat. It lets a Client act as a notifier.Notifier.
func (c *Client) Notify(ctx context.Context, text string) error {
	return c.SendMessage(ctx, text)
}
