package telegram

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dghubble/sling"
)

const (
	timeout   = 10 * time.Second
	parseMode = "html"
	redacted  = "<redacted>"
)

var apiBaseURL = "https://api.telegram.org/bot"

// ErrMissingCredentials is returned when the bot token or chat ID is empty
var ErrMissingCredentials = errors.New("telegram credentials missing")

// Client represents a Telegram Bot API client
type Client struct {
	botToken   string
	chatID     string
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithBaseURL overrides the Bot API base URL; the bot token is appended to it
func WithBaseURL(base string) ClientOption {
	return func(c *Client) {
		c.baseURL = base
	}
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, opts ...ClientOption) (*Client, error) {
	if botToken == "" {
		return nil, errors.Wrap(ErrMissingCredentials, "bot token is required")
	}
	if chatID == "" {
		return nil, errors.Wrap(ErrMissingCredentials, "chat ID is required")
	}

	c := &Client{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  apiBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ChatID returns the destination chat
func (c *Client) ChatID() string {
	return c.chatID
}

type sendMessageParams struct {
	ChatID                string `url:"chat_id"`
	ParseMode             string `url:"parse_mode"`
	Text                  string `url:"text"`
	DisableWebPagePreview bool   `url:"disable_web_page_preview,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// SendMessage sends an HTML text message to the configured chat.
// All parameters travel in the query string of a GET request.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	if text == "" {
		return errors.New("message text is required")
	}

	params := &sendMessageParams{
		ChatID:                c.chatID,
		ParseMode:             parseMode,
		Text:                  text,
		DisableWebPagePreview: true,
	}

	req, err := sling.New().
		Base(c.baseURL + c.botToken + "/").
		Get("sendMessage").
		QueryStruct(params).
		Request()
	if err != nil {
		return errors.Wrap(c.redact(err), "creating request")
	}
	// form encoding leaves spaces as "+"; a literal "+" is already %2B
	req.URL.RawQuery = strings.ReplaceAll(req.URL.RawQuery, "+", "%20")

	var result apiResponse
	resp, err := sling.New().Client(c.httpClient).Do(req.WithContext(ctx), &result, &result)
	if resp != nil && resp.StatusCode != http.StatusOK {
		if result.Description != "" {
			return errors.Newf("telegram API error (status %d): %s", resp.StatusCode, result.Description)
		}
		return errors.Newf("telegram API error (status %d)", resp.StatusCode)
	}
	if err != nil {
		return errors.Wrap(c.redact(err), "sending request")
	}

	if !result.OK {
		return errors.Newf("telegram API error: %s", result.Description)
	}

	return nil
}

// redact strips the bot token from URLs carried by err
func (c *Client) redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = strings.ReplaceAll(urlErr.URL, c.botToken, redacted)
	}
	return err
}
