// Package sms provides a small client for an HTTP SMS gateway.
//
// The gateway expects a JSON POST authenticated by an account identifier and
// token, and answers with a provider-side message id that is kept for
// delivery tracking.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// MaxMessageLength is the practical single-segment SMS length; longer
// messages are truncated before submission.
const MaxMessageLength = 160

// Client represents an SMS gateway account.
type Client struct {
	apiURL  string
	account string
	token   string
	from    string       // sender number
	client  *http.Client // HTTP client used to make requests
}

// NewClient creates a gateway client. A non-positive timeout falls back to
// ten seconds so a stuck gateway can never hang the caller indefinitely.
func NewClient(apiURL, account, token, from string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		apiURL:  apiURL,
		account: account,
		token:   token,
		from:    from,
		client:  &http.Client{Timeout: timeout},
	}
}

// sendRequest represents the payload for the gateway's send endpoint.
type sendRequest struct {
	Account string `json:"account"`
	From    string `json:"from"`
	To      string `json:"to"`
	Text    string `json:"text"`
}

// sendResponse is the gateway's answer on accepted messages.
type sendResponse struct {
	MessageID string `json:"message_id"`
	Error     string `json:"error,omitempty"`
}

// Normalize brings a destination number into international format by
// prefixing "+" when absent and stripping separator characters.
func Normalize(phone string) string {
	var b strings.Builder

	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if digits == "" {
		return ""
	}

	return "+" + digits
}

// Truncate limits a message body to the single-segment SMS length.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxMessageLength {
		return text
	}

	return string(runes[:MaxMessageLength-3]) + "..."
}

// Send submits one message and returns the provider message id. The
// destination is normalized and the text truncated before submission.
func (c *Client) Send(ctx context.Context, to, text string) (string, error) {
	reqBody := sendRequest{
		Account: c.account,
		From:    c.from,
		To:      Normalize(to),
		Text:    Truncate(text),
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("sms gateway error: %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var result sendResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if result.Error != "" {
		return "", fmt.Errorf("sms gateway rejected message: %s", result.Error)
	}

	return result.MessageID, nil
}
