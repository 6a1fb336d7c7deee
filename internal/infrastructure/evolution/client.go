// Package evolution sends WhatsApp text messages through an Evolution API instance.
package evolution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-otp-whatsapp/internal/config"
)

type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// APIError is a non-2xx reply from the Evolution API.
type APIError struct {
	StatusCode int
	Body       any // decoded JSON when the body is JSON, raw string otherwise
}

func (e *APIError) Error() string {
	return fmt.Sprintf("evolution: send text failed with status %d", e.StatusCode)
}

// Details returns the provider payload for client-facing error bodies.
func (e *APIError) Details() any { return e.Body }

// Client posts to /message/sendText/{instance}.
type Client struct {
	baseURL    string
	instance   string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    cfg.EvolutionAPIURL,
		instance:   cfg.EvolutionInstance,
		apiKey:     cfg.EvolutionAPIKey,
		httpClient: &http.Client{Timeout: cfg.MessagingTimeout},
	}
}

func (c *Client) SendText(ctx context.Context, phone, text string) error {
	raw, err := json.Marshal(sendTextRequest{Number: phone, Text: text})
	if err != nil {
		return fmt.Errorf("marshal send text request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/message/sendText/%s", c.baseURL, url.PathEscape(c.instance))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("create send text request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send text request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	var decoded any
	if json.Unmarshal(body, &decoded) == nil {
		apiErr.Body = decoded
	}
	return apiErr
}
