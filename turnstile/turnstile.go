// Package turnstile verifies Cloudflare Turnstile tokens against the
// siteverify endpoint.
package turnstile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultVerifyURL is the Cloudflare siteverify endpoint.
const DefaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

var (
	// ErrMissingToken is returned when no token was supplied by the client.
	ErrMissingToken = errors.New("missing turnstile token")
	// ErrMissingSecret is returned when the secret key is not configured.
	ErrMissingSecret = errors.New("turnstile secret key is not configured")
	// ErrVerificationFailed is returned when the provider rejects the token.
	ErrVerificationFailed = errors.New("turnstile verification failed")
)

// Client verifies Turnstile tokens.
type Client struct {
	verifyURL  string
	httpClient *http.Client
}

// response is the siteverify response body.
type response struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// NewClient creates a new Turnstile client. The timeout bounds the outbound
// verification call so a stalled provider never hangs a request.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		verifyURL: DefaultVerifyURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientWithURL creates a client against a custom verify endpoint.
func NewClientWithURL(verifyURL string, timeout time.Duration) *Client {
	c := NewClient(timeout)
	c.verifyURL = verifyURL
	return c
}

// Verify checks a client-supplied token against the provider.
// It returns ErrMissingToken or ErrMissingSecret without calling out,
// ErrVerificationFailed when the provider rejects the token, and a wrapped
// transport error when the provider cannot be reached.
func (c *Client) Verify(ctx context.Context, secret, token string) error {
	if token == "" {
		return ErrMissingToken
	}
	if secret == "" {
		return ErrMissingSecret
	}

	form := url.Values{}
	form.Set("secret", secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach turnstile: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode turnstile response: %w", err)
	}

	if !result.Success {
		log.Warn("turnstile rejected token", "error_codes", result.ErrorCodes)
		return ErrVerificationFailed
	}

	return nil
}
