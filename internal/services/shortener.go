// Package services contains stateless request/response clients for the
// external HTTP APIs the command handlers call out to.
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultShortenerBaseURL = "https://tinyurl.com/api-create.php"

// Shortener shortens URLs through the TinyURL create API.
type Shortener struct {
	httpClient *http.Client
	baseURL    string
}

// NewShortener creates a TinyURL client. baseURL may be empty for the
// production endpoint.
func NewShortener(httpClient *http.Client, baseURL string) *Shortener {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultShortenerBaseURL
	}
	return &Shortener{httpClient: httpClient, baseURL: baseURL}
}

// Shorten returns the shortened form of longURL.
func (s *Shortener) Shorten(ctx context.Context, longURL string) (string, error) {
	reqURL := s.baseURL + "?url=" + url.QueryEscape(longURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build shorten request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("shorten request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("shortener returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("failed to read shortener response: %w", err)
	}

	short := strings.TrimSpace(string(body))
	if short == "" {
		return "", fmt.Errorf("shortener returned empty response")
	}
	return short, nil
}
