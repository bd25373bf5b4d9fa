// Package ai implements the hosted completion service used by the ai command,
// backed by Google's Gemini API.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/gowabot/gowabot/internal/config"
)

// ErrEmptyCompletion is returned when the service answers with no usable
// text. Callers may fall back to a canned reply.
var ErrEmptyCompletion = errors.New("completion returned empty text")

// Client generates a single completion for a user prompt. Configured reports
// whether the service has a credential; an unconfigured client always errors.
type Client interface {
	Configured() bool
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewClient creates a completion client. When no API key is configured it
// returns a disabled client rather than an error, so the bot starts and the
// ai command reports the missing credential instead.
func NewClient(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (Client, error) {
	if cfg.APIKey == "" {
		log.Info("AI API key not set, ai command disabled")
		return disabledClient{}, nil
	}

	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	logger := log.With("component", "ai_client")
	logger.Info("AI client initialized", "model", cfg.Model)
	return &sdkClient{
		genaiClient: gi,
		log:         logger,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		instruction: cfg.Instruction,
		timeout:     cfg.Timeout,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  cfg.RetryDelay,
	}, nil
}

type disabledClient struct{}

func (disabledClient) Configured() bool { return false }

func (disabledClient) Complete(context.Context, string) (string, error) {
	return "", fmt.Errorf("ai client is not configured")
}

type sdkClient struct {
	genaiClient *genai.Client
	log         *slog.Logger
	model       string
	temperature float32
	instruction string
	timeout     time.Duration
	maxRetries  int
	retryDelay  time.Duration
}

func (c *sdkClient) Configured() bool { return true }

func (c *sdkClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	genCfg := &genai.GenerateContentConfig{
		Temperature:       &c.temperature,
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: c.instruction}}},
	}

	resp, err := c.generateWithRetries(ctx, contents, genCfg)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

func (c *sdkClient) generateWithRetries(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	var resp *genai.GenerateContentResponse
	var err error

	for i := 0; i <= c.maxRetries; i++ {
		resp, err = c.genaiClient.Models.GenerateContent(ctx, c.model, contents, cfg)
		if err == nil {
			return resp, nil
		}

		var apiErr *genai.APIError
		if errors.As(err, &apiErr) && (apiErr.Code == 500 || apiErr.Code == 503) && i < c.maxRetries {
			c.log.WarnContext(ctx, "Completion call failed, retrying", "attempt", i+1, "code", apiErr.Code, "delay", c.retryDelay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
			continue
		}

		return nil, fmt.Errorf("completion call failed: %w", err)
	}
	return nil, fmt.Errorf("completion call failed after %d retries: %w", c.maxRetries, err)
}
