package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTTSBaseURL = "https://translate.google.com/translate_tts"

	// The translate endpoint rejects inputs above this length.
	MaxTTSTextLen = 200
)

// TTS synthesizes speech through the Google Translate TTS endpoint and
// returns mp3 audio bytes.
type TTS struct {
	httpClient *http.Client
	baseURL    string
}

// NewTTS creates a TTS client. baseURL may be empty for the production
// endpoint.
func NewTTS(httpClient *http.Client, baseURL string) *TTS {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultTTSBaseURL
	}
	return &TTS{httpClient: httpClient, baseURL: baseURL}
}

// AudioURL builds the synthesis URL for the given language code and text.
func (t *TTS) AudioURL(lang, text string) string {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", lang)
	q.Set("q", text)
	return t.baseURL + "?" + q.Encode()
}

// Synthesize fetches the spoken audio for text in the given language.
func (t *TTS) Synthesize(ctx context.Context, lang, text string) ([]byte, error) {
	if len(text) > MaxTTSTextLen {
		return nil, fmt.Errorf("text exceeds %d characters", MaxTTSTextLen)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.AudioURL(lang, text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tts request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts returned status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read tts audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("tts returned no audio")
	}
	return audio, nil
}
