// Package handlers contains one handler per bot command, their registration
// logic, and the group-admin authorization check.
package handlers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/gowabot/gowabot/internal/ai"
	"github.com/gowabot/gowabot/internal/config"
	"github.com/gowabot/gowabot/internal/database"
	"github.com/gowabot/gowabot/internal/media"
	"github.com/gowabot/gowabot/internal/services"
	"github.com/gowabot/gowabot/internal/whatsapp"
)

// Shortener shortens a URL.
type Shortener interface {
	Shorten(ctx context.Context, longURL string) (string, error)
}

// Synthesizer turns text into spoken audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, lang, text string) ([]byte, error)
}

// WeatherService looks up current conditions for a city.
type WeatherService interface {
	Configured() bool
	Current(ctx context.Context, city string) (*services.Observation, error)
}

// VideoSource opens media streams for video-platform URLs.
type VideoSource interface {
	ValidateURL(raw string) bool
	AudioStream(ctx context.Context, rawURL string) (io.ReadCloser, error)
	VideoStream(ctx context.Context, rawURL string) (io.ReadCloser, error)
}

// Deps provides dependencies for command handlers. The interfaces let tests
// substitute fakes for every external collaborator.
type Deps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Messenger whatsapp.Messenger
	Converter media.Converter
	Store     database.Store

	AI        ai.Client
	Shortener Shortener
	TTS       Synthesizer
	Weather   WeatherService
	YouTube   VideoSource

	StartTime time.Time
}
