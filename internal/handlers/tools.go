package handlers

import (
	"context"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/gowabot/gowabot/internal/router"
)

const qrImageSize = 512

// NewTTSHandler synthesizes speech from a "lang|text" argument.
func NewTTSHandler(deps Deps) router.HandlerFunc {
	return func(ctx context.Context, e *router.Event, cmd router.Command) error {
		usage := fmt.Sprintf("Format: %[1]stts <lang>|<text>\nExample: %[1]stts id|halo semua", deps.Config.Bot.Prefix)

		lang, text, found := strings.Cut(cmd.Args, "|")
		lang = strings.TrimSpace(lang)
		text = strings.TrimSpace(text)
		if !found || lang == "" || text == "" {
			return router.Usage(usage)
		}

		audio, err := deps.TTS.Synthesize(ctx, lang, text)
		if err != nil {
			return fmt.Errorf("speech synthesis failed: %w", err)
		}

		return deps.Messenger.SendAudio(ctx, e.Chat, audio, "audio/mpeg", false)
	}
}

// NewShortHandler shortens the URL given as argument.
func NewShortHandler(deps Deps) router.HandlerFunc {
	return func(ctx context.Context, e *router.Event, cmd router.Command) error {
		if cmd.Args == "" {
			return router.Usage(fmt.Sprintf("Send: %sshort <url>", deps.Config.Bot.Prefix))
		}

		short, err := deps.Shortener.Shorten(ctx, cmd.Args)
		if err != nil {
			return fmt.Errorf("url shortening failed: %w", err)
		}

		return deps.Messenger.SendText(ctx, e.Chat, "Short URL: "+short)
	}
}

// NewQRCodeHandler renders the argument text as a QR code image.
func NewQRCodeHandler(deps Deps) router.HandlerFunc {
	return func(ctx context.Context, e *router.Event, cmd router.Command) error {
		if cmd.Args == "" {
			return router.Usage(fmt.Sprintf("Send: %sqrcode <text or url>", deps.Config.Bot.Prefix))
		}

		png, err := qrcode.Encode(cmd.Args, qrcode.Medium, qrImageSize)
		if err != nil {
			return fmt.Errorf("qr encoding failed: %w", err)
		}

		return deps.Messenger.SendImage(ctx, e.Chat, png, "image/png", "QR Code")
	}
}
