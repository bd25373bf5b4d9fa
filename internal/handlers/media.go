package handlers

import (
	"context"
	"fmt"

	"github.com/gowabot/gowabot/internal/router"
)

// NewStickerHandler converts a quoted or attached image into a sticker.
func NewStickerHandler(deps Deps) router.HandlerFunc {
	return func(ctx context.Context, e *router.Event, _ router.Command) error {
		if !e.HasImage() {
			return router.Usage(fmt.Sprintf("Reply to an *image* with %ssticker", deps.Config.Bot.Prefix))
		}

		data, err := deps.Messenger.DownloadMedia(ctx, e.MediaMessage())
		if err != nil {
			return fmt.Errorf("failed to fetch image: %w", err)
		}

		webp, err := deps.Converter.StickerFromImage(ctx, data)
		if err != nil {
			return fmt.Errorf("sticker conversion failed: %w", err)
		}

		return deps.Messenger.SendSticker(ctx, e.Chat, webp)
	}
}

// NewToImageHandler converts a quoted or attached sticker back to an image.
func NewToImageHandler(deps Deps) router.HandlerFunc {
	return func(ctx context.Context, e *router.Event, _ router.Command) error {
		if !e.HasSticker() {
			return router.Usage(fmt.Sprintf("Reply to a *sticker* with %stoimg", deps.Config.Bot.Prefix))
		}

		data, err := deps.Messenger.DownloadMedia(ctx, e.MediaMessage())
		if err != nil {
			return fmt.Errorf("failed to fetch sticker: %w", err)
		}

		png, err := deps.Converter.ImageFromSticker(ctx, data)
		if err != nil {
			return fmt.Errorf("image conversion failed: %w", err)
		}

		return deps.Messenger.SendImage(ctx, e.Chat, png, "image/png", "Done")
	}
}

// NewVoiceNoteHandler converts quoted or attached audio/video into a
// push-to-talk voice note.
func NewVoiceNoteHandler(deps Deps) router.HandlerFunc {
	return func(ctx context.Context, e *router.Event, _ router.Command) error {
		if !e.HasAudioOrVideo() {
			return router.Usage(fmt.Sprintf("Reply to *audio or video* with %stovn", deps.Config.Bot.Prefix))
		}

		data, err := deps.Messenger.DownloadMedia(ctx, e.MediaMessage())
		if err != nil {
			return fmt.Errorf("failed to fetch media: %w", err)
		}

		ogg, err := deps.Converter.VoiceNote(ctx, data)
		if err != nil {
			return fmt.Errorf("voice note conversion failed: %w", err)
		}

		return deps.Messenger.SendAudio(ctx, e.Chat, ogg, "audio/ogg; codecs=opus", true)
	}
}
