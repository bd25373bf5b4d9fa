package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gowabot/gowabot/internal/media"
	"github.com/gowabot/gowabot/internal/router"
)

// NewYTAudioHandler downloads a YouTube video's audio track as an mp3
// document, subject to the configured size ceiling.
func NewYTAudioHandler(deps Deps) router.HandlerFunc {
	return func(ctx context.Context, e *router.Event, cmd router.Command) error {
		if cmd.Args == "" || !deps.YouTube.ValidateURL(cmd.Args) {
			return router.Usage(fmt.Sprintf("Send: %sytmp3 <YouTube url>", deps.Config.Bot.Prefix))
		}

		scratch, err := media.NewScratch(deps.Config.Media.ScratchDir)
		if err != nil {
			return err
		}
		defer scratch.Close()

		stream, err := deps.YouTube.AudioStream(ctx, cmd.Args)
		if err != nil {
			return fmt.Errorf("failed to open audio stream: %w", err)
		}
		defer stream.Close()

		outPath := scratch.Path("audio.mp3")
		if err := deps.Converter.ExtractAudio(ctx, stream, outPath); err != nil {
			return fmt.Errorf("audio transcode failed: %w", err)
		}

		data, err := readWithinLimit(outPath, deps.Config.Media.AudioLimit)
		if err != nil {
			return err
		}
		return deps.Messenger.SendDocument(ctx, e.Chat, data, "audio/mpeg", "audio.mp3")
	}
}

// NewYTVideoHandler downloads a YouTube video as mp4, subject to the
// configured size ceiling.
func NewYTVideoHandler(deps Deps) router.HandlerFunc {
	return func(ctx context.Context, e *router.Event, cmd router.Command) error {
		if cmd.Args == "" || !deps.YouTube.ValidateURL(cmd.Args) {
			return router.Usage(fmt.Sprintf("Send: %sytmp4 <YouTube url>", deps.Config.Bot.Prefix))
		}

		scratch, err := media.NewScratch(deps.Config.Media.ScratchDir)
		if err != nil {
			return err
		}
		defer scratch.Close()

		stream, err := deps.YouTube.VideoStream(ctx, cmd.Args)
		if err != nil {
			return fmt.Errorf("failed to open video stream: %w", err)
		}
		defer stream.Close()

		outPath := scratch.Path("video.mp4")
		if err := deps.Converter.RemuxVideo(ctx, stream, outPath); err != nil {
			return fmt.Errorf("video transcode failed: %w", err)
		}

		data, err := readWithinLimit(outPath, deps.Config.Media.VideoLimit)
		if err != nil {
			return err
		}
		return deps.Messenger.SendVideo(ctx, e.Chat, data, "Done")
	}
}

// readWithinLimit reads the finished artifact, enforcing the size ceiling
// strictly after conversion. The caller's scratch cleanup discards oversized
// artifacts; only the size-limit reply goes out.
func readWithinLimit(path string, limit int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat artifact: %w", err)
	}
	if info.Size() > limit {
		return nil, router.Usage(fmt.Sprintf("File is over %d MB. Use a shorter clip.", limit>>20))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	return data, nil
}
