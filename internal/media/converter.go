package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"

	"github.com/gowabot/gowabot/internal/config"
)

// Converter is the media conversion seam used by command handlers. All
// conversions are one-shot: bytes or a stream in, converted artifact out,
// nothing retained afterwards.
type Converter interface {
	// StickerFromImage converts any raster image to a webp sticker fitted
	// inside the configured square bounding box.
	StickerFromImage(ctx context.Context, image []byte) ([]byte, error)
	// ImageFromSticker converts a webp sticker back to a png image.
	ImageFromSticker(ctx context.Context, sticker []byte) ([]byte, error)
	// VoiceNote converts arbitrary audio or video to an ogg/opus voice note.
	VoiceNote(ctx context.Context, media []byte) ([]byte, error)
	// ExtractAudio transcodes the stream to a 128k mp3 file at outPath.
	ExtractAudio(ctx context.Context, in io.Reader, outPath string) error
	// RemuxVideo transcodes the stream to an h264 mp4 file at outPath.
	RemuxVideo(ctx context.Context, in io.Reader, outPath string) error
}

// FFmpeg implements Converter by shelling out to the ffmpeg binary.
type FFmpeg struct {
	path           string
	scratchDir     string
	stickerSize    int
	stickerQuality int
	log            *slog.Logger
}

// NewFFmpeg creates an ffmpeg-backed converter from the media configuration.
func NewFFmpeg(cfg config.MediaConfig, log *slog.Logger) *FFmpeg {
	return &FFmpeg{
		path:           cfg.FFmpegPath,
		scratchDir:     cfg.ScratchDir,
		stickerSize:    cfg.StickerSize,
		stickerQuality: cfg.StickerQuality,
		log:            log.With("component", "ffmpeg"),
	}
}

func (f *FFmpeg) run(ctx context.Context, stdin io.Reader, args ...string) error {
	cmd := exec.CommandContext(ctx, f.path, append([]string{"-y", "-hide_banner", "-loglevel", "error"}, args...)...)
	cmd.Stdin = stdin

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	f.log.Debug("Running ffmpeg", "args", args)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, stderr.String())
	}
	return nil
}

func (f *FFmpeg) convertBytes(ctx context.Context, in []byte, inName, outName string, args []string) ([]byte, error) {
	scratch, err := NewScratch(f.scratchDir)
	if err != nil {
		return nil, err
	}
	defer scratch.Close()

	inPath, err := scratch.WriteFile(inName, in)
	if err != nil {
		return nil, err
	}
	outPath := scratch.Path(outName)

	full := append([]string{"-i", inPath}, args...)
	full = append(full, outPath)
	if err := f.run(ctx, nil, full...); err != nil {
		return nil, err
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read converted file: %w", err)
	}
	return out, nil
}

func (f *FFmpeg) StickerFromImage(ctx context.Context, image []byte) ([]byte, error) {
	size := strconv.Itoa(f.stickerSize)
	scale := fmt.Sprintf("scale=%s:%s:force_original_aspect_ratio=decrease", size, size)
	return f.convertBytes(ctx, image, "in.img", "out.webp", []string{
		"-vf", scale,
		"-vcodec", "libwebp",
		"-quality", strconv.Itoa(f.stickerQuality),
	})
}

func (f *FFmpeg) ImageFromSticker(ctx context.Context, sticker []byte) ([]byte, error) {
	return f.convertBytes(ctx, sticker, "in.webp", "out.png", nil)
}

func (f *FFmpeg) VoiceNote(ctx context.Context, media []byte) ([]byte, error) {
	return f.convertBytes(ctx, media, "in.media", "out.ogg", []string{
		"-vn",
		"-c:a", "libopus",
		"-f", "ogg",
	})
}

func (f *FFmpeg) ExtractAudio(ctx context.Context, in io.Reader, outPath string) error {
	return f.run(ctx, in,
		"-i", "pipe:0",
		"-vn",
		"-b:a", "128k",
		outPath,
	)
}

func (f *FFmpeg) RemuxVideo(ctx context.Context, in io.Reader, outPath string) error {
	return f.run(ctx, in,
		"-i", "pipe:0",
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-movflags", "+faststart",
		outPath,
	)
}
