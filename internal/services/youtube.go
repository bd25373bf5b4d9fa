package services

import (
	"context"
	"fmt"
	"io"

	"github.com/kkdai/youtube/v2"
)

// YouTube fetches raw media streams for YouTube videos.
type YouTube struct {
	client youtube.Client
}

// NewYouTube creates a YouTube stream client.
func NewYouTube() *YouTube {
	return &YouTube{client: youtube.Client{}}
}

// ValidateURL reports whether raw is a syntactically valid YouTube video URL.
func (y *YouTube) ValidateURL(raw string) bool {
	_, err := youtube.ExtractVideoID(raw)
	return err == nil
}

// AudioStream opens the best audio-only stream for the video at rawURL.
// The caller must close the returned stream.
func (y *YouTube) AudioStream(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	video, err := y.client.GetVideoContext(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video info: %w", err)
	}

	formats := video.Formats.Type("audio")
	if len(formats) == 0 {
		return nil, fmt.Errorf("video has no audio-only format")
	}
	formats.Sort()

	stream, _, err := y.client.GetStreamContext(ctx, video, &formats[0])
	if err != nil {
		return nil, fmt.Errorf("failed to open audio stream: %w", err)
	}
	return stream, nil
}

// VideoStream opens a muxed audio+video stream for the video at rawURL,
// preferring the classic 360p itag. The caller must close the stream.
func (y *YouTube) VideoStream(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	video, err := y.client.GetVideoContext(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video info: %w", err)
	}

	formats := video.Formats.Itag(18)
	if len(formats) == 0 {
		formats = video.Formats.WithAudioChannels().Type("video/mp4")
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("video has no muxed mp4 format")
	}
	formats.Sort()

	stream, _, err := y.client.GetStreamContext(ctx, video, &formats[0])
	if err != nil {
		return nil, fmt.Errorf("failed to open video stream: %w", err)
	}
	return stream, nil
}
