package handlers_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/gowabot/gowabot/internal/handlers"
	"github.com/gowabot/gowabot/internal/router"
)

func TestYTAudioHandlerRequiresValidURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{name: "no args", text: "!ytmp3"},
		{name: "invalid url", text: "!ytmp3 not-a-video"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := &fakeMessenger{}
			src := &fakeVideoSource{valid: false}
			deps := testDeps(t, m)
			deps.YouTube = src
			deps.Converter = &fakeConverter{}
			handler := handlers.NewYTAudioHandler(deps)

			e, cmd := textCommand(t, tt.text)
			wantUserError(t, handler(context.Background(), e, cmd), router.KindValidation)
			if src.streams != 0 {
				t.Error("a stream was opened for an invalid request")
			}
		})
	}
}

func TestYTAudioHandlerSendsDocumentWithinLimit(t *testing.T) {
	t.Parallel()

	m := &fakeMessenger{}
	deps := testDeps(t, m)
	deps.YouTube = &fakeVideoSource{valid: true}
	deps.Converter = &fakeConverter{outSize: 1024}
	handler := handlers.NewYTAudioHandler(deps)

	e, cmd := textCommand(t, "!ytmp3 https://youtu.be/abc123")
	if err := handler(context.Background(), e, cmd); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(m.documents) != 1 || m.documents[0] != "audio.mp3" {
		t.Errorf("documents = %v, want [audio.mp3]", m.documents)
	}
}

func TestYTVideoHandlerRejectsOversizedResult(t *testing.T) {
	t.Parallel()

	m := &fakeMessenger{}
	deps := testDeps(t, m)
	deps.YouTube = &fakeVideoSource{valid: true}
	deps.Converter = &fakeConverter{outSize: int(deps.Config.Media.VideoLimit) + 1}
	handler := handlers.NewYTVideoHandler(deps)

	e, cmd := textCommand(t, "!ytmp4 https://youtu.be/abc123")
	err := handler(context.Background(), e, cmd)

	ue := wantUserError(t, err, router.KindValidation)
	if !strings.Contains(ue.Reply, "MB") {
		t.Errorf("reply %q should mention the size limit", ue.Reply)
	}
	if len(m.videos) != 0 {
		t.Error("the oversized video was sent anyway")
	}

	// The scratch directory for the invocation must be gone.
	entries, err2 := os.ReadDir(deps.Config.Media.ScratchDir)
	if err2 != nil {
		t.Fatalf("failed to read scratch root: %v", err2)
	}
	if len(entries) != 0 {
		t.Errorf("scratch root still has %d entries after the handler returned", len(entries))
	}
}

func TestYTVideoHandlerSendsWithinLimit(t *testing.T) {
	t.Parallel()

	m := &fakeMessenger{}
	deps := testDeps(t, m)
	deps.YouTube = &fakeVideoSource{valid: true}
	deps.Converter = &fakeConverter{outSize: 2048}
	handler := handlers.NewYTVideoHandler(deps)

	e, cmd := textCommand(t, "!ytmp4 https://youtu.be/abc123")
	if err := handler(context.Background(), e, cmd); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(m.videos) != 1 || len(m.videos[0]) != 2048 {
		t.Errorf("videos = %d entries, want one of 2048 bytes", len(m.videos))
	}
}
