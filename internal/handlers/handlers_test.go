package handlers_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	waProto "go.mau.fi/whatsmeow/binary/proto"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"google.golang.org/protobuf/proto"

	"github.com/gowabot/gowabot/internal/config"
	"github.com/gowabot/gowabot/internal/handlers"
	"github.com/gowabot/gowabot/internal/router"
	"github.com/gowabot/gowabot/internal/services"
	"github.com/gowabot/gowabot/internal/whatsapp"
)

type sentText struct {
	chat types.JID
	text string
}

type participantCall struct {
	users  []types.JID
	change whatsapp.ParticipantChange
}

// fakeMessenger implements the full transport seam and records every call.
type fakeMessenger struct {
	texts     []sentText
	images    [][]byte
	stickers  [][]byte
	audios    [][]byte
	audioPTT  []bool
	audioMime []string
	videos    [][]byte
	documents []string

	downloadData []byte
	downloadErr  error
	downloads    int

	participants    []whatsapp.Participant
	participantsErr error
	updates         []participantCall
	updateErr       error
}

func (f *fakeMessenger) SendText(_ context.Context, chat types.JID, text string) error {
	f.texts = append(f.texts, sentText{chat: chat, text: text})
	return nil
}

func (f *fakeMessenger) SendImage(_ context.Context, _ types.JID, data []byte, _, _ string) error {
	f.images = append(f.images, data)
	return nil
}

func (f *fakeMessenger) SendSticker(_ context.Context, _ types.JID, webp []byte) error {
	f.stickers = append(f.stickers, webp)
	return nil
}

func (f *fakeMessenger) SendAudio(_ context.Context, _ types.JID, data []byte, mimetype string, ptt bool) error {
	f.audios = append(f.audios, data)
	f.audioMime = append(f.audioMime, mimetype)
	f.audioPTT = append(f.audioPTT, ptt)
	return nil
}

func (f *fakeMessenger) SendVideo(_ context.Context, _ types.JID, data []byte, _ string) error {
	f.videos = append(f.videos, data)
	return nil
}

func (f *fakeMessenger) SendDocument(_ context.Context, _ types.JID, _ []byte, _, filename string) error {
	f.documents = append(f.documents, filename)
	return nil
}

func (f *fakeMessenger) DownloadMedia(context.Context, *waProto.Message) ([]byte, error) {
	f.downloads++
	return f.downloadData, f.downloadErr
}

func (f *fakeMessenger) GroupParticipants(context.Context, types.JID) ([]whatsapp.Participant, error) {
	return f.participants, f.participantsErr
}

func (f *fakeMessenger) UpdateParticipants(_ context.Context, _ types.JID, users []types.JID, change whatsapp.ParticipantChange) error {
	f.updates = append(f.updates, participantCall{users: users, change: change})
	return f.updateErr
}

func (f *fakeMessenger) OwnJID() types.JID {
	return types.NewJID("628999", types.DefaultUserServer)
}

// fakeConverter returns canned outputs. For file-writing operations it
// writes outSize bytes so size-ceiling behavior can be driven from tests.
type fakeConverter struct {
	out     []byte
	outSize int
	err     error
}

func (f *fakeConverter) StickerFromImage(context.Context, []byte) ([]byte, error) {
	return f.out, f.err
}

func (f *fakeConverter) ImageFromSticker(context.Context, []byte) ([]byte, error) {
	return f.out, f.err
}

func (f *fakeConverter) VoiceNote(context.Context, []byte) ([]byte, error) {
	return f.out, f.err
}

func (f *fakeConverter) ExtractAudio(_ context.Context, _ io.Reader, outPath string) error {
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outPath, make([]byte, f.outSize), 0o644)
}

func (f *fakeConverter) RemuxVideo(_ context.Context, _ io.Reader, outPath string) error {
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outPath, make([]byte, f.outSize), 0o644)
}

type fakeVideoSource struct {
	valid   bool
	streams int
	err     error
}

func (f *fakeVideoSource) ValidateURL(string) bool { return f.valid }

func (f *fakeVideoSource) AudioStream(context.Context, string) (io.ReadCloser, error) {
	f.streams++
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader("stream")), nil
}

func (f *fakeVideoSource) VideoStream(context.Context, string) (io.ReadCloser, error) {
	f.streams++
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader("stream")), nil
}

type fakeAI struct {
	configured bool
	reply      string
	err        error
}

func (f *fakeAI) Configured() bool { return f.configured }

func (f *fakeAI) Complete(context.Context, string) (string, error) {
	return f.reply, f.err
}

type fakeShortener struct {
	short string
	err   error
}

func (f *fakeShortener) Shorten(context.Context, string) (string, error) {
	return f.short, f.err
}

type fakeSynthesizer struct {
	lang, text string
	audio      []byte
	err        error
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, lang, text string) ([]byte, error) {
	f.lang, f.text = lang, text
	return f.audio, f.err
}

type fakeWeather struct {
	configured bool
	obs        *services.Observation
	err        error
}

func (f *fakeWeather) Configured() bool { return f.configured }

func (f *fakeWeather) Current(context.Context, string) (*services.Observation, error) {
	return f.obs, f.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Bot: config.BotConfig{
			Prefix:   "!",
			Messages: config.DefaultMessages,
		},
		Media: config.MediaConfig{
			ScratchDir: t.TempDir(),
			AudioLimit: 1 << 20,
			VideoLimit: 1 << 20,
		},
	}
}

func testDeps(t *testing.T, m *fakeMessenger) handlers.Deps {
	t.Helper()
	return handlers.Deps{
		Logger:    slog.Default(),
		Config:    testConfig(t),
		Messenger: m,
		StartTime: time.Now(),
	}
}

func groupEvent(t *testing.T, text string, mentions []string) *router.Event {
	t.Helper()
	msg := &waProto.Message{Conversation: proto.String(text)}
	if len(mentions) > 0 {
		msg = &waProto.Message{
			ExtendedTextMessage: &waProto.ExtendedTextMessage{
				Text:        proto.String(text),
				ContextInfo: &waProto.ContextInfo{MentionedJID: mentions},
			},
		}
	}
	e := router.NewEvent(&events.Message{
		Info: types.MessageInfo{
			MessageSource: types.MessageSource{
				Chat:    types.NewJID("12345", types.GroupServer),
				Sender:  types.NewJID("628111", types.DefaultUserServer),
				IsGroup: true,
			},
		},
		Message: msg,
	})
	if e == nil {
		t.Fatal("failed to build event")
	}
	return e
}

func privateEvent(t *testing.T, msg *waProto.Message) *router.Event {
	t.Helper()
	e := router.NewEvent(&events.Message{
		Info: types.MessageInfo{
			MessageSource: types.MessageSource{
				Chat:   types.NewJID("628111", types.DefaultUserServer),
				Sender: types.NewJID("628111", types.DefaultUserServer),
			},
		},
		Message: msg,
	})
	if e == nil {
		t.Fatal("failed to build event")
	}
	return e
}

func textCommand(t *testing.T, text string) (*router.Event, router.Command) {
	t.Helper()
	e := privateEvent(t, &waProto.Message{Conversation: proto.String(text)})
	return e, router.Parse(text, "!")
}

func wantUserError(t *testing.T, err error, kind router.ErrorKind) *router.UserError {
	t.Helper()
	var ue *router.UserError
	if !errors.As(err, &ue) {
		t.Fatalf("error = %v, want *router.UserError", err)
	}
	if ue.Kind != kind {
		t.Fatalf("error kind = %v, want %v", ue.Kind, kind)
	}
	return ue
}
