package router_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	waProto "go.mau.fi/whatsmeow/binary/proto"
	"go.mau.fi/whatsmeow/types"
	"google.golang.org/protobuf/proto"

	"github.com/gowabot/gowabot/internal/router"
	"github.com/gowabot/gowabot/internal/whatsapp"
)

// fakeMessenger records sent texts. The embedded interface panics for the
// methods the router never touches.
type fakeMessenger struct {
	whatsapp.Messenger

	mu    sync.Mutex
	texts []string
}

func (f *fakeMessenger) SendText(_ context.Context, _ types.JID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeMessenger) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

type fakeRecorder struct {
	mu    sync.Mutex
	names []string
}

func (f *fakeRecorder) RecordCommand(_ context.Context, name string, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names = append(f.names, name)
	return nil
}

const generalError = "Something went wrong."

func newTestRouter(handlers map[string]router.HandlerFunc, m *fakeMessenger, rec *fakeRecorder) *router.Router {
	fallback := func(ctx context.Context, e *router.Event, _ router.Command) error {
		return m.SendText(ctx, e.Chat, "unknown command")
	}
	var recorder router.Recorder
	if rec != nil {
		recorder = rec
	}
	return router.New("!", handlers, fallback, m, recorder, generalError, slog.Default())
}

func textEvent(text string) *router.Event {
	return router.NewEvent(messageEvent(&waProto.Message{Conversation: proto.String(text)}, false, false))
}

func TestHandleEventIgnoresNonCommands(t *testing.T) {
	t.Parallel()

	m := &fakeMessenger{}
	called := make(chan struct{}, 1)
	r := newTestRouter(map[string]router.HandlerFunc{
		"ping": func(context.Context, *router.Event, router.Command) error {
			called <- struct{}{}
			return nil
		},
	}, m, nil)

	r.HandleEvent(messageEvent(&waProto.Message{Conversation: proto.String("hello there")}, false, false))
	r.HandleEvent(messageEvent(&waProto.Message{AudioMessage: &waProto.AudioMessage{}}, false, false))
	r.HandleEvent(nil)

	select {
	case <-called:
		t.Fatal("handler ran for a non-command message")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHandleEventIgnoresOwnMessages(t *testing.T) {
	t.Parallel()

	m := &fakeMessenger{}
	called := make(chan struct{}, 1)
	r := newTestRouter(map[string]router.HandlerFunc{
		"ping": func(context.Context, *router.Event, router.Command) error {
			called <- struct{}{}
			return nil
		},
	}, m, nil)

	r.HandleEvent(messageEvent(&waProto.Message{Conversation: proto.String("!ping")}, false, true))

	select {
	case <-called:
		t.Fatal("handler ran for the bot's own message")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDispatchRoutesToHandler(t *testing.T) {
	t.Parallel()

	m := &fakeMessenger{}
	rec := &fakeRecorder{}
	r := newTestRouter(map[string]router.HandlerFunc{
		"ping": func(ctx context.Context, e *router.Event, _ router.Command) error {
			return m.SendText(ctx, e.Chat, "pong")
		},
	}, m, rec)

	r.Dispatch(context.Background(), textEvent("!PING"))

	if got := m.sent(); len(got) != 1 || got[0] != "pong" {
		t.Errorf("sent = %v, want [pong]", got)
	}
	if len(rec.names) != 1 || rec.names[0] != "ping" {
		t.Errorf("recorded = %v, want [ping]", rec.names)
	}
}

func TestDispatchUnknownCommandFallsBack(t *testing.T) {
	t.Parallel()

	m := &fakeMessenger{}
	r := newTestRouter(map[string]router.HandlerFunc{}, m, nil)

	r.Dispatch(context.Background(), textEvent("!nosuchcmd"))

	if got := m.sent(); len(got) != 1 || got[0] != "unknown command" {
		t.Errorf("sent = %v, want fallback reply", got)
	}
}

func TestDispatchUserErrorRepliesVerbatim(t *testing.T) {
	t.Parallel()

	m := &fakeMessenger{}
	r := newTestRouter(map[string]router.HandlerFunc{
		"tts": func(context.Context, *router.Event, router.Command) error {
			return router.Usage("Format: !tts <lang>|<text>")
		},
	}, m, nil)

	r.Dispatch(context.Background(), textEvent("!tts"))

	if got := m.sent(); len(got) != 1 || got[0] != "Format: !tts <lang>|<text>" {
		t.Errorf("sent = %v, want the usage text verbatim", got)
	}
}

func TestDispatchInternalErrorSendsGenericReply(t *testing.T) {
	t.Parallel()

	m := &fakeMessenger{}
	r := newTestRouter(map[string]router.HandlerFunc{
		"short": func(context.Context, *router.Event, router.Command) error {
			return errors.New("upstream returned 500")
		},
	}, m, nil)

	r.Dispatch(context.Background(), textEvent("!short https://example.com"))

	if got := m.sent(); len(got) != 1 || got[0] != generalError {
		t.Errorf("sent = %v, want the generic error text", got)
	}
}

func TestDispatchRecoversFromPanic(t *testing.T) {
	t.Parallel()

	m := &fakeMessenger{}
	r := newTestRouter(map[string]router.HandlerFunc{
		"boom": func(context.Context, *router.Event, router.Command) error {
			panic("nil map write")
		},
	}, m, nil)

	r.Dispatch(context.Background(), textEvent("!boom"))

	if got := m.sent(); len(got) != 1 || got[0] != generalError {
		t.Errorf("sent = %v, want the generic error text after panic", got)
	}
}
