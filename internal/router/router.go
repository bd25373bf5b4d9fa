package router

import (
	"context"
	"errors"
	"log/slog"

	"go.mau.fi/whatsmeow/types/events"

	"github.com/gowabot/gowabot/internal/whatsapp"
)

// HandlerFunc reacts to one parsed command. Returning a *UserError sends its
// reply verbatim; any other error is answered with the generic failure text.
type HandlerFunc func(ctx context.Context, e *Event, cmd Command) error

// Recorder receives one record per dispatched command. Best effort; failures
// are logged and do not affect dispatch.
type Recorder interface {
	RecordCommand(ctx context.Context, name string, group bool) error
}

// Router classifies inbound events and dispatches command handlers.
type Router struct {
	prefix    string
	handlers  map[string]HandlerFunc
	fallback  HandlerFunc
	messenger whatsapp.Messenger
	recorder  Recorder
	log       *slog.Logger

	generalError string
}

// New creates a Router. fallback handles unknown (and empty) command names,
// recorder may be nil to disable stats.
func New(
	prefix string,
	handlers map[string]HandlerFunc,
	fallback HandlerFunc,
	messenger whatsapp.Messenger,
	recorder Recorder,
	generalError string,
	log *slog.Logger,
) *Router {
	return &Router{
		prefix:       prefix,
		handlers:     handlers,
		fallback:     fallback,
		messenger:    messenger,
		recorder:     recorder,
		log:          log.With("component", "router"),
		generalError: generalError,
	}
}

// HandleEvent is the entry point called from the whatsmeow event loop. Each
// command runs in its own goroutine so a slow external call never blocks the
// loop from starting work for subsequent events.
func (r *Router) HandleEvent(m *events.Message) {
	e := NewEvent(m)
	if e == nil || e.FromMe {
		return
	}
	if !IsCommand(e.Text, r.prefix) {
		return
	}
	go r.dispatch(context.Background(), e)
}

// Dispatch classifies and runs the command for an already-built event,
// synchronously. HandleEvent is the concurrent production path.
func (r *Router) Dispatch(ctx context.Context, e *Event) {
	r.dispatch(ctx, e)
}

func (r *Router) dispatch(ctx context.Context, e *Event) {
	cmd := Parse(e.Text, r.prefix)
	log := r.log.With("command", cmd.Name, "chat", e.Chat.String())

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("Handler panicked", "panic", rec)
			r.sendReply(ctx, e, r.generalError, log)
		}
	}()

	log.Info("Dispatching command", "args_len", len(cmd.Args), "group", e.IsGroup)

	if r.recorder != nil {
		if err := r.recorder.RecordCommand(ctx, cmd.Name, e.IsGroup); err != nil {
			log.Warn("Failed to record command", "error", err)
		}
	}

	handler, ok := r.handlers[cmd.Name]
	if !ok || cmd.Name == "" {
		handler = r.fallback
	}
	if handler == nil {
		return
	}

	err := handler(ctx, e, cmd)
	if err == nil {
		return
	}

	var ue *UserError
	if errors.As(err, &ue) {
		// User-correctable, not a failure of ours.
		log.Debug("Command rejected", "kind", ue.Kind, "reply", ue.Reply)
		r.sendReply(ctx, e, ue.Reply, log)
		return
	}

	log.Error("Command failed", "error", err)
	r.sendReply(ctx, e, r.generalError, log)
}

func (r *Router) sendReply(ctx context.Context, e *Event, text string, log *slog.Logger) {
	if err := r.messenger.SendText(ctx, e.Chat, text); err != nil {
		log.Error("Failed to send reply", "error", err)
	}
}
