// Package bot wires the WhatsApp client, the command router, and the
// maintenance scheduler together and runs them until shutdown.
package bot

import (
	"context"
	"log/slog"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/types/events"
	"golang.org/x/sync/errgroup"

	"github.com/gowabot/gowabot/internal/router"
	"github.com/gowabot/gowabot/internal/whatsapp"
)

// Bot owns the long-running pieces of the application.
type Bot struct {
	client    *whatsmeow.Client
	conn      *whatsapp.ConnManager
	router    *router.Router
	scheduler *Scheduler
	logger    *slog.Logger
}

// New assembles the bot and registers its event handler on the client.
func New(client *whatsmeow.Client, conn *whatsapp.ConnManager, r *router.Router, scheduler *Scheduler, logger *slog.Logger) *Bot {
	b := &Bot{
		client:    client,
		conn:      conn,
		router:    r,
		scheduler: scheduler,
		logger:    logger.With("component", "bot"),
	}
	client.AddEventHandler(b.handleEvent)
	return b
}

func (b *Bot) handleEvent(evt interface{}) {
	switch v := evt.(type) {
	case *events.Message:
		b.router.HandleEvent(v)
	default:
		b.conn.HandleEvent(evt)
	}
}

// Run starts the scheduler and blocks on the connection manager until the
// session ends or ctx is cancelled. The scheduler is stopped on the way out.
func (b *Bot) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return b.conn.Run(ctx)
	})

	g.Go(func() error {
		if err := b.scheduler.Start(); err != nil {
			return err
		}
		<-ctx.Done()
		return b.scheduler.Stop()
	})

	b.logger.Info("Bot running")
	return g.Wait()
}
