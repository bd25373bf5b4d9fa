// Package whatsapp wraps the whatsmeow client: session bootstrap, QR login,
// the reconnection loop, and the Messenger seam consumed by command handlers.
package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mdp/qrterminal/v3"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/store/sqlstore"
	waLog "go.mau.fi/whatsmeow/util/log"

	"github.com/gowabot/gowabot/internal/config"

	_ "modernc.org/sqlite"
)

// NewClient opens the session store and builds a whatsmeow client bound to
// the stored device, or a fresh device when no session exists yet.
func NewClient(ctx context.Context, cfg config.SessionConfig, log *slog.Logger) (*whatsmeow.Client, error) {
	container, err := sqlstore.New(ctx, "sqlite", "file:"+cfg.DBPath+"?_pragma=foreign_keys(1)", waLog.Stdout("Session", "WARN", false))
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load device: %w", err)
	}

	client := whatsmeow.NewClient(device, waLog.Stdout("Client", "WARN", false))
	// whatsmeow handles transport-level restarts itself, including the
	// stream restart the server requires right after QR pairing. ConnManager
	// supervises on top: backoff when the client stays down, terminal when
	// the session is gone.
	client.EnableAutoReconnect = true
	log.Info("WhatsApp client created", "registered", client.Store.ID != nil)
	return client, nil
}

// ErrPairingFailed means the QR pairing flow did not complete. Unlike a
// failed dial it cannot be retried without the operator scanning again.
var ErrPairingFailed = errors.New("qr pairing failed")

// Login connects the client. On first run it drives the QR pairing flow,
// rendering the code in the terminal until pairing succeeds or ctx ends.
// A plain connect failure is returned as-is so the caller can retry it.
func Login(ctx context.Context, client *whatsmeow.Client, log *slog.Logger) error {
	if client.Store.ID != nil {
		if err := client.Connect(); err != nil {
			return fmt.Errorf("failed to connect with stored session: %w", err)
		}
		log.Info("Restored previous session")
		return nil
	}

	qrChan, err := client.GetQRChannel(ctx)
	if err != nil {
		return fmt.Errorf("failed to get QR channel: %w", err)
	}
	if err := client.Connect(); err != nil {
		return fmt.Errorf("failed to connect for pairing: %w", err)
	}

	for evt := range qrChan {
		switch evt.Event {
		case "code":
			log.Info("Scan the QR code to pair")
			qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
		case "success":
			log.Info("Pairing successful")
			return nil
		case "timeout":
			return fmt.Errorf("%w: timed out", ErrPairingFailed)
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("%w: channel closed before pairing completed", ErrPairingFailed)
}
