package whatsapp

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/types/events"
)

// ConnState describes the connection lifecycle.
type ConnState int

const (
	StateConnecting ConnState = iota
	StateConnected
	StateRetrying
	StateTerminal
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateRetrying:
		return "retrying"
	case StateTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

type disconnectDecision int

const (
	decideRetry disconnectDecision = iota
	decideTerminal
)

// decideDisconnect maps a connection-related event to retry or terminal.
// Only losing the session for good (logged out, outdated client) ends the
// loop; stream errors and plain disconnects reconnect.
func decideDisconnect(evt interface{}) disconnectDecision {
	switch evt.(type) {
	case *events.LoggedOut:
		return decideTerminal
	case *events.ClientOutdated:
		return decideTerminal
	default:
		return decideRetry
	}
}

// ConnManager drives reconnection from the connection events whatsmeow emits.
// It owns the connecting/connected/retrying/terminal state and backs off
// between reconnect attempts.
type ConnManager struct {
	client *whatsmeow.Client
	log    *slog.Logger

	mu    sync.Mutex
	state ConnState

	reconnect chan struct{}
	terminal  chan struct{}
	termOnce  sync.Once

	baseDelay time.Duration
	maxDelay  time.Duration
}

// NewConnManager creates a connection manager for the given client.
func NewConnManager(client *whatsmeow.Client, log *slog.Logger) *ConnManager {
	return &ConnManager{
		client:    client,
		log:       log.With("component", "conn_manager"),
		state:     StateConnecting,
		reconnect: make(chan struct{}, 1),
		terminal:  make(chan struct{}),
		baseDelay: 2 * time.Second,
		maxDelay:  time.Minute,
	}
}

// State returns the current connection state.
func (m *ConnManager) State() ConnState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *ConnManager) setState(s ConnState) {
	m.mu.Lock()
	prev := m.state
	m.state = s
	m.mu.Unlock()
	if prev != s {
		m.log.Info("Connection state changed", "from", prev.String(), "to", s.String())
	}
}

// HandleEvent consumes connection-related events. Message events are handled
// elsewhere; everything not connection-related is ignored.
func (m *ConnManager) HandleEvent(evt interface{}) {
	switch evt.(type) {
	case *events.Connected:
		m.setState(StateConnected)
	case *events.Disconnected, *events.LoggedOut, *events.ClientOutdated, *events.StreamError:
		if m.State() == StateTerminal {
			return
		}
		if decideDisconnect(evt) == decideTerminal {
			m.log.Warn("Session ended, not reconnecting", "event", fmt.Sprintf("%T", evt))
			m.setState(StateTerminal)
			m.termOnce.Do(func() { close(m.terminal) })
			return
		}
		m.RequestReconnect()
	}
}

// RequestReconnect asks the run loop to re-establish the connection. Besides
// disconnect events, this covers a failed initial bootstrap, which happens
// before any event can fire.
func (m *ConnManager) RequestReconnect() {
	if m.State() == StateTerminal {
		return
	}
	m.setState(StateRetrying)
	select {
	case m.reconnect <- struct{}{}:
	default:
	}
}

// Run blocks until the session becomes terminal or ctx is cancelled,
// reconnecting with capped backoff whenever the transport drops.
func (m *ConnManager) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			m.client.Disconnect()
			return ctx.Err()
		case <-m.terminal:
			m.client.Disconnect()
			return fmt.Errorf("whatsapp session terminated")
		case <-m.reconnect:
			if err := m.reconnectWithBackoff(ctx); err != nil {
				return err
			}
		}
	}
}

func (m *ConnManager) reconnectWithBackoff(ctx context.Context) error {
	delay := m.baseDelay
	for attempt := 1; ; attempt++ {
		if m.client.IsConnected() {
			m.setState(StateConnected)
			return nil
		}

		m.log.Info("Reconnecting", "attempt", attempt, "delay", delay)
		err := m.client.Connect()
		if err == nil {
			m.setState(StateConnected)
			return nil
		}
		m.log.Warn("Reconnect attempt failed", "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.terminal:
			return fmt.Errorf("whatsapp session terminated")
		case <-time.After(delay):
		}
		if delay < m.maxDelay {
			delay *= 2
			if delay > m.maxDelay {
				delay = m.maxDelay
			}
		}
	}
}
