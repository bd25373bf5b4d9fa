package database

import "time"

// CommandEvent is one dispatched command. Only the command name and chat
// kind are recorded, never message content or sender identity.
type CommandEvent struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	ChatKind  string    `db:"chat_kind"`
	CreatedAt time.Time `db:"created_at"`
}

// Chat kinds stored in command_events.chat_kind.
const (
	ChatKindGroup   = "group"
	ChatKindPrivate = "private"
)
