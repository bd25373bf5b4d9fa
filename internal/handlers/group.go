package handlers

import (
	"context"
	"fmt"
	"strings"

	"go.mau.fi/whatsmeow/types"

	"github.com/gowabot/gowabot/internal/router"
	"github.com/gowabot/gowabot/internal/whatsapp"
)

// requireGroupAdmin checks that the event comes from a group chat and that
// the sender currently holds admin rank there. The membership list is fetched
// fresh on every call; any lookup failure denies the action.
func requireGroupAdmin(ctx context.Context, deps Deps, e *router.Event) error {
	if !e.IsGroup {
		return router.Denied(deps.Config.Bot.Messages.GroupOnly)
	}

	participants, err := deps.Messenger.GroupParticipants(ctx, e.Chat)
	if err != nil {
		deps.Logger.Warn("group metadata lookup failed, denying", "chat", e.Chat, "error", err)
		return router.Denied(deps.Config.Bot.Messages.AdminOnly)
	}

	for _, p := range participants {
		if p.IsAdmin && p.JID.User == e.Sender.User {
			return nil
		}
	}
	return router.Denied(deps.Config.Bot.Messages.AdminOnly)
}

func newMentionChangeHandler(deps Deps, change whatsapp.ParticipantChange, usage string) router.HandlerFunc {
	return func(ctx context.Context, e *router.Event, _ router.Command) error {
		if err := requireGroupAdmin(ctx, deps, e); err != nil {
			return err
		}
		if len(e.Mentions) == 0 {
			return router.Usage(usage)
		}

		if err := deps.Messenger.UpdateParticipants(ctx, e.Chat, e.Mentions, change); err != nil {
			return fmt.Errorf("participant %s failed: %w", change, err)
		}
		return deps.Messenger.SendText(ctx, e.Chat, "Done")
	}
}

// NewKickHandler removes every mentioned member from the group.
func NewKickHandler(deps Deps) router.HandlerFunc {
	usage := fmt.Sprintf("Send: %skick @member", deps.Config.Bot.Prefix)
	return newMentionChangeHandler(deps, whatsapp.ParticipantRemove, usage)
}

// NewPromoteHandler grants admin rank to every mentioned member.
func NewPromoteHandler(deps Deps) router.HandlerFunc {
	usage := fmt.Sprintf("Send: %spromote @member", deps.Config.Bot.Prefix)
	return newMentionChangeHandler(deps, whatsapp.ParticipantPromote, usage)
}

// NewDemoteHandler revokes admin rank from every mentioned member.
func NewDemoteHandler(deps Deps) router.HandlerFunc {
	usage := fmt.Sprintf("Send: %sdemote @member", deps.Config.Bot.Prefix)
	return newMentionChangeHandler(deps, whatsapp.ParticipantDemote, usage)
}

// NewAddHandler invites the phone number given as argument into the group.
func NewAddHandler(deps Deps) router.HandlerFunc {
	return func(ctx context.Context, e *router.Event, cmd router.Command) error {
		if err := requireGroupAdmin(ctx, deps, e); err != nil {
			return err
		}

		digits := digitsOnly(cmd.Args)
		if digits == "" {
			return router.Usage(fmt.Sprintf("Send: %sadd 628xxxxxxxx", deps.Config.Bot.Prefix))
		}

		user := types.NewJID(digits, types.DefaultUserServer)
		if err := deps.Messenger.UpdateParticipants(ctx, e.Chat, []types.JID{user}, whatsapp.ParticipantAdd); err != nil {
			return fmt.Errorf("participant add failed: %w", err)
		}
		return deps.Messenger.SendText(ctx, e.Chat, "Done")
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
