package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/gowabot/gowabot/internal/ai"
	"github.com/gowabot/gowabot/internal/router"
)

// NewAIHandler answers the argument prompt through the completion service.
func NewAIHandler(deps Deps) router.HandlerFunc {
	return func(ctx context.Context, e *router.Event, cmd router.Command) error {
		if cmd.Args == "" {
			return router.Usage(fmt.Sprintf("Send: %sai <question>", deps.Config.Bot.Prefix))
		}
		if !deps.AI.Configured() {
			return router.NotConfigured(deps.Config.Bot.Messages.NotConfigured)
		}

		reply, err := deps.AI.Complete(ctx, cmd.Args)
		if errors.Is(err, ai.ErrEmptyCompletion) {
			reply = "No answer."
		} else if err != nil {
			return fmt.Errorf("completion failed: %w", err)
		}

		return deps.Messenger.SendText(ctx, e.Chat, reply)
	}
}
