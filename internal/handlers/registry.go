package handlers

import (
	"context"

	"github.com/gowabot/gowabot/internal/router"
)

// RegisterAll returns the command table mapping command names to handlers.
func RegisterAll(deps Deps) map[string]router.HandlerFunc {
	return map[string]router.HandlerFunc{
		"menu":  NewMenuHandler(deps),
		"ping":  NewPingHandler(deps),
		"owner": NewOwnerHandler(deps),

		"sticker": NewStickerHandler(deps),
		"toimg":   NewToImageHandler(deps),
		"tovn":    NewVoiceNoteHandler(deps),

		"tts":    NewTTSHandler(deps),
		"short":  NewShortHandler(deps),
		"qrcode": NewQRCodeHandler(deps),

		"ytmp3": NewYTAudioHandler(deps),
		"ytmp4": NewYTVideoHandler(deps),

		"ai":      NewAIHandler(deps),
		"weather": NewWeatherHandler(deps),

		"kick":    NewKickHandler(deps),
		"promote": NewPromoteHandler(deps),
		"demote":  NewDemoteHandler(deps),
		"add":     NewAddHandler(deps),
	}
}

// NewUnknownHandler returns the fallback for unmatched command names.
func NewUnknownHandler(deps Deps) router.HandlerFunc {
	return func(ctx context.Context, e *router.Event, _ router.Command) error {
		return deps.Messenger.SendText(ctx, e.Chat, deps.Config.Bot.Messages.UnknownCommand)
	}
}
