package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gowabot/gowabot/internal/router"
)

var menuTemplate = strings.TrimSpace(`
*WA Bot – Menu*

• %[1]sping – Check the bot
• %[1]sowner – Owner contact
• %[1]ssticker – Reply to an image to make a sticker
• %[1]stoimg – Reply to a sticker to get an image
• %[1]stovn – Reply to audio/video to get a voice note
• %[1]stts <lang>|<text> – Text-to-speech (e.g. %[1]stts id|halo)
• %[1]sshort <url> – Shorten a URL
• %[1]sqrcode <text> – Generate a QR code image
• %[1]sytmp3 <url> – Download YouTube audio (≤ 10 MB)
• %[1]sytmp4 <url> – Download YouTube video (≤ 15 MB)
• %[1]sai <prompt> – Ask the AI
• %[1]sweather <city> – Current weather

• (Groups only) %[1]skick @user | %[1]sadd 62xxx | %[1]spromote @user | %[1]sdemote @user
`)

// NewMenuHandler returns the handler for the menu command.
func NewMenuHandler(deps Deps) router.HandlerFunc {
	return func(ctx context.Context, e *router.Event, _ router.Command) error {
		menu := fmt.Sprintf(menuTemplate, deps.Config.Bot.Prefix)
		return deps.Messenger.SendText(ctx, e.Chat, menu)
	}
}

// NewPingHandler returns the handler for the ping command. The reply carries
// uptime and, when the stats store is reachable, the number of commands
// served so far.
func NewPingHandler(deps Deps) router.HandlerFunc {
	return func(ctx context.Context, e *router.Event, _ router.Command) error {
		uptime := time.Since(deps.StartTime).Round(time.Second)
		reply := fmt.Sprintf("Pong! Uptime: %s", uptime)

		if deps.Store != nil {
			if count, err := deps.Store.CommandCount(ctx); err == nil {
				reply = fmt.Sprintf("%s, commands served: %d", reply, count)
			}
		}
		return deps.Messenger.SendText(ctx, e.Chat, reply)
	}
}

// NewOwnerHandler returns the handler for the owner command.
func NewOwnerHandler(deps Deps) router.HandlerFunc {
	return func(ctx context.Context, e *router.Event, _ router.Command) error {
		owner := deps.Config.Bot.OwnerNumber
		if owner == "" {
			return deps.Messenger.SendText(ctx, e.Chat, "Owner contact is not configured.")
		}
		return deps.Messenger.SendText(ctx, e.Chat, "Owner: "+owner)
	}
}
