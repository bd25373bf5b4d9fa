package handlers

import (
	"context"
	"fmt"

	"github.com/gowabot/gowabot/internal/router"
)

// NewWeatherHandler reports current conditions for the argument city.
func NewWeatherHandler(deps Deps) router.HandlerFunc {
	return func(ctx context.Context, e *router.Event, cmd router.Command) error {
		if cmd.Args == "" {
			return router.Usage(fmt.Sprintf("Send: %sweather <city>", deps.Config.Bot.Prefix))
		}
		if !deps.Weather.Configured() {
			return router.NotConfigured(deps.Config.Bot.Messages.NotConfigured)
		}

		obs, err := deps.Weather.Current(ctx, cmd.Args)
		if err != nil {
			return fmt.Errorf("weather lookup failed: %w", err)
		}

		reply := fmt.Sprintf("Weather in *%s*: %s, %.1f°C (humidity %d%%, wind %.1f m/s)",
			obs.City, obs.Description, obs.TempC, obs.Humidity, obs.WindSpeed)
		return deps.Messenger.SendText(ctx, e.Chat, reply)
	}
}
