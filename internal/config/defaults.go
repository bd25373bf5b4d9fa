package config

import "time"

// Default values for optional configuration parameters.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultPrefix = "!"

	DefaultSessionDBPath = "session.db"
	DefaultDatabasePath  = "storage.db"

	DefaultAIModel       = "gemini-2.0-flash"
	DefaultAITemperature = 1.0
	DefaultAIInstruction = "You are a helpful assistant in a WhatsApp bot. Keep answers short and plain text."
	DefaultAITimeout     = 2 * time.Minute
	DefaultAIMaxRetries  = 2
	DefaultAIRetryDelay  = 5 * time.Second

	DefaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	DefaultWeatherUnits   = "metric"
	DefaultWeatherLang    = "en"

	DefaultFFmpegPath     = "ffmpeg"
	DefaultScratchDir     = "tmp"
	DefaultStickerSize    = 512
	DefaultStickerQuality = 95
	DefaultAudioLimit     = 10 << 20 // 10 MiB
	DefaultVideoLimit     = 15 << 20 // 15 MiB

	DefaultScratchTTL     = time.Hour
	DefaultStatsRetention = 90 * 24 * time.Hour
)

// DefaultMessages are the reply texts shared across handlers.
var DefaultMessages = MessagesConfig{
	GeneralError:   "Something went wrong while processing the command.",
	UnknownCommand: "Unknown command. Type *!menu* for the command list.",
	GroupOnly:      "This command only works in groups.",
	AdminOnly:      "Only group admins can use this command.",
	NotConfigured:  "This command is not configured. Ask the operator to set the API key.",
}

// DefaultTasks enables the maintenance tasks with hourly schedules.
var DefaultTasks = map[string]TaskConfig{
	"scratch_sweep": {Enabled: true, Schedule: "0 * * * *"},
	"stats_trim":    {Enabled: true, Schedule: "30 3 * * *"},
}
