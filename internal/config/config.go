// Package config manages application configuration from a YAML file,
// BOT_-prefixed environment variables, and default values.
package config

import (
	"time"
)

// Config defines the application configuration for all components of the bot.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Bot       BotConfig       `mapstructure:"bot"`
	Session   SessionConfig   `mapstructure:"session"`
	Database  DatabaseConfig  `mapstructure:"database"`
	AI        AIConfig        `mapstructure:"ai"`
	Weather   WeatherConfig   `mapstructure:"weather"`
	Media     MediaConfig     `mapstructure:"media"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LogConfig controls log level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// BotConfig holds command routing settings and user-facing reply texts.
type BotConfig struct {
	Prefix      string `mapstructure:"prefix"       validate:"required,len=1"`
	OwnerNumber string `mapstructure:"owner_number"`

	Messages MessagesConfig `mapstructure:"messages"`
}

// MessagesConfig holds the reply texts shared across handlers. Per-command
// usage hints live next to their handlers.
type MessagesConfig struct {
	GeneralError   string `mapstructure:"general_error"   validate:"required"`
	UnknownCommand string `mapstructure:"unknown_command" validate:"required"`
	GroupOnly      string `mapstructure:"group_only"      validate:"required"`
	AdminOnly      string `mapstructure:"admin_only"      validate:"required"`
	NotConfigured  string `mapstructure:"not_configured"  validate:"required"`
}

// SessionConfig locates the WhatsApp session store.
type SessionConfig struct {
	DBPath string `mapstructure:"db_path" validate:"required"`
}

// DatabaseConfig locates the application database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// AIConfig configures the hosted completion service used by the ai command.
// An empty APIKey disables the command rather than failing startup.
type AIConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"       validate:"required"`
	Temperature float32       `mapstructure:"temperature" validate:"min=0,max=2"`
	Instruction string        `mapstructure:"instruction" validate:"required"`
	Timeout     time.Duration `mapstructure:"timeout"     validate:"min=1s,max=10m"`
	MaxRetries  int           `mapstructure:"max_retries" validate:"min=0,max=5"`
	RetryDelay  time.Duration `mapstructure:"retry_delay" validate:"min=1s,max=1m"`
}

// WeatherConfig configures the weather lookup service. An empty APIKey
// disables the weather command.
type WeatherConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	Units   string `mapstructure:"units"    validate:"required,oneof=standard metric imperial"`
	Lang    string `mapstructure:"lang"     validate:"required"`
}

// MediaConfig configures the ffmpeg-backed media pipeline and its scratch area.
type MediaConfig struct {
	FFmpegPath     string `mapstructure:"ffmpeg_path"     validate:"required"`
	ScratchDir     string `mapstructure:"scratch_dir"     validate:"required"`
	StickerSize    int    `mapstructure:"sticker_size"    validate:"min=64,max=1024"`
	StickerQuality int    `mapstructure:"sticker_quality" validate:"min=1,max=100"`
	AudioLimit     int64  `mapstructure:"audio_limit"     validate:"gt=0"`
	VideoLimit     int64  `mapstructure:"video_limit"     validate:"gt=0"`
}

// SchedulerConfig holds the set of configured maintenance tasks keyed by name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`

	ScratchTTL     time.Duration `mapstructure:"scratch_ttl"     validate:"min=1m"`
	StatsRetention time.Duration `mapstructure:"stats_retention" validate:"min=1h"`
}

// TaskConfig enables a named scheduled task with a cron expression.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}
