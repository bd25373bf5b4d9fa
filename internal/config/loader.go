package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load loads and validates configuration from:
// 1. Default values
// 2. The YAML file at path (missing file is not an error)
// 3. BOT_* environment variables
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Missing config file is fine, defaults and env apply.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(cfg.Scheduler.Tasks) == 0 {
		cfg.Scheduler.Tasks = DefaultTasks
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	v.SetDefault("bot.prefix", DefaultPrefix)
	v.SetDefault("bot.owner_number", "")
	v.SetDefault("bot.messages.general_error", DefaultMessages.GeneralError)
	v.SetDefault("bot.messages.unknown_command", DefaultMessages.UnknownCommand)
	v.SetDefault("bot.messages.group_only", DefaultMessages.GroupOnly)
	v.SetDefault("bot.messages.admin_only", DefaultMessages.AdminOnly)
	v.SetDefault("bot.messages.not_configured", DefaultMessages.NotConfigured)

	v.SetDefault("session.db_path", DefaultSessionDBPath)
	v.SetDefault("database.path", DefaultDatabasePath)

	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", DefaultAIModel)
	v.SetDefault("ai.temperature", DefaultAITemperature)
	v.SetDefault("ai.instruction", DefaultAIInstruction)
	v.SetDefault("ai.timeout", DefaultAITimeout)
	v.SetDefault("ai.max_retries", DefaultAIMaxRetries)
	v.SetDefault("ai.retry_delay", DefaultAIRetryDelay)

	v.SetDefault("weather.api_key", "")
	v.SetDefault("weather.base_url", DefaultWeatherBaseURL)
	v.SetDefault("weather.units", DefaultWeatherUnits)
	v.SetDefault("weather.lang", DefaultWeatherLang)

	v.SetDefault("media.ffmpeg_path", DefaultFFmpegPath)
	v.SetDefault("media.scratch_dir", DefaultScratchDir)
	v.SetDefault("media.sticker_size", DefaultStickerSize)
	v.SetDefault("media.sticker_quality", DefaultStickerQuality)
	v.SetDefault("media.audio_limit", DefaultAudioLimit)
	v.SetDefault("media.video_limit", DefaultVideoLimit)

	v.SetDefault("scheduler.scratch_ttl", DefaultScratchTTL)
	v.SetDefault("scheduler.stats_retention", DefaultStatsRetention)
}
