package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName        string `mapstructure:"app_name"`
	Env            string `mapstructure:"app_env"`
	LogLevel       string `mapstructure:"log_level"`
	SourcesFile    string `mapstructure:"sources_file"`
	PublishersFile string `mapstructure:"publishers_file"`
	OutputFile     string `mapstructure:"output_file"`

	AnthropicAPIKey  string        `mapstructure:"anthropic_api_key"`
	SummaryModel     string        `mapstructure:"summary_model"`
	SummaryMaxTokens int64         `mapstructure:"summary_max_tokens"`
	SummaryDelayMs   int64         `mapstructure:"summary_delay_ms"`
	PageFetchSeconds int64         `mapstructure:"page_fetch_timeout_seconds"`
	FeedFetchSeconds int64         `mapstructure:"feed_fetch_timeout_seconds"`
	SummaryDelay     time.Duration `mapstructure:"-"`
	PageFetchTimeout time.Duration `mapstructure:"-"`
	FeedFetchTimeout time.Duration `mapstructure:"-"`
}

// MarshalJSON masks the backend credential so the config can be logged
// whole without leaking the key to stdout.
func (c Config) MarshalJSON() ([]byte, error) {
	type plain Config
	p := plain(c)
	if p.AnthropicAPIKey != "" {
		p.AnthropicAPIKey = "***"
	}
	return json.Marshal(p)
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "daily-brief")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("sources_file", "")
	v.SetDefault("publishers_file", "")
	v.SetDefault("output_file", "public/data/epaper_data.json")
	v.SetDefault("anthropic_api_key", "")
	v.SetDefault("summary_model", "claude-haiku-4-5")
	v.SetDefault("summary_max_tokens", int64(1024))
	v.SetDefault("summary_delay_ms", int64(1000))
	v.SetDefault("page_fetch_timeout_seconds", int64(30))
	v.SetDefault("feed_fetch_timeout_seconds", int64(15))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.OutputFile == "" {
		return nil, fmt.Errorf("output_file must not be empty")
	}
	if cfg.SummaryMaxTokens <= 0 {
		return nil, fmt.Errorf("invalid summary_max_tokens (must be positive)")
	}
	if cfg.SummaryDelayMs < 0 {
		return nil, fmt.Errorf("invalid summary_delay_ms (must not be negative)")
	}
	if cfg.PageFetchSeconds <= 0 {
		return nil, fmt.Errorf("invalid page_fetch_timeout_seconds (must be positive)")
	}
	if cfg.FeedFetchSeconds <= 0 {
		return nil, fmt.Errorf("invalid feed_fetch_timeout_seconds (must be positive)")
	}
	cfg.SummaryDelay = time.Duration(cfg.SummaryDelayMs) * time.Millisecond
	cfg.PageFetchTimeout = time.Duration(cfg.PageFetchSeconds) * time.Second
	cfg.FeedFetchTimeout = time.Duration(cfg.FeedFetchSeconds) * time.Second

	return &cfg, nil
}
