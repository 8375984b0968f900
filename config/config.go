// Package config loads runtime settings from environment variables and an
// optional config file, with sane defaults for local development.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Settings holds every tunable the service reads at startup. Per-request
// overrides (model, max rounds, temperature) are applied on top of these.
type Settings struct {
	// Provider selects the model backend adapter: "openai" or "anthropic".
	Provider string `mapstructure:"provider"`

	// DefaultModel is the backend model used when a request names none.
	DefaultModel string `mapstructure:"default_model"`

	// BaseURL overrides the backend endpoint, e.g. for an OpenAI-compatible
	// local gateway.
	BaseURL string `mapstructure:"base_url"`

	// APIKey authenticates against the model backend.
	APIKey string `mapstructure:"api_key"`

	// MaxChatRounds is the hard ceiling on expert rounds per turn. Requested
	// values above it are clamped, never honored.
	MaxChatRounds int `mapstructure:"max_chat_rounds"`

	// DefaultMaxRounds applies when a request does not ask for a round limit.
	DefaultMaxRounds int `mapstructure:"default_max_rounds"`

	// Temperature is the default sampling temperature.
	Temperature float64 `mapstructure:"temperature"`

	// ListenAddr is the HTTP bind address for serve mode.
	ListenAddr string `mapstructure:"listen_addr"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat string `mapstructure:"log_format"`
}

// Load reads settings from STUDYMESH_* environment variables and, if cfgFile
// is non-empty, the named config file. Environment variables win over file
// values; both win over defaults.
func Load(cfgFile string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("provider", "openai")
	v.SetDefault("default_model", "gpt-oss-120b")
	v.SetDefault("base_url", "")
	v.SetDefault("api_key", "")
	v.SetDefault("max_chat_rounds", 10)
	v.SetDefault("default_max_rounds", 8)
	v.SetDefault("temperature", 0.2)
	v.SetDefault("listen_addr", ":8000")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	v.SetEnvPrefix("STUDYMESH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate rejects settings no component can work with.
func (s *Settings) Validate() error {
	switch s.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("provider must be openai or anthropic, got %q", s.Provider)
	}
	if s.MaxChatRounds < 1 {
		return fmt.Errorf("max_chat_rounds must be at least 1, got %d", s.MaxChatRounds)
	}
	if s.DefaultMaxRounds < 1 {
		return fmt.Errorf("default_max_rounds must be at least 1, got %d", s.DefaultMaxRounds)
	}
	return nil
}

// EffectiveMaxRounds clamps a requested per-turn round limit against the
// hard ceiling. Zero or negative requests fall back to the default.
func (s *Settings) EffectiveMaxRounds(requested int) int {
	if requested <= 0 {
		requested = s.DefaultMaxRounds
	}
	if requested > s.MaxChatRounds {
		return s.MaxChatRounds
	}
	return requested
}
