// Package config defines the service configuration tree and its defaults.
package config

import (
	"time"

	"github.com/maxviazov/itinerary-planner/internal/logger"
)

// PlaceholderAPIKey is the value shipped in example env files; treated as unset.
const PlaceholderAPIKey = "your_groq_api_key_here"

type Config struct {
	App    AppConfig           `mapstructure:"app"`
	Logger logger.LoggerConfig `mapstructure:"logger" validate:"-"`
	LLM    LLMConfig           `mapstructure:"llm"`
	Redis  RedisConfig         `mapstructure:"redis"`
	CORS   CORSConfig          `mapstructure:"cors"`
}

type AppConfig struct {
	Name            string        `mapstructure:"name" validate:"required"`
	Version         string        `mapstructure:"version"`
	Env             string        `mapstructure:"env" validate:"oneof=dev test staging prod"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// LLMConfig points at an OpenAI-compatible chat completions API.
type LLMConfig struct {
	BaseURL     string        `mapstructure:"base_url" validate:"required,url"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model" validate:"required"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Temperature *float64      `mapstructure:"temperature" validate:"omitempty,gte=0,lte=2"`
}

// Enabled reports whether a usable API key is configured.
func (c LLMConfig) Enabled() bool {
	return c.APIKey != "" && c.APIKey != PlaceholderAPIKey
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db" validate:"min=0"`
	TTL      time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
	Methods []string `mapstructure:"methods"`
	Headers []string `mapstructure:"headers"`
	MaxAge  int      `mapstructure:"max_age" validate:"gte=0"`
}
