package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var defaults = map[string]any{
	"app.name":             "itinerary-planner",
	"app.version":          "0.1.0",
	"app.env":              "prod",
	"app.port":             5000,
	"app.shutdown_timeout": "10s",

	"logger.level":  "",
	"logger.format": "",
	"logger.env":    "",

	"llm.base_url": "https://api.groq.com/openai/v1",
	"llm.api_key":  "",
	"llm.model":    "llama3-70b-8192",
	"llm.timeout":  "60s",

	"redis.enabled":  false,
	"redis.addr":     "localhost:6379",
	"redis.password": "",
	"redis.db":       0,
	"redis.ttl":      "24h",

	"cors.origins": []string{"*"},
	"cors.methods": []string{"GET", "POST", "OPTIONS"},
	"cors.headers": []string{"Content-Type", "Authorization", "X-Request-ID"},
	"cors.max_age": 3600,
}

// LoadDotEnv exports variables from the given .env files into the process environment.
// Missing files are skipped and variables already set are left alone.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads the YAML file at path (skipped when path is empty) and overlays APP_* env vars.
// GROQ_API_KEY is honored for llm.api_key.
func Load(path string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	// AutomaticEnv alone only covers keys viper already knows, so bind every field explicitly
	if err := bindEnvs(v, reflect.TypeOf(Config{}), ""); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}
	if err := v.BindEnv("llm.api_key", "APP_LLM_API_KEY", "GROQ_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind llm api key env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if config.Logger.Env == "" {
		config.Logger.Env = loggerEnv(config.App.Env)
	}
	if config.Logger.ServiceName == "" {
		config.Logger.ServiceName = config.App.Name
	}
	if config.Logger.ServiceVersion == "" {
		config.Logger.ServiceVersion = config.App.Version
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}
	return &config, nil
}

// bindEnvs registers an APP_* binding for every mapstructure leaf of t.
// Map fields are skipped; they have no flat env form.
func bindEnvs(v *viper.Viper, t reflect.Type, prefix string) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := strings.Split(f.Tag.Get("mapstructure"), ",")[0]
		if tag == "" || tag == "-" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		switch f.Type.Kind() {
		case reflect.Struct:
			if err := bindEnvs(v, f.Type, key); err != nil {
				return err
			}
		case reflect.Map:
		default:
			if err := v.BindEnv(key); err != nil {
				return err
			}
		}
	}
	return nil
}

// the logger only knows dev/staging/prod
func loggerEnv(appEnv string) string {
	switch appEnv {
	case "dev", "test":
		return "dev"
	case "staging":
		return "staging"
	default:
		return "prod"
	}
}
