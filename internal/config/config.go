// Package config loads the assistant's configuration from a YAML file, a
// .env file, and the environment, in that order of precedence (environment
// wins).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Environment variables recognized alongside the config file.
const (
	EnvHome       = "ACE_HOME"
	EnvWeatherKey = "ACE_WEATHER_KEY"
	EnvTodoKey    = "ACE_TODO_API_KEY"
	EnvLocation   = "ACE_LOCATION"
)

// Config is the full assistant configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Model    ModelConfig    `mapstructure:"model"`
	Weather  WeatherConfig  `mapstructure:"weather"`
	Todo     TodoConfig     `mapstructure:"todo"`
	Apps     AppsConfig     `mapstructure:"apps"`
	Entities EntitiesConfig `mapstructure:"entities"`
	Speech   SpeechConfig   `mapstructure:"speech"`
	Console  ConsoleConfig  `mapstructure:"console"`
	Store    StoreConfig    `mapstructure:"store"`
	Server   ServerConfig   `mapstructure:"server"`

	// Location is the fallback place for weather questions that name none.
	Location string `mapstructure:"location"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level string `mapstructure:"level"`

	// Dir enables dated log files when set; empty logs to stderr.
	Dir string `mapstructure:"dir"`
}

// ModelConfig locates the intent classifier and its training data.
type ModelConfig struct {
	Path          string  `mapstructure:"path"`
	Dataset       string  `mapstructure:"dataset"`
	Threshold     float64 `mapstructure:"threshold"`
	TrainFraction float64 `mapstructure:"train_fraction"`
}

// WeatherConfig configures the OpenWeatherMap client.
type WeatherConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	Units    string        `mapstructure:"units"`
	Home     string        `mapstructure:"home"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// TodoConfig configures the Todoist client.
type TodoConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// AppsConfig locates the application catalog.
type AppsConfig struct {
	Catalog string `mapstructure:"catalog"`
}

// EntitiesConfig locates the gazetteer for location extraction.
type EntitiesConfig struct {
	Places string `mapstructure:"places"`
}

// SpeechConfig controls the spoken output.
type SpeechConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Diction string `mapstructure:"diction"`
}

// ConsoleConfig controls the terminal prompt and reply prefix.
type ConsoleConfig struct {
	Prompt string `mapstructure:"prompt"`
	Prefix string `mapstructure:"prefix"`
}

// StoreConfig selects the transcript store backend.
type StoreConfig struct {
	// Backend is "memory", "file", or "redis".
	Backend string      `mapstructure:"backend"`
	Dir     string      `mapstructure:"dir"`
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig configures the Redis adapters.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ServerConfig configures the HTTP serve mode.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Model: ModelConfig{
			Path:          "models/intents.json",
			Dataset:       "data/intents/intents.csv",
			Threshold:     0.5,
			TrainFraction: 0.8,
		},
		Weather: WeatherConfig{
			Units:    "metric",
			CacheTTL: 3 * time.Hour,
		},
		Apps:     AppsConfig{Catalog: "config/apps.yaml"},
		Entities: EntitiesConfig{Places: "data/places.txt"},
		Speech: SpeechConfig{
			Diction: "config/diction.yaml",
		},
		Console: ConsoleConfig{
			Prompt: "You:",
			Prefix: "ACE:",
		},
		Store: StoreConfig{
			Backend: "file",
			Dir:     "transcripts",
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads the configuration file at path, layered over the defaults and
// under the environment. A missing file is not an error; a missing path
// skips the file entirely.
func Load(path string) (Config, error) {
	// A .env beside the process supplies keys during development. Ignore a
	// missing file.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults only.
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		default:
			var raw map[string]any
			if err := yaml.Unmarshal(data, &raw); err != nil {
				return Config{}, fmt.Errorf("failed to parse config: %w", err)
			}

			decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
				Result:           &cfg,
				WeaklyTypedInput: true,
				DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			})
			if err != nil {
				return Config{}, fmt.Errorf("failed to build config decoder: %w", err)
			}
			if err := decoder.Decode(raw); err != nil {
				return Config{}, fmt.Errorf("failed to decode config: %w", err)
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvWeatherKey); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Weather.Home = v
	}
	if v := os.Getenv(EnvTodoKey); v != "" {
		cfg.Todo.APIKey = v
	}
	if v := os.Getenv(EnvLocation); v != "" {
		cfg.Location = v
	}
}

// LoadDiction reads the pronunciation substitutions for the speech output.
// A missing file yields an empty map.
func LoadDiction(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read diction file: %w", err)
	}

	var parsed struct {
		Pronunciations map[string]string `yaml:"pronunciations"`
	}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse diction file: %w", err)
	}
	if parsed.Pronunciations == nil {
		parsed.Pronunciations = map[string]string{}
	}
	return parsed.Pronunciations, nil
}
