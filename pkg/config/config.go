// Package config resolves process settings once at startup from the
// environment, optionally seeded from .env files.
package config

import (
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"openf1telemetry/pkg/openf1"
)

const (
	KeyBaseURL          = openf1.BaseURLKey
	KeyLogLevel         = "LOG_LEVEL"
	KeyHTTPTimeout      = "HTTP_TIMEOUT"
	KeyWebserverAddress = "WEBSERVER_ADDRESS"

	defaultLogLevel         = "info"
	defaultWebserverAddress = ":8080"
)

type Config struct {
	BaseURL          string        `koanf:"base_api_url" validate:"required,url"`
	LogLevel         string        `koanf:"log_level" validate:"oneof=trace debug info warn error disabled"`
	HTTPTimeout      time.Duration `koanf:"http_timeout" validate:"gte=0"`
	WebserverAddress string        `koanf:"webserver_address" validate:"required"`
}

var knownKeys = map[string]bool{
	"base_api_url":      true,
	"log_level":         true,
	"http_timeout":      true,
	"webserver_address": true,
}

// Load reads the configuration. Without arguments a .env file in the working
// directory is used when present; explicit files must exist. Variables that
// are already set in the environment win over file contents, and empty
// variables count as unset.
func Load(envFiles ...string) (*Config, error) {
	if err := loadDotEnv(envFiles); err != nil {
		return nil, &openf1.ConfigError{Key: "env file", Err: err}
	}

	k := koanf.New(".")
	err := k.Load(env.ProviderWithValue("", ".", func(name, value string) (string, interface{}) {
		key := strings.ToLower(name)
		if !knownKeys[key] || strings.TrimSpace(value) == "" {
			return "", nil
		}
		return key, strings.TrimSpace(value)
	}), nil)
	if err != nil {
		return nil, &openf1.ConfigError{Key: "environment", Err: errors.Wrap(err, "load")}
	}

	cfg := &Config{
		LogLevel:         defaultLogLevel,
		WebserverAddress: defaultWebserverAddress,
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, &openf1.ConfigError{Key: "environment", Err: errors.Wrap(err, "decode")}
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and normalizes the base URL.
func (c *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.ToUpper(fld.Tag.Get("koanf"))
	})

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &openf1.ConfigError{
				Key: fe.Field(),
				Err: errors.Errorf("failed %q validation (value %v)", fe.Tag(), fe.Value()),
			}
		}
		return &openf1.ConfigError{Key: "config", Err: err}
	}

	base, err := openf1.NormalizeBaseURL(c.BaseURL)
	if err != nil {
		return err
	}
	c.BaseURL = base
	return nil
}

// NewClient builds the OpenF1 client described by c.
func (c *Config) NewClient(logger zerolog.Logger) (*openf1.Client, error) {
	return openf1.NewClient(c.BaseURL,
		openf1.WithTimeout(c.HTTPTimeout),
		openf1.WithLogger(logger),
	)
}

// Logger returns a console logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func loadDotEnv(files []string) error {
	if len(files) > 0 {
		return godotenv.Load(files...)
	}
	err := godotenv.Load()
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
