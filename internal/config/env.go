package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "UDC_"

type Env struct {
	AppAddr                string `koanf:"app_addr" validate:"required"`
	GinMode                string `koanf:"gin_mode" validate:"omitempty,oneof=debug release test"`
	DataDir                string `koanf:"data_dir" validate:"required"`
	DefaultPageSize        int    `koanf:"default_page_size" validate:"min=1,ltefield=MaxPageSize"`
	MaxPageSize            int    `koanf:"max_page_size" validate:"min=1"`
	LogLevel               string `koanf:"log_level" validate:"required"`
	LogPretty              bool   `koanf:"log_pretty"`
	CORSAllowedOrigins     string `koanf:"cors_allowed_origins"`
	ShutdownTimeoutSeconds int    `koanf:"shutdown_timeout_seconds" validate:"min=1"`
}

func defaults() map[string]any {
	return map[string]any{
		"app_addr":                 ":8080",
		"gin_mode":                 "",
		"data_dir":                 "data",
		"default_page_size":        10,
		"max_page_size":            50,
		"log_level":                "info",
		"log_pretty":               false,
		"cors_allowed_origins":     "",
		"shutdown_timeout_seconds": 10,
	}
}

// LoadEnv reads an optional .env file, then UDC_* variables over the defaults.
func LoadEnv(dotenvFiles ...string) (Env, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Env{}, fmt.Errorf("load defaults: %w", err)
	}
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return Env{}, fmt.Errorf("load env variables: %w", err)
	}

	var cfg Env
	if err := k.Unmarshal("", &cfg); err != nil {
		return Env{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.AppAddr = strings.TrimSpace(cfg.AppAddr)
	cfg.GinMode = strings.TrimSpace(cfg.GinMode)

	if err := validator.New().Struct(cfg); err != nil {
		return Env{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// AllowedOrigins splits the comma separated CORS origin list.
func (e Env) AllowedOrigins() []string {
	out := []string{}
	for _, o := range strings.Split(e.CORSAllowedOrigins, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
