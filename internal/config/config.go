// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads CLI settings from defaults, config.json in the XDG
// config dir, an optional .env file, SEEDKIT_* environment variables and
// command flags, in increasing order of precedence.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	serrors "seedkit/cli/internal/errors"
	"seedkit/cli/internal/xdg"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SEEDKIT_LOG_LEVEL.
const EnvPrefix = "SEEDKIT"

// Config holds CLI settings. Secrets that must persist go to the keychain.
type Config struct {
	LogLevel  string         `mapstructure:"log_level" json:"log_level" validate:"oneof=trace debug info warn warning error off"`
	LogFormat string         `mapstructure:"log_format" json:"log_format" validate:"oneof=text json"`
	DB        DBConfig       `mapstructure:"db" json:"db"`
	Admin     AdminConfig    `mapstructure:"admin" json:"admin"`
	Counts    map[string]int `mapstructure:"counts" json:"counts,omitempty" validate:"dive,gte=0"`
}

// DBConfig holds database connection settings.
type DBConfig struct {
	DSN     string `mapstructure:"dsn" json:"dsn,omitempty"`
	Migrate bool   `mapstructure:"migrate" json:"migrate"`
}

// AdminConfig holds the dev admin credentials used by the devAdmin seed.
type AdminConfig struct {
	Email    string `mapstructure:"email" json:"email" validate:"omitempty,email"`
	Password string `mapstructure:"password" json:"password,omitempty"`
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Admin:     AdminConfig{Email: "admin@seedkit.local"},
	}
}

// Loader layers the configuration sources.
type Loader struct {
	v       *viper.Viper
	path    string
	envFile string
}

// NewLoader reads from path, or from the XDG config file when path is empty.
func NewLoader(path string) *Loader {
	v := viper.New()
	d := Defaults()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.migrate", false)
	v.SetDefault("admin.email", d.Admin.Email)
	v.SetDefault("admin.password", "")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Loader{v: v, path: path, envFile: ".env"}
}

// WithEnvFile changes the dotenv file read before environment lookups.
// An empty name disables dotenv loading.
func (l *Loader) WithEnvFile(name string) *Loader {
	l.envFile = name
	return l
}

// BindFlag makes a command flag override key when the flag is set.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("bind %s: flag not defined", key)
	}
	return l.v.BindPFlag(key, flag)
}

// Load resolves and validates the configuration. A missing config file is not
// an error.
func (l *Loader) Load() (Config, error) {
	if l.envFile != "" {
		if err := godotenv.Load(l.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, serrors.Wrap(serrors.ConfigInvalid, "read "+l.envFile, err)
		}
	}

	p := l.path
	if p == "" {
		var err error
		if p, err = xdg.ConfigFile(); err != nil {
			return Config{}, err
		}
	}
	if _, err := os.Stat(p); err == nil {
		l.v.SetConfigFile(p)
		l.v.SetConfigType("json")
		if err := l.v.ReadInConfig(); err != nil {
			return Config{}, serrors.Wrap(serrors.ConfigInvalid, "read "+p, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	var c Config
	if err := l.v.Unmarshal(&c); err != nil {
		return Config{}, serrors.Wrap(serrors.ConfigInvalid, "decode config", err)
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if err := Validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads the default config file and environment.
func Load() (Config, error) { return NewLoader("").Load() }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field constraints and reports every violation at once.
func Validate(c Config) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return serrors.Wrap(serrors.ConfigInvalid, "validate config", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	sort.Strings(msgs)
	return serrors.New(serrors.ConfigInvalid, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "email":
		return fmt.Sprintf("%s is not a valid email address", field)
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// Save writes c as JSON to path, or to the XDG config file when path is
// empty, with 0600 permissions.
func Save(path string, c Config) error {
	if path == "" {
		var err error
		if path, err = xdg.ConfigFile(); err != nil {
			return err
		}
	} else if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
