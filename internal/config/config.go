// Package config loads flashwiz settings from an optional .env file, an
// optional flashwiz.yaml and FLASHWIZ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/flashwiz/internal/battle"
	"github.com/abhisek/flashwiz/internal/store"
)

// DefaultUserID is used when no user is configured. The CLI is single-user
// by default.
const DefaultUserID = "local"

// Config holds all configuration for the application.
type Config struct {
	DBPath string        `mapstructure:"db"`
	UserID string        `mapstructure:"user"`
	Seed   uint64        `mapstructure:"seed"`
	Log    LogConfig     `mapstructure:"log"`
	Tuning battle.Tuning `mapstructure:"tuning"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load reads configuration. configFile may be empty to search the working
// directory and $XDG_CONFIG_HOME/flashwiz for flashwiz.yaml.
func Load(configFile string) (*Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("FLASHWIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("db", "")
	v.SetDefault("user", DefaultUserID)
	v.SetDefault("seed", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	registerDefaults(v, "tuning", reflect.ValueOf(battle.DefaultTuning()))

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("flashwiz")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{Tuning: battle.DefaultTuning()}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.DBPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = p
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogFile returns the configured log path, or flashwiz.log next to the
// database.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(filepath.Dir(c.DBPath), "flashwiz.log")
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return errors.New("user id is required")
	}
	if err := c.Tuning.Validate(); err != nil {
		return fmt.Errorf("invalid tuning: %w", err)
	}
	return nil
}

// registerDefaults records every leaf of a mapstructure-tagged value as a
// viper default. AutomaticEnv only resolves keys viper already knows.
func registerDefaults(v *viper.Viper, prefix string, val reflect.Value) {
	switch val.Kind() {
	case reflect.Struct:
		t := val.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name := f.Tag.Get("mapstructure")
			if name == "" || name == "-" {
				name = strings.ToLower(f.Name)
			}
			registerDefaults(v, prefix+"."+name, val.Field(i))
		}
	case reflect.Map:
		iter := val.MapRange()
		for iter.Next() {
			registerDefaults(v, prefix+"."+fmt.Sprint(iter.Key().Interface()), iter.Value())
		}
	default:
		v.SetDefault(prefix, val.Interface())
	}
}

func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "flashwiz"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "flashwiz"), nil
}
