// Package config resolves where devlog keeps its data and how it logs.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/devlog/pkg/store"
)

const (
	EnvPrefix     = "DEVLOG"
	EnvConfigPath = "DEVLOG_CONFIG_PATH"

	KeyPath        = "path"
	KeyStorage     = "storage"
	KeyRedisURL    = "redis.url"
	KeyRedisPrefix = "redis.prefix"
	KeyLogLevel    = "log.level"
	KeyLogFile     = "log.file"
)

// Config is the resolved configuration. It satisfies store.Config.
type Config struct {
	Path    string
	Storage store.Backend
	Redis   Redis
	Log     Log

	// File is the config file that was read, empty when none was found.
	File string
}

type Redis struct {
	URL    string
	Prefix string
}

type Log struct {
	Level string
	// File is relative to Path unless absolute; "-" means stderr.
	File string
}

func (c *Config) BasePath() string       { return c.Path }
func (c *Config) Backend() store.Backend { return c.Storage }
func (c *Config) RedisURL() string       { return c.Redis.URL }
func (c *Config) RedisPrefix() string    { return c.Redis.Prefix }

// New returns a viper instance with devlog's defaults, config file name and
// environment binding. Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyPath, "~/.devlog")
	v.SetDefault(KeyStorage, string(store.BackendDisk))
	v.SetDefault(KeyRedisURL, "redis://localhost:6379/0")
	v.SetDefault(KeyRedisPrefix, store.DefaultRedisPrefix)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "devlog.log")

	v.SetConfigName(".devlog") // .yaml is implicit
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads .env, the optional .devlog config file and the environment
// into a Config.
func Load(v *viper.Viper) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	if override := os.Getenv(EnvConfigPath); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString(KeyPath))
	if err != nil {
		return nil, fmt.Errorf("config: expand path: %w", err)
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("config: path must not be empty")
	}

	backend, err := store.ParseBackend(v.GetString(KeyStorage))
	if err != nil {
		return nil, err
	}

	return &Config{
		Path:    path,
		Storage: backend,
		Redis: Redis{
			URL:    v.GetString(KeyRedisURL),
			Prefix: v.GetString(KeyRedisPrefix),
		},
		Log: Log{
			Level: v.GetString(KeyLogLevel),
			File:  v.GetString(KeyLogFile),
		},
		File: v.ConfigFileUsed(),
	}, nil
}
