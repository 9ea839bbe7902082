package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config is the optional rbcheck configuration.
//
// Values are read from config.toml in the config directory (or --config),
// then overridden by RBCHECK_* environment variables. A .env file in the
// working directory seeds the environment without overriding it. Command
// flags win over both.
type Config struct {
	CacheDir      string `toml:"cache_dir"`
	StoreDir      string `toml:"store_dir"`
	RedisURL      string `toml:"redis_url"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
	Addr          string `toml:"addr"`
}

// envOverrides maps environment variables to config fields.
var envOverrides = []struct {
	name  string
	field func(*Config) *string
}{
	{"RBCHECK_CACHE_DIR", func(c *Config) *string { return &c.CacheDir }},
	{"RBCHECK_STORE_DIR", func(c *Config) *string { return &c.StoreDir }},
	{"RBCHECK_REDIS_URL", func(c *Config) *string { return &c.RedisURL }},
	{"RBCHECK_MONGO_URI", func(c *Config) *string { return &c.MongoURI }},
	{"RBCHECK_MONGO_DATABASE", func(c *Config) *string { return &c.MongoDatabase }},
	{"RBCHECK_ADDR", func(c *Config) *string { return &c.Addr }},
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing default file is not an error; a missing explicit
// one is.
func loadConfig(path string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err == nil {
			path = filepath.Join(dir, "config.toml")
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	for _, o := range envOverrides {
		if v, ok := os.LookupEnv(o.name); ok && v != "" {
			*o.field(&cfg) = v
		}
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	return cfg, nil
}
