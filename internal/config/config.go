// Package config loads the scope configuration file, fills in defaults and
// applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults used when neither the config file nor the environment sets a value.
const (
	DefaultRemoteTimeout = 10 * time.Second
	DefaultListenAddr    = "127.0.0.1:8080"
	DefaultCacheBackend  = "sqlite"
	DefaultRedisPrefix   = "scope:"
	DefaultTokenTTL      = 24 * time.Hour
	DefaultLogLevel      = "info"
)

// Environment variables that override the config file.
const (
	EnvRemoteURL     = "SCOPE_REMOTE_URL"
	EnvRemoteTimeout = "SCOPE_REMOTE_TIMEOUT"
	EnvCacheBackend  = "SCOPE_CACHE_BACKEND"
	EnvCachePath     = "SCOPE_CACHE_PATH"
	EnvRedisURL      = "SCOPE_REDIS_URL"
	EnvServerDB      = "SCOPE_SERVER_DB"
	EnvJWTSecret     = "SCOPE_JWT_SECRET"
	EnvListenAddr    = "SCOPE_LISTEN_ADDR"
	EnvLogLevel      = "SCOPE_LOG_LEVEL"
	EnvThemeFile     = "SCOPE_THEME_FILE"
	EnvHome          = "SCOPE_HOME"
)

// Config represents the application configuration
type Config struct {
	Remote      RemoteConfig `yaml:"remote"`
	Cache       CacheConfig  `yaml:"cache"`
	Server      ServerConfig `yaml:"server"`
	Log         LogConfig    `yaml:"log"`
	ColorScheme ColorScheme  `yaml:"theme"`
}

// RemoteConfig points the CLI at the authoritative store. An empty URL
// keeps the CLI local-only.
type RemoteConfig struct {
	URL         string        `yaml:"url"`
	Timeout     time.Duration `yaml:"timeout"`
	SessionFile string        `yaml:"session_file"`
}

// CacheConfig selects the local durable cache.
type CacheConfig struct {
	Backend     string `yaml:"backend"` // sqlite, redis or memory
	Path        string `yaml:"path"`
	RedisURL    string `yaml:"redis_url"`
	RedisPrefix string `yaml:"redis_prefix"`
}

// ServerConfig configures scope-server.
type ServerConfig struct {
	ListenAddr string        `yaml:"listen_addr"`
	DBPath     string        `yaml:"db_path"`
	JWTSecret  string        `yaml:"jwt_secret"`
	TokenTTL   time.Duration `yaml:"token_ttl"`
}

// LogConfig configures the log file.
type LogConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

// SlogLevel parses Level, defaulting to info.
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads config from the user's config directory.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		// No home directory: run on defaults and the environment alone
		return finish(&Config{})
	}
	return LoadFile(configPath)
}

// LoadFile loads config from path. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return finish(&cfg)
}

func finish(cfg *Config) (*Config, error) {
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	loadThemeFile(cfg)
	cfg.applyDefaults()
	return cfg, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}
	return c.SaveFile(configPath)
}

// SaveFile writes the config to path.
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	// The file may hold the JWT secret
	return os.WriteFile(path, data, 0o600)
}

// Path returns the path to the config file
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "scope", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "scope", "config.yaml"), nil
}

// DataDir returns the directory holding the cache, session and logs.
// SCOPE_HOME overrides the default of ~/.scope.
func DataDir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".scope"
	}
	return filepath.Join(homeDir, ".scope")
}

// applyEnv overrides file values with SCOPE_* variables.
func (c *Config) applyEnv() error {
	setFromEnv(&c.Remote.URL, EnvRemoteURL)
	setFromEnv(&c.Cache.Backend, EnvCacheBackend)
	setFromEnv(&c.Cache.Path, EnvCachePath)
	setFromEnv(&c.Cache.RedisURL, EnvRedisURL)
	setFromEnv(&c.Server.DBPath, EnvServerDB)
	setFromEnv(&c.Server.JWTSecret, EnvJWTSecret)
	setFromEnv(&c.Server.ListenAddr, EnvListenAddr)
	setFromEnv(&c.Log.Level, EnvLogLevel)

	if v := strings.TrimSpace(os.Getenv(EnvRemoteTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return fmt.Errorf("%s: invalid duration %q", EnvRemoteTimeout, v)
		}
		c.Remote.Timeout = d
	}
	return nil
}

func setFromEnv(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = strings.TrimSpace(v)
	}
}

// loadThemeFile merges the theme from SCOPE_THEME_FILE over the config's.
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(EnvThemeFile)
	if themeFile == "" {
		return
	}
	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}
	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}
	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	dataDir := DataDir()

	c.Remote.URL = strings.TrimRight(c.Remote.URL, "/")
	if c.Remote.Timeout <= 0 {
		c.Remote.Timeout = DefaultRemoteTimeout
	}
	if c.Remote.SessionFile == "" {
		c.Remote.SessionFile = filepath.Join(dataDir, "session")
	}

	if c.Cache.Backend == "" {
		c.Cache.Backend = DefaultCacheBackend
	}
	if c.Cache.Path == "" {
		c.Cache.Path = filepath.Join(dataDir, "cache.db")
	}
	if c.Cache.RedisPrefix == "" {
		c.Cache.RedisPrefix = DefaultRedisPrefix
	}

	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}
	if c.Server.DBPath == "" {
		c.Server.DBPath = filepath.Join(dataDir, "server.db")
	}
	if c.Server.TokenTTL <= 0 {
		c.Server.TokenTTL = DefaultTokenTTL
	}

	if c.Log.Dir == "" {
		c.Log.Dir = dataDir
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}

	c.ColorScheme.ApplyDefaults()
}

// RemoteEnabled reports whether a remote store is configured.
func (c *Config) RemoteEnabled() bool {
	return c.Remote.URL != ""
}
