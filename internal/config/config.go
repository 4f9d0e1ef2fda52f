package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/norris/pkg/logger"
)

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds everything norris reads from its config file and environment.
type Config struct {
	APIURL         string
	RequestTimeout time.Duration
	StoreBackend   string
	StorePath      string
	LogPath        string
	LogLevel       string
}

const (
	defaultConfigPath     = "~/.config/norris/config.toml"
	defaultAPIURL         = "https://api.icndb.com"
	defaultRequestTimeout = 10 * time.Second
	defaultStoreBackend   = BackendFile
	defaultFileStorePath  = "~/.local/share/norris/favorites.json"
	defaultSQLStorePath   = "~/.local/share/norris/favorites.db"
	defaultLogPath        = "~/.local/state/norris/norris.log"
	defaultLogLevel       = "info"
)

type fileConfig struct {
	APIURL         string `toml:"api_url"`
	RequestTimeout string `toml:"request_timeout"`
	Store          struct {
		Backend string `toml:"backend"`
		Path    string `toml:"path"`
	} `toml:"store"`
	Log struct {
		Path  string `toml:"path"`
		Level string `toml:"level"`
	} `toml:"log"`
}

// envConfig lists the environment overrides. Unset variables leave the file
// values alone.
type envConfig struct {
	APIURL         string `env:"NORRIS_API_URL" env-description:"joke service base URL"`
	RequestTimeout string `env:"NORRIS_REQUEST_TIMEOUT" env-description:"per request timeout, e.g. 5s"`
	StoreBackend   string `env:"NORRIS_STORE_BACKEND" env-description:"favorites backend: file or sqlite"`
	StorePath      string `env:"NORRIS_STORE_PATH" env-description:"favorites file or database path"`
	LogPath        string `env:"NORRIS_LOG_PATH" env-description:"log file path"`
	LogLevel       string `env:"NORRIS_LOG_LEVEL" env-description:"debug, info, warn or error"`
}

// Load reads the config file at path (or the default location), falling back
// to defaults when it is missing, then applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw fileConfig
	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	var env envConfig
	if err := cleanenv.ReadEnv(&env); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	cfg := Config{
		APIURL:       pick(env.APIURL, raw.APIURL, defaultAPIURL),
		StoreBackend: strings.ToLower(pick(env.StoreBackend, raw.Store.Backend, defaultStoreBackend)),
		LogLevel:     strings.ToLower(pick(env.LogLevel, raw.Log.Level, defaultLogLevel)),
	}

	timeout := pick(env.RequestTimeout, raw.RequestTimeout, "")
	cfg.RequestTimeout = defaultRequestTimeout
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}

	storeDefault := defaultFileStorePath
	if cfg.StoreBackend == BackendSQLite {
		storeDefault = defaultSQLStorePath
	}
	cfg.StorePath = mustExpand(pick(env.StorePath, raw.Store.Path, storeDefault))
	cfg.LogPath = mustExpand(pick(env.LogPath, raw.Log.Path, defaultLogPath))

	return cfg, nil
}

// Validate reports the first setting norris cannot run with.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("api_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url %q: scheme must be http or https", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api_url %q: missing host", c.APIURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	switch c.StoreBackend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("store.backend %q: want %q or %q", c.StoreBackend, BackendFile, BackendSQLite)
	}
	if strings.TrimSpace(c.StorePath) == "" {
		return fmt.Errorf("store.path is empty")
	}
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("log.level %q: want debug, info, warn or error", c.LogLevel)
	}
	return nil
}

// EnvUsage describes the supported environment variables.
func EnvUsage() string {
	header := "Environment variables:"
	text, err := cleanenv.GetDescription(&envConfig{}, &header)
	if err != nil {
		return ""
	}
	return text
}

// pick returns the first non-blank value, trimmed.
func pick(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
