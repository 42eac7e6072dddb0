package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".config/ppl"
	envPrefix  = "PPL"

	apiBaseURLKey    = "api.base_url"
	apiResultsKey    = "api.results"
	fetchPagesKey    = "fetch.pages"
	fetchTimeoutKey  = "fetch.timeout"
	logLevelKey      = "log.level"
	logFormatKey     = "log.format"
	metricsListenKey = "metrics.listen"

	DefaultAPIBaseURL = "https://randomuser.me"

	defaultPages        = 3
	defaultFetchTimeout = 15 * time.Second
)

type Config struct {
	API     API
	Fetch   Fetch
	Log     Log
	Metrics Metrics
}

type API struct {
	BaseURL string
	// Results is the page size requested per call; zero uses the server default.
	Results int
}

type Fetch struct {
	Pages   int
	Timeout time.Duration
}

type Log struct {
	Level  string
	Format string
}

type Metrics struct {
	// Listen is the address serving /metrics; empty disables it.
	Listen string
}

// Load reads ~/.config/ppl/config.toml, or path when set, and applies
// PPL_* environment overrides on top. A missing default file is not an
// error.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	v.SetDefault(apiBaseURLKey, DefaultAPIBaseURL)
	v.SetDefault(apiResultsKey, 0)
	v.SetDefault(fetchPagesKey, defaultPages)
	v.SetDefault(fetchTimeoutKey, defaultFetchTimeout)
	v.SetDefault(logLevelKey, "info")
	v.SetDefault(logFormatKey, "text")
	v.SetDefault(metricsListenKey, "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(filepath.Join(homeDir, configDir))
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		API: API{
			BaseURL: v.GetString(apiBaseURLKey),
			Results: v.GetInt(apiResultsKey),
		},
		Fetch: Fetch{
			Pages:   v.GetInt(fetchPagesKey),
			Timeout: v.GetDuration(fetchTimeoutKey),
		},
		Log: Log{
			Level:  strings.ToLower(v.GetString(logLevelKey)),
			Format: strings.ToLower(v.GetString(logFormatKey)),
		},
		Metrics: Metrics{
			Listen: v.GetString(metricsListenKey),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid %s %q", apiBaseURLKey, c.API.BaseURL)
	}
	if c.API.Results < 0 {
		return fmt.Errorf("%s must not be negative, got %d", apiResultsKey, c.API.Results)
	}
	if c.Fetch.Pages < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", fetchPagesKey, c.Fetch.Pages)
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("%s must not be negative, got %s", fetchTimeoutKey, c.Fetch.Timeout)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("invalid %s %q: %w", logLevelKey, c.Log.Level, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported %s %q (text or json)", logFormatKey, c.Log.Format)
	}

	return nil
}

// EncodeTOML renders the effective configuration in the config file format.
func (c Config) EncodeTOML() ([]byte, error) {
	encoded, err := toml.Marshal(toSchema(c))
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return encoded, nil
}
