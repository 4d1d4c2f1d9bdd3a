package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/commentdash/internal/engine"
	"github.com/rshade/commentdash/internal/source"
	"github.com/rshade/commentdash/internal/source/cache"
	"github.com/rshade/commentdash/internal/store"
)

// Environment variables that override the config file.
const (
	EnvHome         = "COMMENTDASH_HOME"
	EnvProjectDir   = "COMMENTDASH_PROJECT_DIR"
	EnvBaseURL      = "COMMENTDASH_BASE_URL"
	EnvLogLevel     = "COMMENTDASH_LOG_LEVEL"
	EnvLogFormat    = "COMMENTDASH_LOG_FORMAT"
	EnvStore        = "COMMENTDASH_STORE"
	EnvCacheTTL     = "COMMENTDASH_CACHE_TTL"
	EnvCacheEnabled = "COMMENTDASH_CACHE_ENABLED"
)

// ConfigFileName is the config file name in the commentdash home and in a
// project directory.
const ConfigFileName = "config.yaml"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrUnknownKey is returned by Get for a key that names no setting.
var ErrUnknownKey = errors.New("unknown configuration key")

// Config is the commentdash configuration file.
type Config struct {
	Version string        `yaml:"version"`
	Source  SourceConfig  `yaml:"source"`
	Cache   CacheConfig   `yaml:"cache"`
	Store   StoreConfig   `yaml:"store"`
	View    ViewConfig    `yaml:"view"`
	Logging LoggingConfig `yaml:"logging"`

	configPath string
}

// SourceConfig configures the HTTP data source.
type SourceConfig struct {
	BaseURL   string `yaml:"base_url"`
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`
}

// CacheConfig configures the collection cache.
type CacheConfig struct {
	Enabled   bool   `yaml:"enabled"`
	TTL       string `yaml:"ttl"`
	Directory string `yaml:"directory,omitempty"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path,omitempty"`
}

// ViewConfig holds list view defaults.
type ViewConfig struct {
	DefaultPageSize int   `yaml:"default_page_size"`
	PageSizeOptions []int `yaml:"page_size_options"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Source: SourceConfig{
			BaseURL:   source.DefaultBaseURL,
			Timeout:   source.DefaultTimeout.String(),
			UserAgent: source.DefaultUserAgent,
		},
		Cache: CacheConfig{
			Enabled: false,
			TTL:     cache.DefaultTTL.String(),
		},
		Store: StoreConfig{
			Backend: store.BackendFile,
		},
		View: ViewConfig{
			DefaultPageSize: engine.DefaultPageSize,
			PageSizeOptions: engine.PageSizeOptions(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// New returns the defaults overlaid with ~/.commentdash/config.yaml, if it
// exists, and then with environment overrides. A config file that cannot be
// read is ignored; use Load to see the error.
func New() *Config {
	cfg, err := Load("")
	if err != nil {
		cfg = Default()
		cfg.configPath = defaultConfigPath()
		cfg.ApplyEnvOverrides()
	}
	return cfg
}

// Load reads the config at path over the defaults and applies environment
// overrides. An empty path selects the default location. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = defaultConfigPath()
	}
	cfg.configPath = path

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, unmarshalErr)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	return cfg, nil
}

// ConfigPath returns the file the config was loaded from and is saved to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes where Save writes.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Save writes the config as YAML, creating the directory if needed.
func (c *Config) Save() error {
	if c.configPath == "" {
		c.configPath = defaultConfigPath()
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(c.configPath), 0o700); mkdirErr != nil {
		return fmt.Errorf("creating config directory: %w", mkdirErr)
	}
	if writeErr := os.WriteFile(c.configPath, data, 0o600); writeErr != nil {
		return fmt.Errorf("writing config file: %w", writeErr)
	}
	return nil
}

// ApplyEnvOverrides applies the COMMENTDASH_* environment variables.
// Unparseable boolean values are ignored.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.Source.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvStore); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv(EnvCacheTTL); v != "" {
		c.Cache.TTL = v
		c.Cache.Enabled = true
	}
	if v := os.Getenv(EnvCacheEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Cache.Enabled = enabled
		}
	}
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if err := CheckVersion(c.Version); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Source.TimeoutDuration(); err != nil {
		errs = append(errs, err)
	}
	if c.Cache.Enabled {
		if _, err := c.Cache.TTLDuration(); err != nil {
			errs = append(errs, fmt.Errorf("cache.ttl: %w", err))
		}
	}
	if !slices.Contains(store.Backends(), strings.ToLower(c.Store.Backend)) {
		errs = append(errs, fmt.Errorf("store.backend %q: %w", c.Store.Backend, store.ErrUnknownBackend))
	}
	if c.View.DefaultPageSize < 1 {
		errs = append(errs, fmt.Errorf("view.default_page_size must be >= 1, got %d", c.View.DefaultPageSize))
	}
	for _, size := range c.View.PageSizeOptions {
		if size < 1 {
			errs = append(errs, fmt.Errorf("view.page_size_options must be >= 1, got %d", size))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// TimeoutDuration parses the request timeout. Empty means the default.
func (s SourceConfig) TimeoutDuration() (time.Duration, error) {
	if s.Timeout == "" {
		return source.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0, fmt.Errorf("source.timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("source.timeout must be positive, got %s", s.Timeout)
	}
	return d, nil
}

// TTLDuration parses the cache TTL. Empty means the default.
func (c CacheConfig) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return cache.DefaultTTL, nil
	}
	return cache.ParseTTL(c.TTL)
}

// CacheDirectory returns the configured cache directory or
// ~/.commentdash/cache.
func (c *Config) CacheDirectory() (string, error) {
	if c.Cache.Directory != "" {
		return c.Cache.Directory, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache"), nil
}

// StorePath returns the configured store path or the backend's default file
// in the commentdash home.
func (c *Config) StorePath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if strings.EqualFold(c.Store.Backend, store.BackendSQLite) {
		return filepath.Join(dir, store.DefaultSQLiteFileName), nil
	}
	return filepath.Join(dir, store.DefaultFileName), nil
}

// DefaultViewState is the state used when nothing is persisted.
func (c *Config) DefaultViewState() engine.ViewState {
	state := engine.DefaultViewState()
	if c.View.DefaultPageSize > 0 {
		state.PageSize = c.View.DefaultPageSize
	}
	return state
}

// Get returns the value at a dotted key such as "source.base_url", rendered
// as YAML for sections and lists.
func (c *Config) Get(key string) (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	var tree map[string]any
	if unmarshalErr := yaml.Unmarshal(data, &tree); unmarshalErr != nil {
		return "", fmt.Errorf("reading config tree: %w", unmarshalErr)
	}

	var node any = tree
	for _, part := range strings.Split(strings.TrimSpace(key), ".") {
		section, ok := node.(map[string]any)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		if node, ok = section[part]; !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
	}

	switch v := node.(type) {
	case map[string]any, []any:
		out, marshalErr := yaml.Marshal(v)
		if marshalErr != nil {
			return "", marshalErr
		}
		return strings.TrimRight(string(out), "\n"), nil
	default:
		return fmt.Sprint(v), nil
	}
}

func defaultConfigPath() string {
	dir, err := GetConfigDir()
	if err != nil {
		return ConfigFileName
	}
	return filepath.Join(dir, ConfigFileName)
}
