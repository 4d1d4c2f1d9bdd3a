package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// GlobalConfig holds the configuration for the running command.
var GlobalConfig *Config        //nolint:gochecknoglobals // Singleton pattern for configuration
var globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Protects GlobalConfig

// SetGlobalConfig installs cfg as the configuration for this process.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	GlobalConfig = cfg
}

// ResetGlobalConfigForTest clears the global config.
func ResetGlobalConfigForTest() {
	SetGlobalConfig(nil)
}

// GetGlobalConfig returns the global configuration, loading it with New if
// none was installed.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	cfg := GlobalConfig
	globalConfigMu.RUnlock()
	if cfg != nil {
		return cfg
	}

	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	if GlobalConfig == nil {
		GlobalConfig = New()
	}
	return GlobalConfig
}

// GetConfigDir returns the commentdash home: $COMMENTDASH_HOME or
// ~/.commentdash.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".commentdash"), nil
}

// EnsureConfigDir creates the commentdash home if it does not exist.
func EnsureConfigDir() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}

// EnsureLogDir creates the parent directory of the configured log file.
func EnsureLogDir() error {
	file := GetGlobalConfig().Logging.File
	if file == "" {
		return nil
	}
	logDir := filepath.Dir(file)
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}
	return nil
}
