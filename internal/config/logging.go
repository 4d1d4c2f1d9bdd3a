package config

import (
	"github.com/rshade/commentdash/internal/logging"
)

// LoggingConfig is the logging section of the config file.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// ToLoggingConfig converts the section into a logging.Config. Without a log
// file, entries go to stderr unless interactive is set, in which case they
// are discarded so the terminal UI stays intact.
func (lc *LoggingConfig) ToLoggingConfig(interactive bool) logging.Config {
	output := logging.OutputStderr
	if interactive && lc.File == "" {
		output = logging.OutputDiscard
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// GetLoggingConfig returns a copy of the global logging section. Flag
// overrides such as --debug are applied by the caller.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}
