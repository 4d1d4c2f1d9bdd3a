package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Output destinations used when no log file is configured.
const (
	OutputStderr  = "stderr"
	OutputDiscard = "discard"
)

// Config describes how a logger is built.
type Config struct {
	// Level is a zerolog level name; unknown names fall back to info.
	Level string

	// Format is FormatConsole or FormatJSON.
	Format string

	// Output is OutputStderr or OutputDiscard. It is ignored when File is set.
	Output string

	// File is an optional log file path. Lines are appended.
	File string

	// Caller adds the caller file and line to each entry.
	Caller bool
}

// LogPathResult is the outcome of NewLoggerWithPath.
type LogPathResult struct {
	Logger zerolog.Logger

	// FilePath is the log file in use, if any.
	FilePath string

	// UsingFile reports whether entries are written to FilePath.
	UsingFile bool

	// FallbackUsed reports that File could not be opened and stderr is used.
	FallbackUsed   bool
	FallbackReason string

	file *os.File
}

// Close closes the log file, if one was opened.
func (r *LogPathResult) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// ParseLevel parses level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// NewLogger builds a logger writing to w.
func NewLogger(cfg Config, w io.Writer) zerolog.Logger {
	if cfg.Format != FormatJSON && w != io.Discard {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: !isTerminalWriter(w)}
	}

	ctx := zerolog.New(w).Level(ParseLevel(cfg.Level)).Hook(TraceHook{}).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// NewLoggerWithPath builds a logger for cfg, opening cfg.File when set. If the
// file cannot be opened the logger falls back to stderr and the reason is
// recorded in the result.
func NewLoggerWithPath(cfg Config) LogPathResult {
	if cfg.File == "" {
		var w io.Writer = os.Stderr
		if cfg.Output == OutputDiscard {
			w = io.Discard
		}
		return LogPathResult{Logger: NewLogger(cfg, w)}
	}

	file, err := openLogFile(cfg.File)
	if err != nil {
		return LogPathResult{
			Logger:         NewLogger(cfg, os.Stderr),
			FallbackUsed:   true,
			FallbackReason: err.Error(),
		}
	}

	fileCfg := cfg
	fileCfg.Format = FormatJSON
	return LogPathResult{
		Logger:    NewLogger(fileCfg, file),
		FilePath:  cfg.File,
		UsingFile: true,
		file:      file,
	}
}

// ComponentLogger returns a child of l tagged with component.
func ComponentLogger(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

// PrintLogPathMessage tells the user where log entries are written.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user that the log file could not be used.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: could not open log file, logging to stderr: %s\n", reason)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return file, nil
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
