package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/commentdash/internal/config"
	"github.com/rshade/commentdash/internal/logging"
)

// setupLogging configures logging from the config file, environment, and
// --debug, then stores the logger and a trace ID in the command context.
// interactive discards log output unless a log file is configured.
func setupLogging(cmd *cobra.Command, interactive bool) logging.LogPathResult {
	loggingCfg := config.GetLoggingConfig()

	debug, _ := cmd.Flags().GetBool(flagDebug)
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
	}

	if loggingCfg.File != "" {
		if err := config.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig(interactive))
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile && debug {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).Str("command", cmd.CommandPath()).Msg("command started")

	return result
}

// cleanupLogging closes the log file handle, if any.
func cleanupLogging(_ *cobra.Command, logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
