package cli

import (
	"errors"
	"fmt"

	"github.com/rshade/commentdash/internal/cli/pagination"
	"github.com/rshade/commentdash/internal/config"
	"github.com/rshade/commentdash/internal/engine"
	"github.com/rshade/commentdash/internal/source"
	"github.com/rshade/commentdash/internal/store"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitFetchFailed = 3
	ExitConfig      = 4
)

// ExitError carries the exit code for an error returned by a command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps err to a process exit code. An *ExitError anywhere in the
// chain wins; known sentinels map to their codes; anything else is a
// general failure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, source.ErrFetchFailed):
		return ExitFetchFailed
	case errors.Is(err, pagination.ErrInvalidPage), errors.Is(err, pagination.ErrInvalidPageSize),
		errors.Is(err, pagination.ErrInvalidSortOrder), errors.Is(err, pagination.ErrInvalidSortFormat),
		errors.Is(err, pagination.ErrEmptySortField), errors.Is(err, pagination.ErrPageOutOfRange),
		errors.Is(err, engine.ErrUnknownColumn):
		return ExitUsage
	case errors.Is(err, config.ErrInvalidConfig), errors.Is(err, config.ErrUnsupportedVersion),
		errors.Is(err, store.ErrUnknownBackend):
		return ExitConfig
	default:
		return ExitFailure
	}
}
