package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by -o/--output.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

const (
	tabPadding   = 2
	bodyMaxWidth = 60
	truncateTail = "…"
)

// ErrUnsupportedOutput is returned for an unknown -o value.
var ErrUnsupportedOutput = errors.New("unsupported output format")

// parseOutputFormat validates and normalizes an -o value.
func parseOutputFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "", OutputTable:
		return OutputTable, nil
	case OutputJSON, OutputYAML:
		return f, nil
	default:
		return "", &ExitError{
			Code: ExitUsage,
			Err:  fmt.Errorf("%w: %q (expected table, json, or yaml)", ErrUnsupportedOutput, format),
		}
	}
}

// writeStructured writes v as indented JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(tabPadding)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedOutput, format)
	}
}

// truncate shortens s to width cells on a single line.
func truncate(s string, width int) string {
	return ansi.Truncate(strings.Join(strings.Fields(s), " "), width, truncateTail)
}

// terminalWidth returns the width of stdout, or 0 when it is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
