package engine

import (
	"strings"

	"golang.org/x/text/cases"
)

// ApplyFilter returns the comments whose name, email, or body contains term,
// compared case-insensitively. An empty term matches everything. The input
// order is preserved and the input slice is not modified.
func ApplyFilter(comments []Comment, term string) []Comment {
	if term == "" {
		out := make([]Comment, len(comments))
		copy(out, comments)
		return out
	}

	// A Caser is stateful, so each call gets its own.
	fold := cases.Fold()
	query := fold.String(term)

	filtered := make([]Comment, 0, len(comments))
	for _, c := range comments {
		if strings.Contains(fold.String(c.Name), query) ||
			strings.Contains(fold.String(c.Email), query) ||
			strings.Contains(fold.String(c.Body), query) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
