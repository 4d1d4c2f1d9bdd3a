package engine

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// ApplySort returns comments ordered by spec. A nil spec returns the input
// order unchanged. Post IDs compare numerically; names and emails compare
// case-insensitively. The sort is stable: comments with equal keys keep their
// relative order in both directions. The input slice is not modified.
func ApplySort(comments []Comment, spec *SortSpec) []Comment {
	if spec == nil || !spec.Column.Valid() {
		out := make([]Comment, len(comments))
		copy(out, comments)
		return out
	}

	compare := comparatorFor(spec.Column, comments)
	descending := spec.Direction == Descending

	// Sort indices so the folded string keys are computed once per comment.
	order := make([]int, len(comments))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		c := compare(a, b)
		if descending {
			return -c
		}
		return c
	})

	out := make([]Comment, len(comments))
	for i, idx := range order {
		out[i] = comments[idx]
	}
	return out
}

// comparatorFor returns a comparison over indices into comments for column.
func comparatorFor(column SortColumn, comments []Comment) func(a, b int) int {
	switch column {
	case ColumnPostID:
		return func(a, b int) int {
			return cmp.Compare(comments[a].PostID, comments[b].PostID)
		}
	case ColumnName:
		keys := foldedKeys(comments, func(c Comment) string { return c.Name })
		return func(a, b int) int { return strings.Compare(keys[a], keys[b]) }
	case ColumnEmail:
		keys := foldedKeys(comments, func(c Comment) string { return c.Email })
		return func(a, b int) int { return strings.Compare(keys[a], keys[b]) }
	default:
		return func(int, int) int { return 0 }
	}
}

func foldedKeys(comments []Comment, field func(Comment) string) []string {
	fold := cases.Fold()
	keys := make([]string, len(comments))
	for i, c := range comments {
		keys[i] = fold.String(field(c))
	}
	return keys
}

// NextSort returns the sort that follows current when column is selected:
// unsorted or another column starts at Ascending, Ascending moves to
// Descending, and Descending clears the sort.
func NextSort(current *SortSpec, column SortColumn) *SortSpec {
	if current == nil || current.Column != column {
		return &SortSpec{Column: column, Direction: Ascending}
	}
	switch current.Direction {
	case Ascending:
		return &SortSpec{Column: column, Direction: Descending}
	case Descending:
		return nil
	default:
		return &SortSpec{Column: column, Direction: Ascending}
	}
}
