package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/commentdash/internal/engine"
)

// EmptyResultMessage is shown instead of the table when nothing matches.
const EmptyResultMessage = "No comments found matching your search criteria."

// Sort indicators shown next to each sortable column.
const (
	IndicatorUnsorted   = "↕"
	IndicatorAscending  = "↑"
	IndicatorDescending = "↓"
)

// Table column widths. The comment column takes the remaining width.
const (
	colWidthPostID   = 8
	colWidthName     = 28
	colWidthEmail    = 26
	colMinComment    = 20
	colGap           = 2
	rowSelectorWidth = 2
	truncateTail     = "…"
)

const appTitle = "commentdash"

var numberPrinter = message.NewPrinter(language.English)

// FormatCount renders n with locale digit grouping, e.g. 1,234.
func FormatCount(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

// SortIndicator returns the indicator for a column sorted in dir.
func SortIndicator(dir engine.SortDirection) string {
	switch dir {
	case engine.Ascending:
		return IndicatorAscending
	case engine.Descending:
		return IndicatorDescending
	default:
		return IndicatorUnsorted
	}
}

// RenderHeader renders the title bar with the user's initials and name.
// A nil user renders as "U" / "User".
func RenderHeader(user *engine.User, width int) string {
	name := "User"
	initials := engine.Initials("")
	if user != nil {
		initials = engine.Initials(user.Name)
		if user.Name != "" {
			name = user.Name
		}
	}

	left := HeaderStyle.Render(appTitle)
	right := AvatarStyle.Render(initials) + " " + ValueStyle.Render(name)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// RenderSortBar renders one button per sortable column with its key and
// current indicator, e.g. "[1] Post ID ↕".
func RenderSortBar(view engine.DerivedView) string {
	buttons := make([]string, 0, len(engine.Columns()))
	for i, column := range engine.Columns() {
		dir := engine.DirectionNone
		if view.Sort != nil && view.Sort.Column == column {
			dir = view.Sort.Direction
		}
		label := "[" + strconv.Itoa(i+1) + "] " + string(column) + " " + SortIndicator(dir)
		if dir == engine.DirectionNone {
			buttons = append(buttons, LabelStyle.Render(label))
		} else {
			buttons = append(buttons, ActiveSortStyle.Render(label))
		}
	}
	return "Sort: " + strings.Join(buttons, "  ")
}

// RenderSummary renders "{start}-{end} of {total} items", or "" when the
// result is empty.
func RenderSummary(view engine.DerivedView) string {
	if view.Range.Empty {
		return ""
	}
	return FormatCount(view.Range.Start) + "-" + FormatCount(view.Range.End) +
		" of " + FormatCount(view.Range.Total) + " items"
}

// RenderPaginationBar renders previous/next controls around the page window,
// followed by the page size.
func RenderPaginationBar(view engine.DerivedView) string {
	var sb strings.Builder

	if view.HasPrevious() {
		sb.WriteString(ValueStyle.Render("‹ Prev"))
	} else {
		sb.WriteString(DisabledStyle.Render("‹ Prev"))
	}

	for _, label := range view.Pages {
		sb.WriteString(" ")
		switch {
		case label.Ellipsis:
			sb.WriteString(SubtleStyle.Render(label.String()))
		case label.Page == view.CurrentPage:
			sb.WriteString(CurrentPageStyle.Render(" " + label.String() + " "))
		default:
			sb.WriteString(ValueStyle.Render(label.String()))
		}
	}

	sb.WriteString(" ")
	if view.HasNext() {
		sb.WriteString(ValueStyle.Render("Next ›"))
	} else {
		sb.WriteString(DisabledStyle.Render("Next ›"))
	}

	sb.WriteString("   ")
	sb.WriteString(LabelStyle.Render(strconv.Itoa(view.PageSize) + " / Page"))
	return sb.String()
}

// commentColumnWidth returns the width left for the comment body.
func commentColumnWidth(width int) int {
	used := rowSelectorWidth + colWidthPostID + colWidthName + colWidthEmail + 3*colGap
	return max(width-used, colMinComment)
}

// RenderTableHeader renders the column titles.
func RenderTableHeader(width int) string {
	return TableHeaderStyle.Render(formatRow("", "Post ID", "Name", "Email", "Comment", width))
}

// RenderCommentRow renders one table row.
func RenderCommentRow(c engine.Comment, selected bool, width int) string {
	marker := ""
	if selected {
		marker = ">"
	}
	row := formatRow(marker, strconv.Itoa(c.PostID), c.Name, c.Email, singleLine(c.Body), width)
	if selected {
		return TableSelectedStyle.Render(row)
	}
	return row
}

func formatRow(marker, postID, name, email, body string, width int) string {
	sep := strings.Repeat(" ", colGap)
	return cell(marker, rowSelectorWidth) +
		cell(postID, colWidthPostID) + sep +
		cell(name, colWidthName) + sep +
		cell(email, colWidthEmail) + sep +
		ansi.Truncate(body, commentColumnWidth(width), truncateTail)
}

// cell truncates s to width and pads it with spaces.
func cell(s string, width int) string {
	s = ansi.Truncate(s, width, truncateTail)
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
