package engine

import "strconv"

// maxFullWindow is the largest page count for which every page is labelled.
const maxFullWindow = 3

// EllipsisLabel is the text of a gap marker in a page window.
const EllipsisLabel = "..."

// PageLabel is one entry of a page window: either a page number or a gap.
type PageLabel struct {
	Page     int
	Ellipsis bool
}

// String renders the label as the page number or "...".
func (l PageLabel) String() string {
	if l.Ellipsis {
		return EllipsisLabel
	}
	return strconv.Itoa(l.Page)
}

func pageLabel(page int) PageLabel { return PageLabel{Page: page} }

func ellipsis() PageLabel { return PageLabel{Ellipsis: true} }

// TotalPages returns max(1, ceil(count/pageSize)).
func TotalPages(count, pageSize int) int {
	if pageSize < 1 || count <= 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

// PageWindow returns the compact page labels for a pagination bar. Up to
// three pages are all listed. Otherwise the first and last pages are always
// present, the current page is shown with its neighbours, and gaps are
// marked with an ellipsis.
func PageWindow(currentPage, totalPages int) []PageLabel {
	if totalPages < 1 {
		return nil
	}

	if totalPages <= maxFullWindow {
		labels := make([]PageLabel, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			labels = append(labels, pageLabel(i))
		}
		return labels
	}

	labels := []PageLabel{pageLabel(1)}
	if currentPage > maxFullWindow {
		labels = append(labels, ellipsis())
	}

	start := max(2, currentPage-1)
	end := min(totalPages-1, currentPage+1)
	for i := start; i <= end; i++ {
		if i != 1 && i != totalPages {
			labels = append(labels, pageLabel(i))
		}
	}

	if currentPage < totalPages-2 {
		labels = append(labels, ellipsis())
	}
	if totalPages > 1 {
		labels = append(labels, pageLabel(totalPages))
	}
	return labels
}

// DisplayRange is the 1-based item range shown on the current page. When the
// filtered list is empty, Empty is set and Start/End are zero.
type DisplayRange struct {
	Start int
	End   int
	Total int
	Empty bool
}

// NewDisplayRange computes the item range for page of size pageSize over
// total items.
func NewDisplayRange(page, pageSize, total int) DisplayRange {
	if total <= 0 || pageSize < 1 {
		return DisplayRange{Empty: true}
	}
	return DisplayRange{
		Start: (page-1)*pageSize + 1,
		End:   min(page*pageSize, total),
		Total: total,
	}
}

// pageSlice returns the items of page (1-based) from items.
func pageSlice(items []Comment, page, pageSize int) []Comment {
	start := (page - 1) * pageSize
	if start < 0 || start >= len(items) {
		return []Comment{}
	}
	end := min(start+pageSize, len(items))
	return items[start:end]
}
