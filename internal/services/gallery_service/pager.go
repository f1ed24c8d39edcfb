package services

import "strconv"

const (
	maxVisiblePages = 5
	quickJumpPages  = 10
	ellipsis        = "…"
)

// PagerEntry is a page number or, when Ellipsis is set, a gap marker.
type PagerEntry struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

func (e PagerEntry) String() string {
	if e.Ellipsis {
		return ellipsis
	}

	return strconv.Itoa(e.Page)
}

func pages(from, to int) []PagerEntry {
	out := make([]PagerEntry, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, PagerEntry{Page: i})
	}

	return out
}

// PagerWindow returns at most seven entries: the first and last page, the
// current page with one neighbour on each side, and gap markers between them.
// A total below 1 is treated as a single page.
func PagerWindow(current, total int) []PagerEntry {
	gap := PagerEntry{Ellipsis: true}

	total = max(total, 1)

	switch {
	case total <= maxVisiblePages:
		return pages(1, total)
	case current <= 3:
		return append(pages(1, 4), gap, PagerEntry{Page: total})
	case current >= total-2:
		return append([]PagerEntry{{Page: 1}, gap}, pages(total-3, total)...)
	default:
		out := []PagerEntry{{Page: 1}, gap}
		out = append(out, pages(current-1, current+1)...)
		return append(out, gap, PagerEntry{Page: total})
	}
}
