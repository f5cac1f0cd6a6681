package view

import "fmt"

// WindowSize is the number of page buttons shown at once.
const WindowSize = 5

// TotalPages is ceil(n/PageSize), never less than one.
func TotalPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

// ClampPage keeps page within [1, total].
func ClampPage(page, total int) int {
	if total < 1 {
		total = 1
	}
	return max(1, min(page, total))
}

// PageSlice returns the items of the 1-based page. Out of range pages are empty.
func PageSlice[T any](items []T, page int) []T {
	if page < 1 {
		return nil
	}
	start := (page - 1) * PageSize
	if start >= len(items) {
		return nil
	}
	return items[start:min(start+PageSize, len(items))]
}

// Window returns the page numbers to show as buttons: up to WindowSize pages
// centred on current, shifted to stay inside [1, total].
func Window(current, total int) []int {
	if total < 1 {
		total = 1
	}
	current = ClampPage(current, total)

	start := max(1, current-2)
	end := min(total, current+2)
	if current <= 3 {
		end = min(WindowSize, total)
	}
	if current >= total-2 {
		start = max(1, total-WindowSize+1)
	}

	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}

type PageButton struct {
	N       int
	Current bool
}

// Controls is the pagination bar model.
type Controls struct {
	Current int
	Total   int
	Prev    bool // enabled
	Next    bool // enabled
	Pages   []PageButton
	// First and Last are shortcuts shown when the window does not reach the ends;
	// the gaps are set when pages are skipped between the shortcut and the window.
	First       bool
	LeadingGap  bool
	Last        bool
	TrailingGap bool
	Label       string
}

func NewControls(current, total int) Controls {
	total = max(1, total)
	current = ClampPage(current, total)
	win := Window(current, total)

	c := Controls{
		Current: current,
		Total:   total,
		Prev:    current > 1,
		Next:    current < total,
		Label:   fmt.Sprintf("Page %d of %d", current, total),
	}
	for _, n := range win {
		c.Pages = append(c.Pages, PageButton{N: n, Current: n == current})
	}
	first, last := win[0], win[len(win)-1]
	c.First = first > 1
	c.LeadingGap = first > 2
	c.Last = last < total
	c.TrailingGap = last < total-1
	return c
}
