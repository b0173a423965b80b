package tableview

// DefaultPageSize is used when a window is created without an explicit size.
const DefaultPageSize = 10

// PageWindow is a zero-based page index plus page size, derived into the
// row offset window sent to the server.
type PageWindow struct {
	page     int
	pageSize int
}

// NewPageWindow returns a window on page 0 with the given page size,
// falling back to DefaultPageSize for non-positive sizes.
func NewPageWindow(pageSize int) *PageWindow {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &PageWindow{pageSize: pageSize}
}

// GoTo moves to page n. No upper bound is enforced: the server is
// authoritative on the total count and a page past the data simply yields
// an empty result set. Negative pages clamp to 0.
func (w *PageWindow) GoTo(n int) {
	if n < 0 {
		n = 0
	}
	w.page = n
}

// SetPageSize changes the page size and resets to page 0 so the window
// cannot land past the new last page. Non-positive sizes are ignored.
func (w *PageWindow) SetPageSize(n int) {
	if n <= 0 {
		return
	}
	w.pageSize = n
	w.page = 0
}

// Page returns the zero-based page index.
func (w *PageWindow) Page() int {
	return w.page
}

// PageSize returns the page size.
func (w *PageWindow) PageSize() int {
	return w.pageSize
}

// StartRow returns the first row offset of the window.
func (w *PageWindow) StartRow() int {
	return w.page * w.pageSize
}

// EndRow returns the exclusive end offset of the window.
func (w *PageWindow) EndRow() int {
	return w.StartRow() + w.pageSize
}

// EmptyRowPadding returns how many filler rows the view needs to keep the
// table height stable on the last page, and 0 on full pages.
func (w *PageWindow) EmptyRowPadding(totalCount int) int {
	if totalCount < 0 {
		totalCount = 0
	}
	if w.EndRow() < totalCount {
		return 0
	}
	padding := w.EndRow() - totalCount
	if padding < 0 {
		return 0
	}
	return padding
}
