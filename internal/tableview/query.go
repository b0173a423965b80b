package tableview

// PageRequest is the canonical payload a datatable endpoint accepts:
// a row window, the active column filters, and an empty or single-element
// sort model.
type PageRequest struct {
	StartRow    int                    `json:"startRow"`
	EndRow      int                    `json:"endRow"`
	FilterModel map[string]FilterEntry `json:"filterModel"`
	SortModel   []SortEntry            `json:"sortModel"`
}

// Page is a datatable endpoint's response: one window of rows plus the
// total row count the filters match.
type Page[R any] struct {
	RowData  []R   `json:"rowData"`
	RowCount int64 `json:"rowCount"`
}

// TableQuery composes the filter, sort, and pagination models. It is the
// single unit serialized into each fetch request; any change to any part
// is grounds for a refetch.
type TableQuery struct {
	Filters *FilterModel
	Sort    *SortState
	Window  *PageWindow
}

// NewTableQuery returns a query with no filters, no sort, and a window on
// page 0 of the given size.
func NewTableQuery(pageSize int) *TableQuery {
	return &TableQuery{
		Filters: NewFilterModel(),
		Sort:    NewSortState(),
		Window:  NewPageWindow(pageSize),
	}
}

// Request serializes the current query state into a page request.
func (q *TableQuery) Request() PageRequest {
	return PageRequest{
		StartRow:    q.Window.StartRow(),
		EndRow:      q.Window.EndRow(),
		FilterModel: q.Filters.Snapshot(),
		SortModel:   q.Sort.Entries(),
	}
}
