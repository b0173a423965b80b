package tableview

// Direction is a sort direction as serialized into a page request.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortEntry is the single element of a request's sort model.
type SortEntry struct {
	ColID string    `json:"colId"`
	Sort  Direction `json:"sort"`
}

// SortState tracks the single active sort column. Tables sort by at most one
// column at a time; the server applies its own default ordering when no sort
// is active.
type SortState struct {
	column    string
	direction Direction
}

// NewSortState returns a state with no active sort.
func NewSortState() *SortState {
	return &SortState{}
}

// RequestSort handles a header click: the active column flips direction,
// a new column starts ascending. The empty column ID belongs to unlabeled
// action columns and is ignored.
func (s *SortState) RequestSort(columnID string) {
	if columnID == "" {
		return
	}

	if s.column == columnID && s.direction == Ascending {
		s.direction = Descending
		return
	}

	s.column = columnID
	s.direction = Ascending
}

// Active reports whether a sort column is set.
func (s *SortState) Active() bool {
	return s.column != ""
}

// Column returns the active sort column, or "" when none.
func (s *SortState) Column() string {
	return s.column
}

// Direction returns the active sort direction.
func (s *SortState) Direction() Direction {
	return s.direction
}

// Entries returns the request sort model: empty, or a single entry.
func (s *SortState) Entries() []SortEntry {
	if s.column == "" {
		return []SortEntry{}
	}
	return []SortEntry{{ColID: s.column, Sort: s.direction}}
}

// Reset clears the active sort.
func (s *SortState) Reset() {
	s.column = ""
	s.direction = ""
}
