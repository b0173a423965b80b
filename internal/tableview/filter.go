package tableview

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// FilterKind identifies the UI control a column filter originates from and
// drives how raw input is normalized before it is sent to the server.
type FilterKind int

const (
	FilterText FilterKind = iota
	FilterDate
	FilterAutocomplete
)

// String returns the wire representation of the filter kind.
func (k FilterKind) String() string {
	switch k {
	case FilterText:
		return "text"
	case FilterDate:
		return "date"
	case FilterAutocomplete:
		return "autocomplete"
	default:
		return "text"
	}
}

// MarshalJSON serializes the kind as its wire string.
func (k FilterKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON parses the wire string back into a FilterKind.
// Unknown kinds fall back to text.
func (k *FilterKind) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(data), `"`) {
	case "date":
		*k = FilterDate
	case "autocomplete":
		*k = FilterAutocomplete
	default:
		*k = FilterText
	}
	return nil
}

// Operator is the comparison a column filter applies server-side.
type Operator int

const (
	OpContains Operator = iota
	OpEquals
)

// String returns the wire representation of the operator.
func (o Operator) String() string {
	if o == OpEquals {
		return "equals"
	}
	return "contains"
}

// MarshalJSON serializes the operator as its wire string.
func (o Operator) MarshalJSON() ([]byte, error) {
	return []byte(`"` + o.String() + `"`), nil
}

// UnmarshalJSON parses the wire string back into an Operator.
func (o *Operator) UnmarshalJSON(data []byte) error {
	if strings.Trim(string(data), `"`) == "equals" {
		*o = OpEquals
	} else {
		*o = OpContains
	}
	return nil
}

// FilterEntry is one column's active filter as serialized into a page request.
type FilterEntry struct {
	Filter     string     `json:"filter"`
	FilterType FilterKind `json:"filterType"`
	Type       Operator   `json:"type"`
}

// FilterModel maps column IDs to their active filter. A column with no entry
// is unfiltered; setting an empty value removes the entry rather than storing
// a vacuous filter.
type FilterModel struct {
	entries map[string]FilterEntry
}

// NewFilterModel returns an empty filter model.
func NewFilterModel() *FilterModel {
	return &FilterModel{entries: make(map[string]FilterEntry)}
}

// Set normalizes raw by kind and upserts the column's filter entry.
// A normalized value that comes out empty removes the entry instead.
func (m *FilterModel) Set(columnID, raw string, kind FilterKind, op Operator) {
	if columnID == "" {
		return
	}

	value := normalizeFilterValue(raw, kind)
	if value == "" {
		delete(m.entries, columnID)
		return
	}

	m.entries[columnID] = FilterEntry{
		Filter:     value,
		FilterType: kind,
		Type:       op,
	}
}

// SetOption upserts an autocomplete filter from a selected option.
// A nil option clears the column.
func (m *FilterModel) SetOption(columnID string, opt *Option) {
	if opt == nil {
		m.Clear(columnID)
		return
	}
	m.Set(columnID, strconv.FormatInt(opt.ID, 10), FilterAutocomplete, OpEquals)
}

// Clear removes the column's filter entry.
func (m *FilterModel) Clear(columnID string) {
	delete(m.entries, columnID)
}

// Get returns the column's filter entry, if any.
func (m *FilterModel) Get(columnID string) (FilterEntry, bool) {
	entry, ok := m.entries[columnID]
	return entry, ok
}

// Len returns the number of active filters.
func (m *FilterModel) Len() int {
	return len(m.entries)
}

// Columns returns the filtered column IDs in sorted order so serialized
// requests are reproducible.
func (m *FilterModel) Columns() []string {
	columns := make([]string, 0, len(m.entries))
	for id := range m.entries {
		columns = append(columns, id)
	}
	sort.Strings(columns)
	return columns
}

// Snapshot returns a copy of the mapping suitable for a request payload.
func (m *FilterModel) Snapshot() map[string]FilterEntry {
	snapshot := make(map[string]FilterEntry, len(m.entries))
	for id, entry := range m.entries {
		snapshot[id] = entry
	}
	return snapshot
}

// Reset removes every filter entry.
func (m *FilterModel) Reset() {
	m.entries = make(map[string]FilterEntry)
}

// normalizeFilterValue applies the per-kind normalization rules. Date values
// are reduced to yyyy-MM-dd; autocomplete values are expected to already be
// option IDs. The switch is exhaustive over FilterKind.
func normalizeFilterValue(raw string, kind FilterKind) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}

	switch kind {
	case FilterText:
		return value
	case FilterDate:
		return normalizeDate(value)
	case FilterAutocomplete:
		return value
	default:
		return value
	}
}

// normalizeDate formats a date input as yyyy-MM-dd. Inputs already in that
// form pass through; richer timestamps are truncated to the date. Anything
// unparseable is kept verbatim and left to the server to reject.
func normalizeDate(value string) string {
	layouts := []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05", "01/02/2006"}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format("2006-01-02")
		}
	}
	return value
}
