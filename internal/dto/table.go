package dto

// TableResponse is the response body of the datatable query endpoints.
// RowData carries one page of rows and RowCount the total the filters match.
type TableResponse[R any] struct {
	RowData  []R   `json:"rowData"`
	RowCount int64 `json:"rowCount"`
}
