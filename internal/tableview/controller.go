package tableview

import (
	"context"
	"sync"
)

// State is the fetch lifecycle of a remote table.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateFailure
)

// String returns a readable state name for logs and test failures.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// DataSource fetches one page of rows for a table. Implementations are
// expected to fail with an error on network or server trouble rather than
// returning a partial page.
type DataSource[R any] interface {
	FetchPage(ctx context.Context, req PageRequest) (Page[R], error)
}

// Snapshot is an immutable view of controller state handed to listeners.
type Snapshot[R any] struct {
	State      State
	Rows       []R
	TotalCount int64
	Err        error
}

// Controller synchronizes a table query against a remote datatable endpoint.
// Every change to filters, sort, or pagination supersedes any in-flight fetch:
// each fetch carries a generation number and a response is discarded when a
// newer request has started since, so a slow response can never overwrite a
// fresher one. On failure the previous rows and total are retained so the
// view keeps showing the last good page.
type Controller[R any] struct {
	mu     sync.Mutex
	source DataSource[R]
	query  *TableQuery

	generation uint64
	state      State
	rows       []R
	totalCount int64
	lastErr    error

	listener func(Snapshot[R])
}

// NewController returns an idle controller over the given data source with
// an empty query on page 0 of the given size.
func NewController[R any](source DataSource[R], pageSize int) *Controller[R] {
	return &Controller[R]{
		source: source,
		query:  NewTableQuery(pageSize),
		state:  StateIdle,
	}
}

// SetListener registers a callback invoked after every state change.
// The callback runs on the goroutine that caused the change.
func (c *Controller[R]) SetListener(fn func(Snapshot[R])) {
	c.mu.Lock()
	c.listener = fn
	c.mu.Unlock()
}

// SetFilter updates one column filter and refetches.
func (c *Controller[R]) SetFilter(ctx context.Context, columnID, raw string, kind FilterKind, op Operator) {
	c.mu.Lock()
	c.query.Filters.Set(columnID, raw, kind, op)
	c.mu.Unlock()
	c.Refresh(ctx)
}

// ClearFilter removes one column filter and refetches.
func (c *Controller[R]) ClearFilter(ctx context.Context, columnID string) {
	c.mu.Lock()
	c.query.Filters.Clear(columnID)
	c.mu.Unlock()
	c.Refresh(ctx)
}

// RequestSort applies a header click and refetches. Clicks on the empty
// column ID are ignored entirely, including the refetch.
func (c *Controller[R]) RequestSort(ctx context.Context, columnID string) {
	if columnID == "" {
		return
	}
	c.mu.Lock()
	c.query.Sort.RequestSort(columnID)
	c.mu.Unlock()
	c.Refresh(ctx)
}

// GoToPage moves the window and refetches.
func (c *Controller[R]) GoToPage(ctx context.Context, page int) {
	c.mu.Lock()
	c.query.Window.GoTo(page)
	c.mu.Unlock()
	c.Refresh(ctx)
}

// SetPageSize changes the page size, resets to page 0, and refetches.
func (c *Controller[R]) SetPageSize(ctx context.Context, size int) {
	c.mu.Lock()
	c.query.Window.SetPageSize(size)
	c.mu.Unlock()
	c.Refresh(ctx)
}

// Refresh starts an asynchronous fetch of the current query, superseding any
// fetch still in flight. The UI stays responsive while it runs.
func (c *Controller[R]) Refresh(ctx context.Context) {
	gen, req := c.begin()
	go func() {
		page, err := c.source.FetchPage(ctx, req)
		c.finish(gen, page, err)
	}()
}

// Reload performs a synchronous fetch of the current query and returns the
// fetch error, if any. Like Refresh it supersedes older in-flight fetches.
func (c *Controller[R]) Reload(ctx context.Context) error {
	gen, req := c.begin()
	page, err := c.source.FetchPage(ctx, req)
	c.finish(gen, page, err)
	return err
}

// begin bumps the generation, snapshots the request, and enters Loading.
func (c *Controller[R]) begin() (uint64, PageRequest) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	req := c.query.Request()
	c.state = StateLoading
	snapshot := c.snapshotLocked()
	listener := c.listener
	c.mu.Unlock()

	if listener != nil {
		listener(snapshot)
	}
	return gen, req
}

// finish applies a fetch result unless a newer fetch has started since.
func (c *Controller[R]) finish(gen uint64, page Page[R], err error) {
	c.mu.Lock()
	if gen != c.generation {
		// Superseded; a fresher request owns the state now.
		c.mu.Unlock()
		return
	}

	if err != nil {
		c.state = StateFailure
		c.lastErr = err
	} else {
		c.state = StateSuccess
		c.lastErr = nil
		c.rows = page.RowData
		c.totalCount = page.RowCount
	}
	snapshot := c.snapshotLocked()
	listener := c.listener
	c.mu.Unlock()

	if listener != nil {
		listener(snapshot)
	}
}

// Snapshot returns the current view state.
func (c *Controller[R]) Snapshot() Snapshot[R] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller[R]) snapshotLocked() Snapshot[R] {
	rows := make([]R, len(c.rows))
	copy(rows, c.rows)
	return Snapshot[R]{
		State:      c.state,
		Rows:       rows,
		TotalCount: c.totalCount,
		Err:        c.lastErr,
	}
}

// Rows returns the last successfully fetched page.
func (c *Controller[R]) Rows() []R {
	return c.Snapshot().Rows
}

// TotalCount returns the total row count the current filters match.
func (c *Controller[R]) TotalCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalCount
}

// State returns the current fetch state.
func (c *Controller[R]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the most recent fetch error, cleared by the next success.
func (c *Controller[R]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Loading reports whether a fetch is in flight.
func (c *Controller[R]) Loading() bool {
	return c.State() == StateLoading
}

// NotFound reports whether the view should show its empty state: no rows
// and no fetch in flight.
func (c *Controller[R]) NotFound() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.rows) == 0 && c.state != StateLoading
}

// EmptyRowPadding returns the filler row count for the current window.
func (c *Controller[R]) EmptyRowPadding() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.Window.EmptyRowPadding(int(c.totalCount))
}

// Filters exposes the filter model for read access in views.
func (c *Controller[R]) Filters() *FilterModel {
	return c.query.Filters
}

// Sort exposes the sort state for read access in views.
func (c *Controller[R]) Sort() *SortState {
	return c.query.Sort
}

// Window exposes the page window for read access in views.
func (c *Controller[R]) Window() *PageWindow {
	return c.query.Window
}

// Request returns the page request the current query would serialize to.
func (c *Controller[R]) Request() PageRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.Request()
}
