package tableview

import (
	"context"
	"fmt"
	"sync"
)

// Store runs create/update/delete mutations for one entity kind. F is the
// entity's draft field payload.
type Store[F any] interface {
	Create(ctx context.Context, fields F) error
	Update(ctx context.Context, id int64, fields F) error
	Delete(ctx context.Context, id int64) error
}

// Refresher re-fetches a table using its current query state. Satisfied by
// Controller, whose Refresh preserves filters, sort, and page.
type Refresher interface {
	Refresh(ctx context.Context)
}

// Notifier receives the transient success and error notifications mutations
// produce. Error messages carry the collaborator's text verbatim.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// MutationState is the lifecycle of a single mutation.
type MutationState int

const (
	MutationIdle MutationState = iota
	MutationSubmitting
)

// Mutator coordinates create/update/delete for one entity kind against a
// Store, refreshing the table on success so the user's filters, sort, and
// page survive every mutation. Deletes go through an explicit two-step
// confirmation: RequestDelete stages a target without touching the network,
// ConfirmDelete performs the call, CancelDelete discards the target.
type Mutator[F any] struct {
	mu        sync.Mutex
	store     Store[F]
	refresher Refresher
	notifier  Notifier
	label     string

	state         MutationState
	pendingDelete *int64
}

// NewMutator returns an idle mutator. label names the entity in
// notifications ("Income", "Expense", "Item").
func NewMutator[F any](store Store[F], refresher Refresher, notifier Notifier, label string) *Mutator[F] {
	return &Mutator[F]{
		store:     store,
		refresher: refresher,
		notifier:  notifier,
		label:     label,
	}
}

// Create submits a new entity. On success it notifies and refreshes the
// table; on failure it surfaces the error text and leaves the table alone.
func (m *Mutator[F]) Create(ctx context.Context, fields F) error {
	return m.submit(ctx, "added", func() error {
		return m.store.Create(ctx, fields)
	})
}

// Update submits changed fields for an existing entity.
func (m *Mutator[F]) Update(ctx context.Context, id int64, fields F) error {
	return m.submit(ctx, "updated", func() error {
		return m.store.Update(ctx, id, fields)
	})
}

func (m *Mutator[F]) submit(ctx context.Context, verb string, op func() error) error {
	m.setState(MutationSubmitting)
	defer m.setState(MutationIdle)

	if err := op(); err != nil {
		m.notifier.Error(err.Error())
		return err
	}

	m.notifier.Success(fmt.Sprintf("%s %s successfully", m.label, verb))
	m.refresher.Refresh(ctx)
	return nil
}

// RequestDelete stages id for deletion and performs no network call. A
// second request while one is pending silently overwrites the target,
// matching the confirmation dialog being re-opened for the new row.
func (m *Mutator[F]) RequestDelete(id int64) {
	m.mu.Lock()
	target := id
	m.pendingDelete = &target
	m.mu.Unlock()
}

// PendingDelete returns the staged delete target, if any.
func (m *Mutator[F]) PendingDelete() (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pendingDelete == nil {
		return 0, false
	}
	return *m.pendingDelete, true
}

// ConfirmDelete performs exactly one delete call for the staged target and,
// on success, one refresh with the query state current at confirmation time.
// The staged target is cleared whether the call succeeds or fails. With no
// target staged it is a no-op.
func (m *Mutator[F]) ConfirmDelete(ctx context.Context) error {
	m.mu.Lock()
	if m.pendingDelete == nil {
		m.mu.Unlock()
		return nil
	}
	id := *m.pendingDelete
	m.pendingDelete = nil
	m.state = MutationSubmitting
	m.mu.Unlock()

	defer m.setState(MutationIdle)

	if err := m.store.Delete(ctx, id); err != nil {
		m.notifier.Error(err.Error())
		return err
	}

	m.notifier.Success(fmt.Sprintf("%s deleted successfully", m.label))
	m.refresher.Refresh(ctx)
	return nil
}

// CancelDelete discards the staged target with no network effect.
func (m *Mutator[F]) CancelDelete() {
	m.mu.Lock()
	m.pendingDelete = nil
	m.mu.Unlock()
}

// State returns the current mutation state.
func (m *Mutator[F]) State() MutationState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mutator[F]) setState(s MutationState) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}
