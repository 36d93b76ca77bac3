// Package session holds the list/draft state of one entity kind and runs the
// open, edit, save and delete cycle against a Gateway.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"clinic-admin/internal/reconcile"

	"github.com/rs/zerolog"
)

var (
	ErrNoDraft      = errors.New("no record is being edited")
	ErrUnknownField = errors.New("unknown field")
)

type State int

const (
	StateIdle State = iota
	StateEditing
	StateCreating
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateCreating:
		return "creating"
	}
	return "unknown"
}

// Session is the edit session of one entity kind. At most one draft is live
// at a time; the list is only ever replaced wholesale.
type Session[T any] struct {
	schema  Schema[T]
	gateway Gateway[T]
	policy  *reconcile.Policy

	mu      sync.Mutex
	list    []T
	draft   *T
	isNew   bool
	visible bool
}

// New creates an idle session with an empty list. A nil policy never
// confirms deletes and emits nothing.
func New[T any](schema Schema[T], gw Gateway[T], policy *reconcile.Policy) *Session[T] {
	if policy == nil {
		policy = reconcile.NewPolicy(nil, nil, zerolog.Nop())
	}
	return &Session[T]{
		schema:  schema,
		gateway: gw,
		policy:  policy,
		list:    []T{},
	}
}

func (s *Session[T]) Kind() string {
	return s.schema.Kind
}

func (s *Session[T]) Schema() Schema[T] {
	return s.schema
}

// List returns a copy of the last successfully loaded list.
func (s *Session[T]) List() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.list))
	for i, r := range s.list {
		out[i] = s.schema.clone(r)
	}
	return out
}

// Find returns a copy of the listed record with the given id.
func (s *Session[T]) Find(id uint) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.list {
		if s.schema.ID(r) == id {
			return s.schema.clone(r), true
		}
	}
	var zero T
	return zero, false
}

// Replace swaps in a freshly fetched list.
func (s *Session[T]) Replace(records []T) {
	list := make([]T, len(records))
	copy(list, records)
	s.mu.Lock()
	s.list = list
	s.mu.Unlock()
}

// Fetch asks the gateway for the full list without touching the session.
func (s *Session[T]) Fetch(ctx context.Context) ([]T, error) {
	records, err := s.gateway.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.schema.Kind, err)
	}
	return records, nil
}

// Reload fetches the full list. On failure the current list is kept.
func (s *Session[T]) Reload(ctx context.Context) error {
	records, err := s.Fetch(ctx)
	if err != nil {
		return err
	}
	s.Replace(records)
	return nil
}

// Open starts a dialog. With a record the draft is a deep copy of it and the
// session is Editing; without one the draft is blank and it is Creating.
func (s *Session[T]) Open(record *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var draft T
	if record != nil {
		draft = s.schema.clone(*record)
	} else {
		draft = s.schema.Blank()
	}
	s.draft = &draft
	s.isNew = record == nil
	s.visible = true
}

// Close hides the dialog and discards the draft.
func (s *Session[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = nil
	s.visible = false
}

func (s *Session[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case !s.visible || s.draft == nil:
		return StateIdle
	case s.isNew:
		return StateCreating
	default:
		return StateEditing
	}
}

func (s *Session[T]) IsNew() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isNew
}

func (s *Session[T]) DialogVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Draft returns a copy of the record being edited.
func (s *Session[T]) Draft() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		var zero T
		return zero, false
	}
	return s.schema.clone(*s.draft), true
}

// Set assigns one field of the draft from its text form. A value that does
// not parse leaves the draft untouched.
func (s *Session[T]) Set(field, value string) error {
	f, ok := s.schema.Field(field)
	if !ok {
		return fmt.Errorf("%s: %w %q", s.schema.Kind, ErrUnknownField, field)
	}
	var setErr error
	err := s.Mutate(func(draft *T) {
		next := s.schema.clone(*draft)
		if setErr = f.Set(&next, value); setErr == nil {
			*draft = next
		}
	})
	if err != nil {
		return err
	}
	if setErr != nil {
		return fmt.Errorf("%s.%s: %w", s.schema.Kind, field, setErr)
	}
	return nil
}

// Mutate edits the draft in place. The list is not touched.
func (s *Session[T]) Mutate(fn func(draft *T)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil || !s.visible {
		return ErrNoDraft
	}
	fn(s.draft)
	return nil
}

// Save creates or updates the draft depending on the session mode. On
// success the dialog closes and the list is reloaded; on failure the draft
// and the dialog stay exactly as they were.
func (s *Session[T]) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.draft == nil || !s.visible {
		s.mu.Unlock()
		return ErrNoDraft
	}
	record := s.schema.clone(*s.draft)
	isNew := s.isNew
	s.mu.Unlock()

	op := reconcile.OpUpdate
	var err error
	if isNew {
		op = reconcile.OpCreate
		_, err = s.gateway.Create(ctx, record)
	} else {
		_, err = s.gateway.Update(ctx, s.schema.ID(record), record)
	}

	d := s.policy.OnMutationResult(s.schema.Kind, op, s.schema.Messages, err)
	if err != nil {
		return fmt.Errorf("save %s: %w", s.schema.Kind, err)
	}
	if d.CloseDialog {
		s.Close()
	}
	if d.Reload {
		s.reloadAfterMutation(ctx)
	}
	return nil
}

// Delete asks for confirmation and, only if accepted, deletes the record and
// reloads the list. The result reports whether the user accepted.
func (s *Session[T]) Delete(ctx context.Context, id uint) (bool, error) {
	accepted, err := s.policy.ConfirmBeforeDelete(ctx, s.schema.Messages.Confirm, func() error {
		return s.gateway.Delete(ctx, id)
	})
	if !accepted {
		return false, nil
	}

	d := s.policy.OnMutationResult(s.schema.Kind, reconcile.OpDelete, s.schema.Messages, err)
	if err != nil {
		return true, fmt.Errorf("delete %s %d: %w", s.schema.Kind, id, err)
	}
	if d.Reload {
		s.reloadAfterMutation(ctx)
	}
	return true, nil
}

// reloadAfterMutation does not undo a mutation that already succeeded; a
// failed reload only leaves the list stale and tells the user.
func (s *Session[T]) reloadAfterMutation(ctx context.Context) {
	if err := s.Reload(ctx); err != nil {
		s.policy.OnLoadFailure(s.schema.Kind, s.schema.Messages, err)
	}
}
