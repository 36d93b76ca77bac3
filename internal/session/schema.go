package session

import (
	"context"

	"clinic-admin/internal/reconcile"
)

// Gateway is the remote side of a session. *gateway.Resource satisfies it.
type Gateway[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, id uint, record T) (T, error)
	Delete(ctx context.Context, id uint) error
}

// Field is one editable scalar of a record, addressed by its wire name.
type Field[T any] struct {
	Name  string
	Label string
	Set   func(record *T, value string) error
	Get   func(record T) string
}

// Schema describes one entity kind: where it lives, how to copy it, what
// the user can edit and what to tell them afterwards.
type Schema[T any] struct {
	Kind     string
	Path     string
	Messages reconcile.Messages
	ID       func(T) uint
	Blank    func() T
	Clone    func(T) T
	// Encode builds the write body; nil sends the record as is.
	Encode func(T) interface{}
	Fields []Field[T]
}

// Field looks up a field by wire name.
func (s Schema[T]) Field(name string) (Field[T], bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field[T]{}, false
}

func (s Schema[T]) clone(record T) T {
	if s.Clone == nil {
		return record
	}
	return s.Clone(record)
}
