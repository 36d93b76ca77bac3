package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// Resource is the CRUD surface of one REST collection, e.g. /api/pacientes.
type Resource[T any] struct {
	client *Client
	path   string
	encode func(T) interface{}
}

// NewResource binds a collection path to c. encode turns a record into its
// write body; nil sends the record itself.
func NewResource[T any](c *Client, path string, encode func(T) interface{}) *Resource[T] {
	return &Resource[T]{client: c, path: path, encode: encode}
}

func (r *Resource[T]) Path() string {
	return r.path
}

// List fetches the whole collection.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var records []T
	if err := r.client.do(ctx, http.MethodGet, r.path, nil, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// Create posts a new record and returns the server's view of it, id included.
func (r *Resource[T]) Create(ctx context.Context, record T) (T, error) {
	var created T
	err := r.client.do(ctx, http.MethodPost, r.path, r.body(record), &created)
	return created, err
}

// Update replaces the record stored under id.
func (r *Resource[T]) Update(ctx context.Context, id uint, record T) (T, error) {
	var updated T
	err := r.client.do(ctx, http.MethodPut, r.itemPath(id), r.body(record), &updated)
	return updated, err
}

func (r *Resource[T]) Delete(ctx context.Context, id uint) error {
	return r.client.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
}

func (r *Resource[T]) itemPath(id uint) string {
	return fmt.Sprintf("%s/%d", r.path, id)
}

func (r *Resource[T]) body(record T) interface{} {
	if r.encode == nil {
		return record
	}
	return r.encode(record)
}
