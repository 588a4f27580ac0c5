// internal/app/system/backend/resource.go
package backend

import (
	"context"
	"net/http"
	"strconv"
)

// Resource is the CRUD surface of one backend collection, e.g. /parishes.
type Resource[T any] struct {
	c    *Client
	name string
}

func newResource[T any](c *Client, name string) *Resource[T] {
	return &Resource[T]{c: c, name: name}
}

// Name returns the collection name ("states", "dioceses", ...).
func (r *Resource[T]) Name() string { return r.name }

func (r *Resource[T]) collection() string { return "/" + r.name }

func (r *Resource[T]) item(id int64) string {
	return "/" + r.name + "/" + strconv.FormatInt(id, 10)
}

// List fetches every record of the collection.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	resp, err := r.c.do(ctx, r.name, http.MethodGet, r.collection(), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[T](resp.body, resp.status)
}

// Search fetches the records matching f. A zero filter is the same as List.
func (r *Resource[T]) Search(ctx context.Context, f Filter) ([]T, error) {
	resp, err := r.c.do(ctx, r.name, http.MethodGet, r.collection(), f.Values(), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[T](resp.body, resp.status)
}

// Get fetches one record by id.
func (r *Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	resp, err := r.c.do(ctx, r.name, http.MethodGet, r.item(id), nil, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeOne[T](resp.body, resp.status)
}

// Create posts rec and returns the record as stored by the backend
// (with its server-assigned id).
func (r *Resource[T]) Create(ctx context.Context, rec T) (T, error) {
	resp, err := r.c.do(ctx, r.name, http.MethodPost, r.collection(), nil, rec)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeOne[T](resp.body, resp.status)
}

// Update replaces the record with the given id.
func (r *Resource[T]) Update(ctx context.Context, id int64, rec T) (T, error) {
	resp, err := r.c.do(ctx, r.name, http.MethodPut, r.item(id), nil, rec)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeOne[T](resp.body, resp.status)
}

// Delete removes the record with the given id.
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	resp, err := r.c.do(ctx, r.name, http.MethodDelete, r.item(id), nil, nil)
	if err != nil {
		return err
	}
	// Surface success=false envelopes on delete too.
	_, err = unwrap(resp.body, resp.status)
	return err
}
