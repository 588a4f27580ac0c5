// internal/app/system/refdata/source.go
package refdata

import (
	"context"

	"github.com/dalemusser/diocesehub/internal/app/system/backend"
	"github.com/dalemusser/diocesehub/internal/domain/models"
)

type backendSource struct {
	c *backend.Client
}

// NewBackendSource adapts a backend client to Source.
func NewBackendSource(c *backend.Client) Source {
	return backendSource{c: c}
}

func (s backendSource) States(ctx context.Context) ([]models.State, error) {
	return s.c.States.List(ctx)
}

func (s backendSource) Dioceses(ctx context.Context) ([]models.Diocese, error) {
	return s.c.Dioceses.List(ctx)
}

func (s backendSource) Parishes(ctx context.Context) ([]models.Parish, error) {
	return s.c.Parishes.List(ctx)
}
