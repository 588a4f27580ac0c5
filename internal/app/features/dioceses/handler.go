// internal/app/features/dioceses/handler.go
package dioceses

import (
	"github.com/dalemusser/diocesehub/internal/app/features/shared"
)

const (
	basePath = "/dioceses"
	entity   = "diocese"
	tableID  = "dioceses"
)

// Handler is the feature-level entry point for Dioceses.
type Handler struct {
	shared.Deps
}

// NewHandler constructs a Dioceses handler.
func NewHandler(deps shared.Deps) *Handler {
	return &Handler{Deps: deps.Named("dioceses")}
}
