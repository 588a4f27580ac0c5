// internal/app/features/states/handler.go
package states

import (
	"github.com/dalemusser/diocesehub/internal/app/features/shared"
)

const (
	basePath = "/states"
	entity   = "state"
	tableID  = "states"
)

// Handler is the feature-level entry point for States.
type Handler struct {
	shared.Deps
}

// NewHandler constructs a States handler.
func NewHandler(deps shared.Deps) *Handler {
	return &Handler{Deps: deps.Named("states")}
}
