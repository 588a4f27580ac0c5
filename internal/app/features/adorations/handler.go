// internal/app/features/adorations/handler.go
package adorations

import (
	"github.com/dalemusser/diocesehub/internal/app/features/shared"
)

const (
	basePath = "/adorations"
	entity   = "adoration"
	tableID  = "adorations"
)

// Handler is the feature-level entry point for Adorations.
type Handler struct {
	shared.Deps
}

// NewHandler constructs a Adorations handler.
func NewHandler(deps shared.Deps) *Handler {
	return &Handler{Deps: deps.Named("adorations")}
}
