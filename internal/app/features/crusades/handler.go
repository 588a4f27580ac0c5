// internal/app/features/crusades/handler.go
package crusades

import (
	"github.com/dalemusser/diocesehub/internal/app/features/shared"
)

const (
	basePath = "/crusades"
	entity   = "crusade"
	tableID  = "crusades"
)

// Handler is the feature-level entry point for Crusades.
type Handler struct {
	shared.Deps
}

// NewHandler constructs a Crusades handler.
func NewHandler(deps shared.Deps) *Handler {
	return &Handler{Deps: deps.Named("crusades")}
}
