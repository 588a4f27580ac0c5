// internal/app/features/parishes/handler.go
package parishes

import (
	"github.com/dalemusser/diocesehub/internal/app/features/shared"
)

const (
	basePath = "/parishes"
	entity   = "parish"
	tableID  = "parishes"
)

// Handler is the feature-level entry point for Parishes.
type Handler struct {
	shared.Deps
}

// NewHandler constructs a Parishes handler.
func NewHandler(deps shared.Deps) *Handler {
	return &Handler{Deps: deps.Named("parishes")}
}
