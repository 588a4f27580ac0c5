// internal/app/features/users/handler.go
package users

import (
	"github.com/dalemusser/diocesehub/internal/app/features/shared"
)

const (
	basePath = "/users"
	entity   = "user"
	tableID  = "users"
)

// Handler is the feature-level entry point for Users.
type Handler struct {
	shared.Deps
}

// NewHandler constructs a Users handler.
func NewHandler(deps shared.Deps) *Handler {
	return &Handler{Deps: deps.Named("users")}
}
