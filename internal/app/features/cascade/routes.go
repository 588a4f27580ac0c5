// internal/app/features/cascade/routes.go
package cascade

import (
	"github.com/dalemusser/diocesehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the cascade endpoint (typically at "/cascade").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Get("/options", h.ServeOptions)
	return r
}
