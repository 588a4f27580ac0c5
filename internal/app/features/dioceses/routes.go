// internal/app/features/dioceses/routes.go
package dioceses

import (
	"github.com/dalemusser/diocesehub/internal/app/system/auth"
	"github.com/dalemusser/diocesehub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the Diocese routes (bootstrap mounts them at "/dioceses").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeList)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(authz.ReferenceEditors...))

		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
