// internal/app/features/crusades/routes.go
package crusades

import (
	"github.com/dalemusser/diocesehub/internal/app/system/auth"
	"github.com/dalemusser/diocesehub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the Crusade routes (bootstrap mounts them at "/crusades").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeList)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(authz.ScheduleEditors...))

		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
