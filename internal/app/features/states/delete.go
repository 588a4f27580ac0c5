// internal/app/features/states/delete.go
package states

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/diocesehub/internal/app/features/errors"
	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/system/navigation"
	"github.com/dalemusser/diocesehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// HandleDelete deletes a state and redirects back to the list.
//
// Route: POST /states/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := shared.ParseID(chi.URLParam(r, "id"))
	if id == 0 {
		uierrors.RenderBadRequest(w, r, "Invalid state ID.", basePath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.API.States.Delete(ctx, id); err != nil {
		h.DeleteFailed(w, r, err, entity, id, navigation.StatesBackURL)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	h.Saved(w, r, shared.Deleted, entity, id, name, navigation.StatesBackURL, "State deleted.")
}
