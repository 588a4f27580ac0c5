// internal/app/features/crusades/delete.go
package crusades

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

// HandleDelete deletes a crusade schedule.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := shared.ParseID(chi.URLParam(r, "id"))
	if id == 0 {
		uierrors.RenderBadRequest(w, r, "Invalid crusade ID.", basePath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.API.Crusades.Delete(ctx, id); err != nil {
		h.DeleteFailed(w, r, err, entity, id, navigation.CrusadesBackURL)
		return
	}

	h.Saved(w, r, shared.Deleted, entity, id, strings.TrimSpace(r.FormValue("name")), navigation.CrusadesBackURL, "Crusade deleted.")
}
