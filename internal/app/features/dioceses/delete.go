// internal/app/features/dioceses/delete.go
package dioceses

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

// HandleDelete deletes a diocese. The backend refuses while parishes still
// reference it; that rejection is flashed on the list.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := shared.ParseID(chi.URLParam(r, "id"))
	if id == 0 {
		uierrors.RenderBadRequest(w, r, "Invalid diocese ID.", basePath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.API.Dioceses.Delete(ctx, id); err != nil {
		h.DeleteFailed(w, r, err, entity, id, navigation.DiocesesBackURL)
		return
	}

	h.Saved(w, r, shared.Deleted, entity, id, strings.TrimSpace(r.FormValue("name")), navigation.DiocesesBackURL, "Diocese deleted.")
}
