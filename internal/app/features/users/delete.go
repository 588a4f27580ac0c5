// internal/app/features/users/delete.go
package users

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/diocesehub/internal/app/features/errors"
	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/system/navigation"
	"github.com/dalemusser/diocesehub/internal/app/system/notify"
	"github.com/dalemusser/diocesehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// HandleDelete deletes a user account. An admin cannot delete themselves.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := shared.ParseID(chi.URLParam(r, "id"))
	if id == 0 {
		uierrors.RenderBadRequest(w, r, "Invalid user ID.", basePath)
		return
	}
	back := navigation.SafeBackURL(r, navigation.UsersBackURL)
	if isSelf(r, id) {
		h.Flash(w, r, notify.Warning, "You cannot delete your own account.")
		shared.Redirect(w, r, back)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.API.Users.Delete(ctx, id); err != nil {
		h.DeleteFailed(w, r, err, entity, id, navigation.UsersBackURL)
		return
	}

	h.Saved(w, r, shared.Deleted, entity, id, strings.TrimSpace(r.FormValue("email")), navigation.UsersBackURL, "User deleted.")
}
