// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/diocesehub/internal/app/system/auth"
	"github.com/dalemusser/diocesehub/internal/domain/models"
)

// Who may manage what. The backend enforces its own rules too; a 403 from it
// is shown as a permission notice.
var (
	ReferenceEditors = []models.Role{models.RoleAdmin, models.RoleSupervisor}
	ScheduleEditors  = []models.Role{models.RoleAdmin, models.RoleSupervisor, models.RoleStandard}
	UserAdmins       = []models.Role{models.RoleAdmin}
)

// UserCtx returns the user's primary role, name, id, and a found flag.
// With no user in context it returns "", "", 0, false.
func UserCtx(r *http.Request) (role models.Role, name string, userID int64, ok bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return "", "", 0, false
	}
	return u.Role(), u.Name, u.ID, true
}

// HasAnyRole reports whether the current request's user holds any of roles.
// Returns false if no user is present.
func HasAnyRole(r *http.Request, roles ...models.Role) bool {
	u, ok := auth.CurrentUser(r)
	return ok && u.HasRole(roles...)
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	return HasAnyRole(r, models.RoleAdmin)
}

// CanManageReference reports whether the user may create, edit or delete
// states, dioceses and parishes.
func CanManageReference(r *http.Request) bool {
	return HasAnyRole(r, ReferenceEditors...)
}

// CanManageSchedules reports whether the user may edit adorations and crusades.
func CanManageSchedules(r *http.Request) bool {
	return HasAnyRole(r, ScheduleEditors...)
}

// CanManageUsers reports whether the user may use the user admin panel.
func CanManageUsers(r *http.Request) bool {
	return HasAnyRole(r, UserAdmins...)
}
