// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/diocesehub/internal/app/system/authz"
	"github.com/dalemusser/diocesehub/internal/app/system/notify"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// DefaultSiteName is shown in the header and page titles.
const DefaultSiteName = "DioceseHub"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type listData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := listData{
//	    BaseVM: viewdata.NewBaseVM(w, r, "Parishes", "/"),
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn bool
	Role       string
	UserName   string

	// Permissions for showing edit controls
	CanManageReference bool
	CanManageSchedules bool
	IsAdmin            bool

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	CSRFToken string

	// Notices are queued flashes plus any added while handling this request.
	Notices []notify.Message
}

var flashSessions notify.Sessions

// Init sets the session source for flash notifications.
// Call this once at startup from bootstrap.
func Init(s notify.Sessions) {
	flashSessions = s
}

// NewBaseVM creates a fully populated BaseVM for a page and consumes any
// queued flash notifications.
func NewBaseVM(w http.ResponseWriter, r *http.Request, title, backDefault string) BaseVM {
	role, name, _, signedIn := authz.UserCtx(r)
	vm := BaseVM{
		SiteName:           DefaultSiteName,
		IsLoggedIn:         signedIn,
		Role:               string(role),
		UserName:           name,
		CanManageReference: authz.CanManageReference(r),
		CanManageSchedules: authz.CanManageSchedules(r),
		IsAdmin:            authz.IsAdmin(r),
		Title:              title,
		BackURL:            httpnav.ResolveBackURL(r, backDefault),
		CurrentPath:        httpnav.CurrentPath(r),
		CSRFToken:          csrf.Token(r),
	}
	if flashSessions != nil && w != nil {
		vm.Notices = notify.Pop(w, r, flashSessions)
	}
	return vm
}

// Notify adds a notice to this render only.
func (vm *BaseVM) Notify(level notify.Level, text string) {
	vm.Notices = append(vm.Notices, notify.New(level, text))
}
