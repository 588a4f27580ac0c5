// Package shared holds the dependencies and request plumbing common to the
// directory features: list filter resolution, cascade dropdown view models
// and the write-outcome handling every create/update/delete goes through.
package shared

import (
	uierrors "github.com/dalemusser/diocesehub/internal/app/features/errors"
	"github.com/dalemusser/diocesehub/internal/app/system/auditlog"
	"github.com/dalemusser/diocesehub/internal/app/system/auth"
	"github.com/dalemusser/diocesehub/internal/app/system/backend"
	"github.com/dalemusser/diocesehub/internal/app/system/filters"
	"github.com/dalemusser/diocesehub/internal/app/system/refdata"
	"go.uber.org/zap"
)

// Deps is what every directory feature handler is built from.
type Deps struct {
	API      *backend.Client
	Ref      *refdata.Cache
	Sessions *auth.SessionManager
	Filters  *filters.Store
	Audit    *auditlog.Logger
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

// Named returns a copy of d whose logger carries feature=name.
func (d Deps) Named(name string) Deps {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	d.Log = d.Log.With(zap.String("feature", name))
	if d.ErrLog == nil {
		d.ErrLog = uierrors.NewErrorLogger(d.Log)
	}
	return d
}
