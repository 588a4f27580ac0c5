package home

import (
	"context"
	"net/http"

	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/system/authz"
	"github.com/dalemusser/diocesehub/internal/app/system/refdata"
	"github.com/dalemusser/diocesehub/internal/app/system/timeouts"
	"github.com/dalemusser/diocesehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"golang.org/x/sync/errgroup"
)

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	shared.Deps
}

func NewHandler(deps shared.Deps) *Handler {
	return &Handler{Deps: deps.Named("home")}
}

// Tile is one count on the dashboard.
type Tile struct {
	Label string
	Count int
	URL   string
}

type homeData struct {
	viewdata.BaseVM
	Tiles    []Tile
	LoadFail bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	data, ok := h.build(w, r)
	if !ok {
		return
	}
	templates.Render(w, r, "home", data)
}

func (h *Handler) build(w http.ResponseWriter, r *http.Request) (homeData, bool) {
	data := homeData{}
	if _, _, _, signedIn := authz.UserCtx(r); !signedIn {
		data.BaseVM = viewdata.NewBaseVM(w, r, "Welcome", "/")
		return data, true
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var adorations, crusades int
	snap, err := h.Ref.LoadPage(ctx, func(ctx context.Context) error {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			recs, err := h.API.Adorations.List(gctx)
			adorations = len(recs)
			return err
		})
		g.Go(func() error {
			recs, err := h.API.Crusades.List(gctx)
			crusades = len(recs)
			return err
		})
		return g.Wait()
	})
	var fail shared.Failure
	if err != nil {
		var done bool
		if fail, done = h.LoadFailed(w, r, err, "dashboard"); done {
			return homeData{}, false
		}
	}

	data.BaseVM = viewdata.NewBaseVM(w, r, "Dashboard", "/")
	if err != nil {
		data.Notify(fail.Level, fail.Message)
		data.LoadFail = true
		return data, true
	}
	data.Tiles = tiles(snap, adorations, crusades)
	return data, true
}

func tiles(snap *refdata.Snapshot, adorations, crusades int) []Tile {
	return []Tile{
		{Label: "States", Count: len(snap.States), URL: "/states"},
		{Label: "Dioceses", Count: len(snap.Dioceses), URL: "/dioceses"},
		{Label: "Parishes", Count: len(snap.Parishes), URL: "/parishes"},
		{Label: "Adorations", Count: adorations, URL: "/adorations"},
		{Label: "Crusades", Count: crusades, URL: "/crusades"},
	}
}
