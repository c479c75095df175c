// Package api serves persisted runs over HTTP
package api

import (
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	perr "marquee/internal/platform/errors"
	phttp "marquee/internal/platform/net/http"
	"marquee/internal/services/runs"
)

// Module mounts the read-side routes over the runs repo
type Module struct {
	repo runs.Repo
}

// New constructs the api module
func New(repo runs.Repo) *Module { return &Module{repo: repo} }

// Mount registers the routes on r
func (m *Module) Mount(r phttp.Router) {
	r.Route("/runs", func(r phttp.Router) {
		r.Get("/", m.listRuns)
		r.Get("/{id}", m.getRun)
		r.Get("/{id}/awards/{award}", m.getAward)
	})
}

func (m *Module) listRuns(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 500 {
			phttp.RespondError(w, r, perr.InvalidArgf("limit must be in 1..500"))
			return
		}
		limit = n
	}
	metas, err := m.repo.ListRuns(r.Context(), limit)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	if metas == nil {
		metas = []runs.RunMeta{}
	}
	phttp.RespondOK(w, r, metas)
}

func (m *Module) getRun(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	rep, err := m.repo.GetReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	phttp.RespondOK(w, r, rep)
}

func (m *Module) getAward(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	rep, err := m.repo.GetReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	award := chi.URLParam(r, "award")
	res, ok := rep.Awards[award]
	if !ok {
		phttp.RespondError(w, r, perr.NotFoundf("award %q not in run", award))
		return
	}
	phttp.RespondOK(w, r, res)
}
