package rest

import (
	"net/http"

	"github.com/gorilla/mux"
)

type portfolioRequest struct {
	Content string `json:"content"`
}

func (a *API) TagCategories(w http.ResponseWriter, r *http.Request) {
	groups, err := a.svc.Tags.Categories(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	returnOK(w, groups, "")
}

func (a *API) TagCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := a.svc.Tags.Counts(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	returnOK(w, counts, "")
}

func (a *API) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	p, err := a.svc.Portfolio.Get(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	returnOK(w, p, "")
}

func (a *API) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req portfolioRequest
	if err := decodeRequest(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	p, err := a.svc.Portfolio.Update(r.Context(), req.Content)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	returnOK(w, p, "portfolio updated")
}

func (a *API) GetSection(w http.ResponseWriter, r *http.Request) {
	s, err := a.svc.Sections.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	returnOK(w, s, "")
}
