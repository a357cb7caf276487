package rest

import (
	"net/http"

	"github.com/dmitrijs2005/gophcms/internal/server/models"
	"github.com/gorilla/mux"
)

type postIDResponse struct {
	PostID string `json:"post_id"`
}

func (a *API) writePosts(w http.ResponseWriter, posts []*models.Post) {
	if len(posts) == 0 {
		returnOK(w, []*models.Post{}, "no posts yet")
		return
	}
	returnOK(w, posts, "")
}

func (a *API) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := a.svc.Posts.ListPublished(r.Context(), models.PostFilter{})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writePosts(w, posts)
}

func (a *API) ListAllPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := a.svc.Posts.ListAll(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writePosts(w, posts)
}

func (a *API) SearchPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	posts, err := a.svc.Posts.ListPublished(r.Context(), models.PostFilter{
		Include: q.Get("include"),
		Exclude: q.Get("exclude"),
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writePosts(w, posts)
}

func (a *API) GetPost(w http.ResponseWriter, r *http.Request) {
	p, err := a.svc.Posts.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	returnOK(w, p, "")
}

func (a *API) CreatePost(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if err := decodeRequest(r, &in); err != nil {
		a.writeError(w, r, err)
		return
	}

	p, err := a.svc.Posts.Create(r.Context(), subjectFrom(r.Context()), in)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	returnOK(w, postIDResponse{PostID: p.ID}, "post created")
}

func (a *API) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if err := decodeRequest(r, &in); err != nil {
		a.writeError(w, r, err)
		return
	}

	p, err := a.svc.Posts.Update(r.Context(), subjectFrom(r.Context()), mux.Vars(r)["id"], in)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	returnOK(w, p, "post updated")
}

func (a *API) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := a.svc.Posts.Delete(r.Context(), subjectFrom(r.Context()), id); err != nil {
		a.writeError(w, r, err)
		return
	}
	returnOK(w, postIDResponse{PostID: id}, "post deleted")
}
