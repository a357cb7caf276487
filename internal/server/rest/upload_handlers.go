package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/gophcms/internal/common"
	"github.com/dmitrijs2005/gophcms/internal/server/models"
	"github.com/dmitrijs2005/gophcms/internal/server/services"
	"github.com/gorilla/mux"
)

type imagePathResponse struct {
	ImagePath string `json:"image_path"`
}

type kioolIDResponse struct {
	KioolID string `json:"kiool_id"`
}

// UploadImage stores the first file part of a multipart body. Bodies over
// maxUploadBytes are answered with 413.
func (a *API) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUploadBytes)

	mr, err := r.MultipartReader()
	if err != nil {
		a.writeError(w, r, fmt.Errorf("%w: multipart body expected", common.ErrorValidation))
		return
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var tooLarge *http.MaxBytesError
			if !errors.As(err, &tooLarge) {
				err = fmt.Errorf("%w: %v", common.ErrorValidation, err)
			}
			a.writeError(w, r, err)
			return
		}
		if part.FileName() == "" {
			_ = part.Close()
			continue
		}

		q := r.URL.Query()
		path, err := a.svc.Images.Save(r.Context(), services.Upload{
			OriginName: part.FileName(),
			PostID:     q.Get("post_id"),
			ImageType:  q.Get("image_type"),
			Body:       part,
		})
		_ = part.Close()
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		returnOK(w, imagePathResponse{ImagePath: path}, "image uploaded")
		return
	}

	a.writeError(w, r, fmt.Errorf("%w: no file part", common.ErrorValidation))
}

func (a *API) GetImage(w http.ResponseWriter, r *http.Request) {
	rc, mime, err := a.svc.Images.Open(r.Context(), mux.Vars(r)["file"])
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("X-Content-Type-Options", "nosniff")
	if mime != "" {
		w.Header().Set("Content-Type", mime)
	}
	if _, err := io.Copy(w, rc); err != nil {
		a.logger.Warn(r.Context(), "image stream interrupted", "error", err)
	}
}

func (a *API) CreateKiool(w http.ResponseWriter, r *http.Request) {
	var k models.Kiool
	if err := decodeRequest(r, &k); err != nil {
		a.writeError(w, r, err)
		return
	}

	created, err := a.svc.Kiools.Create(r.Context(), subjectFrom(r.Context()), k)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	returnOK(w, kioolIDResponse{KioolID: created.ID}, "kiool created")
}

func (a *API) DeleteKiool(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := a.svc.Kiools.Delete(r.Context(), subjectFrom(r.Context()), id); err != nil {
		a.writeError(w, r, err)
		return
	}
	returnOK(w, kioolIDResponse{KioolID: id}, "kiool deleted")
}
