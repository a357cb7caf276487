package rest

import (
	"context"
	"io"
	"net/http"

	"github.com/dmitrijs2005/gophcms/internal/logging"
	"github.com/dmitrijs2005/gophcms/internal/server/auth"
	"github.com/dmitrijs2005/gophcms/internal/server/models"
	"github.com/dmitrijs2005/gophcms/internal/server/obs"
	"github.com/dmitrijs2005/gophcms/internal/server/services"
	"github.com/gorilla/mux"
)

type UserService interface {
	Login(ctx context.Context, userID, password string) (*auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	AddUser(ctx context.Context, userID, password, role string) (*models.User, error)
}

type PostService interface {
	ListPublished(ctx context.Context, filter models.PostFilter) ([]*models.Post, error)
	ListAll(ctx context.Context) ([]*models.Post, error)
	Get(ctx context.Context, postID string) (*models.Post, error)
	Create(ctx context.Context, subject string, in models.PostInput) (*models.Post, error)
	Update(ctx context.Context, subject, postID string, in models.PostInput) (*models.Post, error)
	Delete(ctx context.Context, subject, postID string) error
}

type TagService interface {
	Categories(ctx context.Context) ([]models.TagsWithCategory, error)
	Counts(ctx context.Context) ([]models.TagCount, error)
}

type PortfolioService interface {
	Get(ctx context.Context) (*models.Portfolio, error)
	Update(ctx context.Context, content string) (*models.Portfolio, error)
}

type SectionService interface {
	Get(ctx context.Context, sectionID string) (*models.Section, error)
}

type ImageService interface {
	Save(ctx context.Context, up services.Upload) (string, error)
	Open(ctx context.Context, fileName string) (io.ReadCloser, string, error)
}

type KioolService interface {
	Create(ctx context.Context, subject string, k models.Kiool) (*models.Kiool, error)
	Delete(ctx context.Context, subject, kioolID string) error
}

// Services bundles the business logic the handlers call into.
type Services struct {
	Users     UserService
	Posts     PostService
	Tags      TagService
	Portfolio PortfolioService
	Sections  SectionService
	Images    ImageService
	Kiools    KioolService
}

// DefaultMaxUploadBytes bounds the multipart body of an image upload.
const DefaultMaxUploadBytes = 20 << 20

type API struct {
	svc            Services
	accessGuard    auth.Guard
	logger         logging.Logger
	metrics        *obs.HTTPMetrics
	allowedOrigin  string
	maxUploadBytes int64
}

// NewAPI wires handlers to services. metrics may be nil.
func NewAPI(svc Services, accessGuard auth.Guard, l logging.Logger, metrics *obs.HTTPMetrics, allowedOrigin string) *API {
	return &API{
		svc:            svc,
		accessGuard:    accessGuard,
		logger:         l.With("module", "rest"),
		metrics:        metrics,
		allowedOrigin:  allowedOrigin,
		maxUploadBytes: DefaultMaxUploadBytes,
	}
}

// Router builds the route table. Literal paths are registered before
// their parameterised siblings so /posts/all never matches /posts/{id}.
func (a *API) Router() http.Handler {
	r := mux.NewRouter()
	if a.metrics != nil {
		r.Use(a.metrics.Middleware)
	}
	r.Use(a.accessLog)

	r.HandleFunc("/login", a.Login).Methods(http.MethodPost)
	r.HandleFunc("/refresh", a.Refresh).Methods(http.MethodPost)
	r.HandleFunc("/users", a.protected(a.AddUser)).Methods(http.MethodPost)

	r.HandleFunc("/posts", a.ListPosts).Methods(http.MethodGet)
	r.HandleFunc("/posts", a.protected(a.CreatePost)).Methods(http.MethodPost)
	r.HandleFunc("/posts/all", a.protected(a.ListAllPosts)).Methods(http.MethodGet)
	r.HandleFunc("/posts/search", a.SearchPosts).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id}", a.GetPost).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id}", a.protected(a.UpdatePost)).Methods(http.MethodPut)
	r.HandleFunc("/posts/{id}", a.protected(a.DeletePost)).Methods(http.MethodDelete)

	r.HandleFunc("/tags/categories", a.TagCategories).Methods(http.MethodGet)
	r.HandleFunc("/tags/counts", a.TagCounts).Methods(http.MethodGet)

	r.HandleFunc("/portfolio", a.GetPortfolio).Methods(http.MethodGet)
	r.HandleFunc("/portfolio", a.protected(a.UpdatePortfolio)).Methods(http.MethodPut)

	r.HandleFunc("/sections/{id}", a.GetSection).Methods(http.MethodGet)

	r.HandleFunc("/images", a.protected(a.UploadImage)).Methods(http.MethodPost)
	r.HandleFunc("/images/{file}", a.GetImage).Methods(http.MethodGet)

	r.HandleFunc("/kiools", a.protected(a.CreateKiool)).Methods(http.MethodPost)
	r.HandleFunc("/kiools/{id}", a.protected(a.DeleteKiool)).Methods(http.MethodDelete)

	return cors(a.allowedOrigin, r)
}
