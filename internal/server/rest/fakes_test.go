package rest

import (
	"context"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophcms/internal/common"
	"github.com/dmitrijs2005/gophcms/internal/logging"
	"github.com/dmitrijs2005/gophcms/internal/server/auth"
	"github.com/dmitrijs2005/gophcms/internal/server/models"
	"github.com/dmitrijs2005/gophcms/internal/server/services"
)

type nopLogger struct{}

func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

var testSecrets = auth.NewSecrets("access-secret", "refresh-secret")

type fakeUsers struct {
	loginErr error
	lastRole string
	refresh  string
}

func (f *fakeUsers) Login(ctx context.Context, userID, password string) (*auth.TokenPair, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if password != "pw" {
		return nil, common.ErrorUnauthorized
	}
	return auth.NewIssuer(testSecrets).IssuePair(userID)
}

func (f *fakeUsers) Refresh(ctx context.Context, token string) (*auth.TokenPair, error) {
	f.refresh = token
	subject, err := auth.NewRefreshGuard(testSecrets).Authenticate(token)
	if err != nil {
		return nil, err
	}
	return auth.NewIssuer(testSecrets).IssuePair(subject)
}

func (f *fakeUsers) AddUser(ctx context.Context, userID, password, role string) (*models.User, error) {
	if userID == "dup" {
		return nil, common.ErrorAlreadyExists
	}
	f.lastRole = role
	return &models.User{ID: userID, PasswordHash: "secret-hash", Role: role}, nil
}

type fakePosts struct {
	posts   map[string]*models.Post
	filter  models.PostFilter
	subject string
}

func (f *fakePosts) ListPublished(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	f.filter = filter
	out := []*models.Post{}
	for _, p := range f.posts {
		if p.Status != models.PostStatusDraft {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePosts) ListAll(ctx context.Context) ([]*models.Post, error) {
	out := []*models.Post{}
	for _, p := range f.posts {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePosts) Get(ctx context.Context, id string) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakePosts) Create(ctx context.Context, subject string, in models.PostInput) (*models.Post, error) {
	f.subject = subject
	p := &models.Post{ID: "new", Title: in.Title, WriterID: subject}
	f.posts[p.ID] = p
	return p, nil
}

func (f *fakePosts) owned(subject, id string) error {
	p, ok := f.posts[id]
	if !ok {
		return common.ErrResourceNotFound
	}
	if p.WriterID != subject {
		return common.ErrorForbidden
	}
	return nil
}

func (f *fakePosts) Update(ctx context.Context, subject, id string, in models.PostInput) (*models.Post, error) {
	if err := f.owned(subject, id); err != nil {
		return nil, err
	}
	f.posts[id].Title = in.Title
	return f.posts[id], nil
}

func (f *fakePosts) Delete(ctx context.Context, subject, id string) error {
	if err := f.owned(subject, id); err != nil {
		return err
	}
	delete(f.posts, id)
	return nil
}

type fakeTags struct{}

func (fakeTags) Categories(ctx context.Context) ([]models.TagsWithCategory, error) {
	return []models.TagsWithCategory{{Category: "lang", Tags: []string{"go"}}}, nil
}

func (fakeTags) Counts(ctx context.Context) ([]models.TagCount, error) {
	return []models.TagCount{{Tag: "go", Count: 2}}, nil
}

type fakePortfolio struct{ content string }

func (f *fakePortfolio) Get(ctx context.Context) (*models.Portfolio, error) {
	if f.content == "" {
		return nil, common.ErrorNotFound
	}
	return &models.Portfolio{ID: 1, Content: f.content}, nil
}

func (f *fakePortfolio) Update(ctx context.Context, content string) (*models.Portfolio, error) {
	f.content = content
	return &models.Portfolio{ID: 1, Content: content}, nil
}

type fakeSections struct{}

func (fakeSections) Get(ctx context.Context, id string) (*models.Section, error) {
	switch id {
	case "hero":
		return &models.Section{ID: "hero", ContentData: []byte(`{"title":"hi"}`)}, nil
	case "broken":
		return nil, common.ErrorInternal
	}
	return nil, common.ErrorNotFound
}

type fakeImages struct {
	saved services.Upload
	body  string
}

func (f *fakeImages) Save(ctx context.Context, up services.Upload) (string, error) {
	b, err := io.ReadAll(up.Body)
	if err != nil {
		return "", err
	}
	f.saved, f.body = up, string(b)
	return "/images/abc.png", nil
}

func (f *fakeImages) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	if name != "abc.png" {
		return nil, "", common.ErrorNotFound
	}
	return io.NopCloser(strings.NewReader("png-bytes")), "image/png", nil
}

type fakeKiools struct {
	owners  map[string]string
	subject string
}

func (f *fakeKiools) Create(ctx context.Context, subject string, k models.Kiool) (*models.Kiool, error) {
	f.subject = subject
	k.ID = "k-new"
	return &k, nil
}

func (f *fakeKiools) Delete(ctx context.Context, subject, id string) error {
	owner, ok := f.owners[id]
	if !ok {
		return common.ErrResourceNotFound
	}
	if owner != subject {
		return common.ErrorForbidden
	}
	return nil
}
