package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophcms/internal/common"
	"github.com/dmitrijs2005/gophcms/internal/dbx"
	"github.com/dmitrijs2005/gophcms/internal/server/models"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/images"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/kiools"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/portfolio"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/posts"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/sections"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/tags"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

type fakeUsers struct {
	byID      map[string]*models.User
	getErr    error
	createErr error
	created   *models.User
}

func (f *fakeUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = u
	return u, nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakePosts struct {
	owners    map[string]string
	ownerErr  error
	created   *models.Post
	updated   *models.Post
	deleted   string
	createErr error
	updateErr error
	list      []*models.Post
	filter    models.PostFilter
}

func (f *fakePosts) Create(ctx context.Context, p *models.Post) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = p
	return nil
}

func (f *fakePosts) Update(ctx context.Context, p *models.Post) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = p
	return nil
}

func (f *fakePosts) Delete(ctx context.Context, id string) error {
	f.deleted = id
	return nil
}

func (f *fakePosts) Get(ctx context.Context, id string) (*models.Post, error) {
	for _, p := range f.list {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakePosts) ListPublished(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	f.filter = filter
	return f.list, nil
}

func (f *fakePosts) ListAll(ctx context.Context) ([]*models.Post, error) { return f.list, nil }

func (f *fakePosts) OwnerOf(ctx context.Context, id string) (string, error) {
	if f.ownerErr != nil {
		return "", f.ownerErr
	}
	o, ok := f.owners[id]
	if !ok {
		return "", common.ErrorNotFound
	}
	return o, nil
}

type fakeTags struct {
	list    []models.TagWithCategory
	counts  []models.TagCount
	setFor  string
	setTags []models.TagWithCategory
	setErr  error
	listErr error
}

func (f *fakeTags) List(ctx context.Context) ([]models.TagWithCategory, error) {
	return f.list, f.listErr
}

func (f *fakeTags) CountByTag(ctx context.Context) ([]models.TagCount, error) { return f.counts, nil }

func (f *fakeTags) SetPostTags(ctx context.Context, postID string, t []models.TagWithCategory) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.setFor, f.setTags = postID, t
	return nil
}

type fakePortfolio struct {
	p *models.Portfolio
}

func (f *fakePortfolio) Get(ctx context.Context) (*models.Portfolio, error) {
	if f.p == nil {
		return nil, common.ErrorNotFound
	}
	return f.p, nil
}

func (f *fakePortfolio) Upsert(ctx context.Context, content string) (*models.Portfolio, error) {
	f.p = &models.Portfolio{ID: models.PortfolioID, Content: content}
	return f.p, nil
}

type fakeSections struct {
	byID map[string]*models.Section
}

func (f *fakeSections) Get(ctx context.Context, id string) (*models.Section, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return s, nil
}

type fakeImages struct {
	byName    map[string]*models.Image
	createErr error
}

func (f *fakeImages) Create(ctx context.Context, img *models.Image) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.byName[img.FileName] = img
	return nil
}

func (f *fakeImages) GetByFileName(ctx context.Context, name string) (*models.Image, error) {
	img, ok := f.byName[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return img, nil
}

type fakeKiools struct {
	owners  map[string]string
	created *models.Kiool
	deleted string
}

func (f *fakeKiools) Create(ctx context.Context, k *models.Kiool) error {
	f.created = k
	return nil
}

func (f *fakeKiools) Delete(ctx context.Context, id string) error {
	f.deleted = id
	return nil
}

func (f *fakeKiools) OwnerOf(ctx context.Context, id string) (string, error) {
	o, ok := f.owners[id]
	if !ok {
		return "", common.ErrorNotFound
	}
	return o, nil
}

type fakeRepoManager struct {
	users     *fakeUsers
	posts     *fakePosts
	tags      *fakeTags
	portfolio *fakePortfolio
	sections  *fakeSections
	images    *fakeImages
	kiools    *fakeKiools
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.users }
func (m *fakeRepoManager) Posts(dbx.DBTX) posts.Repository              { return m.posts }
func (m *fakeRepoManager) Tags(dbx.DBTX) tags.Repository                { return m.tags }
func (m *fakeRepoManager) Portfolio(dbx.DBTX) portfolio.Repository      { return m.portfolio }
func (m *fakeRepoManager) Sections(dbx.DBTX) sections.Repository        { return m.sections }
func (m *fakeRepoManager) Images(dbx.DBTX) images.Repository            { return m.images }
func (m *fakeRepoManager) Kiools(dbx.DBTX) kiools.Repository            { return m.kiools }

func withFixedIDs(t *testing.T, ids ...string) {
	t.Helper()
	orig := newID
	i := 0
	newID = func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}
	t.Cleanup(func() { newID = orig })
}
