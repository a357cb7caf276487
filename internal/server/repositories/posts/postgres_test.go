package posts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophcms/internal/common"
	"github.com/dmitrijs2005/gophcms/internal/server/models"
	"github.com/google/go-cmp/cmp"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	insertQuery    = `(?s)^INSERT\s+INTO\s+posts\s*\(post_id,.*writer_id\)\s*VALUES\s*\(\$1,.*\$7\)\s*RETURNING\s+created_at\s*$`
	updateQuery    = `(?s)^UPDATE\s+posts\s+SET\s+title\s*=\s*\$1,.*WHERE\s+post_id\s*=\s*\$6\s*$`
	deleteQuery    = `(?s)^DELETE\s+FROM\s+posts\s+WHERE\s+post_id\s*=\s*\$1$`
	getQuery       = `(?s)^SELECT\s+p\.post_id,.*string_agg.*WHERE\s+p\.post_id\s*=\s*\$1\s+GROUP\s+BY\s+p\.post_id\s*$`
	publishedQuery = `(?s)^SELECT\s+p\.post_id,.*WHERE\s+p\.status\s*<>\s*'draft'.*NOT\s+IN.*ORDER\s+BY\s+p\.published_at\s+DESC.*$`
	allQuery       = `(?s)^SELECT\s+p\.post_id,.*LEFT\s+JOIN\s+tags\s+t\s+ON\s+pt\.tag_id\s*=\s*t\.tag_id\s+GROUP\s+BY\s+p\.post_id\s+ORDER\s+BY.*$`
	ownerQuery     = `(?s)^SELECT\s+writer_id\s+FROM\s+posts\s+WHERE\s+post_id\s*=\s*\$1$`
)

var postCols = []string{"post_id", "title", "description", "published_at", "content", "status", "writer_id", "created_at", "tags"}

var created = time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	p := &models.Post{ID: "p1", Title: "t", Description: "d", PublishedAt: "2025-03-04", Content: "c", Status: "published", WriterID: "alice"}
	mock.ExpectQuery(insertQuery).
		WithArgs("p1", "t", "d", "2025-03-04", "c", "published", "alice").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !p.CreatedAt.Equal(created) {
		t.Fatalf("created_at not populated: %v", p.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &models.Post{ID: "p1"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name    string
		result  sql.Result
		execErr error
		wantErr error
	}{
		{name: "updated", result: sqlmock.NewResult(0, 1)},
		{name: "missing", result: sqlmock.NewResult(0, 0), wantErr: common.ErrorNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			mock.ExpectExec(updateQuery).
				WithArgs("t", "d", "2025-03-04", "c", "draft", "p1").
				WillReturnResult(tt.result)

			err := repo.Update(context.Background(), &models.Post{ID: "p1", Title: "t", Description: "d", PublishedAt: "2025-03-04", Content: "c", Status: "draft"})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestUpdate_RowsAffectedError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(updateQuery).WillReturnResult(sqlmock.NewErrorResult(errors.New("ra boom")))

	err := repo.Update(context.Background(), &models.Post{ID: "p1"})
	if err == nil || !regexp.MustCompile(`rows affected error: .*ra boom`).MatchString(err.Error()) {
		t.Fatalf("expected rows affected error, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQuery).WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(deleteQuery).WithArgs("p2").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(deleteQuery).WithArgs("p3").WillReturnError(errors.New("db down"))

	if err := repo.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("Delete p1: %v", err)
	}
	if err := repo.Delete(context.Background(), "p2"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("Delete p2: want not found, got %v", err)
	}
	if err := repo.Delete(context.Background(), "p3"); err == nil {
		t.Fatalf("Delete p3: expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGet_WithTags(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getQuery).WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(postCols).
			AddRow("p1", "t", "d", "2025-03-04", "c", "published", "alice", created, "lang::go,topic::web"))

	got, err := repo.Get(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}

	want := &models.Post{
		ID: "p1", Title: "t", Description: "d", PublishedAt: "2025-03-04", Content: "c",
		Status: "published", WriterID: "alice", CreatedAt: created,
		Tags: []models.TagWithCategory{{Category: "lang", Tag: "go"}, {Category: "topic", Tag: "web"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("post mismatch (-want +got):\n%s", diff)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getQuery).WithArgs("nope").WillReturnRows(sqlmock.NewRows(postCols))

	_, err := repo.Get(context.Background(), "nope")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGet_ScanError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getQuery).WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"post_id"}).AddRow("p1"))

	_, err := repo.Get(context.Background(), "p1")
	if err == nil || !regexp.MustCompile(`db error:`).MatchString(err.Error()) {
		t.Fatalf("expected scan error, got %v", err)
	}
}

func TestListPublished_FilterArgs(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(publishedQuery).WithArgs("go", "rust").
		WillReturnRows(sqlmock.NewRows(postCols).
			AddRow("p2", "t2", "", "2025-03-05", "", "published", "bob", created, "").
			AddRow("p1", "t1", "", "2025-03-04", "", "published", "alice", created, "lang::go"))

	got, err := repo.ListPublished(context.Background(), models.PostFilter{Include: "go", Exclude: "rust"})
	if err != nil {
		t.Fatalf("ListPublished error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "p2" || got[1].ID != "p1" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[0].Tags == nil || len(got[0].Tags) != 0 {
		t.Fatalf("untagged post should carry an empty tag list, got %#v", got[0].Tags)
	}
}

func TestListPublished_RowError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(postCols).
		AddRow("p1", "t1", "", "2025-03-04", "", "published", "alice", created, "").
		RowError(0, errors.New("row boom"))
	mock.ExpectQuery(publishedQuery).WithArgs("", "").WillReturnRows(rows)

	_, err := repo.ListPublished(context.Background(), models.PostFilter{})
	if err == nil || !regexp.MustCompile(`row boom`).MatchString(err.Error()) {
		t.Fatalf("expected row error, got %v", err)
	}
}

func TestListAll(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(allQuery).
		WillReturnRows(sqlmock.NewRows(postCols).
			AddRow("p3", "t3", "", "2025-03-06", "", "draft", "alice", created, ""))

	got, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(got) != 1 || got[0].Status != models.PostStatusDraft {
		t.Fatalf("drafts should be listed: %+v", got)
	}
}

func TestListAll_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(allQuery).WillReturnError(errors.New("db down"))

	if _, err := repo.ListAll(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestOwnerOf(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(ownerQuery).WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"writer_id"}).AddRow("alice"))
	mock.ExpectQuery(ownerQuery).WithArgs("p2").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(ownerQuery).WithArgs("p3").WillReturnError(errors.New("db down"))

	owner, err := repo.OwnerOf(context.Background(), "p1")
	if err != nil || owner != "alice" {
		t.Fatalf("OwnerOf p1 = %q, %v", owner, err)
	}
	if _, err := repo.OwnerOf(context.Background(), "p2"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("OwnerOf p2: want not found, got %v", err)
	}
	if _, err := repo.OwnerOf(context.Background(), "p3"); err == nil || errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("OwnerOf p3: want db error, got %v", err)
	}
}
