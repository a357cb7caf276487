package sections

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophcms/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const getQuery = `(?s)^SELECT\s+section_id,\s*section_type,\s*content_data,.*FROM\s+sections\s+WHERE\s+section_id\s*=\s*\$1\s*$`

var cols = []string{"section_id", "section_type", "content_data", "order_index", "is_active", "created_at", "updated_at"}

func TestGet(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(getQuery).WithArgs("hero").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("hero", "banner", `{"title":"hi"}`, int64(2), true, ts, ts))

	got, err := repo.Get(context.Background(), "hero")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.ID != "hero" || got.SectionType != "banner" || string(got.ContentData) != `{"title":"hi"}` || got.OrderIndex != 2 || !got.IsActive {
		t.Fatalf("unexpected section: %+v", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getQuery).WithArgs("nope").WillReturnError(sql.ErrNoRows)

	if _, err := repo.Get(context.Background(), "nope"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGet_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getQuery).WithArgs("hero").WillReturnError(errors.New("db down"))

	if _, err := repo.Get(context.Background(), "hero"); err == nil || errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want db error, got %v", err)
	}
}
