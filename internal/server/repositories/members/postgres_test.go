package members

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kcaldiary/kcaldiary/internal/common"
	"github.com/kcaldiary/kcaldiary/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const selectMemberQ = `(?s)^SELECT\s+id,\s*nickname,\s*gender,\s*birth_date,\s*created_at\s+FROM\s+members\s+WHERE\s+id\s*=\s*\$1\s*$`

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	birth := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "nickname", "gender", "birth_date", "created_at"}).
		AddRow("m-1", "alice", "female", birth, created)
	mock.ExpectQuery(selectMemberQ).
		WithArgs("m-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "m-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.ID != "m-1" || got.Nickname != "alice" || got.Gender != models.GenderFemale {
		t.Fatalf("unexpected member: %+v", got)
	}
	if !got.BirthDate.Equal(birth) {
		t.Fatalf("unexpected birth date: %v", got.BirthDate)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectMemberQ).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectMemberQ).
		WithArgs("m-1").
		WillReturnError(errors.New("db down"))

	_, err := repo.GetByID(context.Background(), "m-1")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
