package counters

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestAddScan(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+counters\s+SET\s+total_scans\s*=\s*total_scans\s*\+\s*1\s+WHERE\s+id\s*=\s*1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.AddScan(context.Background()); err != nil {
		t.Fatalf("AddScan error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAddDisclosure(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+counters\s+SET\s+total_disclosures_sent\s*=\s*total_disclosures_sent\s*\+\s*1\s+WHERE\s+id\s*=\s*1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.AddDisclosure(context.Background()); err != nil {
		t.Fatalf("AddDisclosure error: %v", err)
	}
}

func TestSnapshot_SingleStatement(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+\(SELECT\s+COUNT\(\*\)\s+FROM\s+profiles\),\s*total_scans,\s*total_disclosures_sent\s+FROM\s+counters\s+WHERE\s+id\s*=\s*1`
	rows := sqlmock.NewRows([]string{"count", "total_scans", "total_disclosures_sent"}).
		AddRow(int64(3), int64(42), int64(17))
	mock.ExpectQuery(q).WillReturnRows(rows)

	stats, err := repo.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	if stats.TotalUsers != 3 || stats.TotalScans != 42 || stats.TotalDisclosuresSent != 17 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestSnapshot_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("db down"))

	_, err := repo.Snapshot(context.Background())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
