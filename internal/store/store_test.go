package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS citation_lookups`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX IF NOT EXISTS idx_citation_lookups_created_at`).WillReturnResult(sqlmock.NewResult(0, 0))

	s, err := New(&Config{DB: db, TableName: "citation_lookups"})
	require.NoError(t, err)
	return s, mock
}

func TestRecordInsertsLookup(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO citation_lookups`).
		WithArgs("42 U.S.C. 1983", "U.S. Code", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	url := "https://uscode.house.gov/view.xhtml?req=42/1983"
	err := s.Record(context.Background(), "42 U.S.C. 1983", "U.S. Code", &url)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentReturnsLookups(t *testing.T) {
	s, mock := newMockStore(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "text", "template_name", "url", "created_at"}).
		AddRow(int64(2), "42 U.S.C. 1983", "U.S. Code", "https://example.com/42/1983", now).
		AddRow(int64(1), "nothing here", "", nil, now.Add(-time.Minute))

	mock.ExpectQuery(`SELECT id, text, template_name, url, created_at FROM citation_lookups`).
		WithArgs(10).
		WillReturnRows(rows)

	out, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "42 U.S.C. 1983", out[0].Text)
	require.NotNil(t, out[0].URL)
	assert.Equal(t, "https://example.com/42/1983", *out[0].URL)
	assert.Nil(t, out[1].URL)
	require.NoError(t, mock.ExpectationsWereMet())
}
