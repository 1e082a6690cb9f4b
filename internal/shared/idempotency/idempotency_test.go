package idempotency

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func newSQLXMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mockDB, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return sqlx.NewDb(sqlDB, "sqlmock"), mockDB
}

func idempotencyRow(hash, status string, responseStatus int, body []byte, contentType string, lockedUntil time.Time) *sqlmock.Rows {
	return sqlmock.
		NewRows([]string{"request_hash", "status", "response_status", "response_body", "response_content_type", "locked_until"}).
		AddRow(hash, status, responseStatus, body, contentType, lockedUntil)
}

func testRequest() Request {
	return Request{
		Scope:       "withdrawal:user-1",
		Key:         "key-1",
		RequestHash: "hash-1",
	}
}

type SQLXStoreSuite struct{ suite.Suite }

func (s *SQLXStoreSuite) TestAcquire_NewKeyIsAcquired() {
	db, mockDB := newSQLXMock(s.T())
	store := NewSQLXStore(db)

	mockDB.ExpectBegin()
	mockDB.ExpectQuery(regexp.QuoteMeta("SELECT request_hash, status")).
		WithArgs("withdrawal:user-1", "key-1").
		WillReturnError(sql.ErrNoRows)
	mockDB.ExpectExec(regexp.QuoteMeta("INSERT INTO withdrawal_idempotency")).
		WithArgs("withdrawal:user-1", "key-1", "hash-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.ExpectCommit()

	decision, err := store.Acquire(context.Background(), testRequest())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), DecisionAcquired, decision.Type)
	assert.NoError(s.T(), mockDB.ExpectationsWereMet())
}

func (s *SQLXStoreSuite) TestAcquire_CompletedKeyReplaysStoredResponse() {
	db, mockDB := newSQLXMock(s.T())
	store := NewSQLXStore(db)

	mockDB.ExpectBegin()
	mockDB.ExpectQuery(regexp.QuoteMeta("SELECT request_hash, status")).
		WithArgs("withdrawal:user-1", "key-1").
		WillReturnRows(idempotencyRow("hash-1", "completed", 201, []byte(`{"id":"wd-1"}`), "application/json", time.Now().Add(-time.Minute)))
	mockDB.ExpectCommit()

	decision, err := store.Acquire(context.Background(), testRequest())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), DecisionReplay, decision.Type)
	assert.Equal(s.T(), 201, decision.StatusCode)
	assert.JSONEq(s.T(), `{"id":"wd-1"}`, string(decision.Body))
	assert.Equal(s.T(), "application/json", decision.ContentType)
	assert.NoError(s.T(), mockDB.ExpectationsWereMet())
}

func (s *SQLXStoreSuite) TestAcquire_DifferentPayloadConflicts() {
	db, mockDB := newSQLXMock(s.T())
	store := NewSQLXStore(db)

	mockDB.ExpectBegin()
	mockDB.ExpectQuery(regexp.QuoteMeta("SELECT request_hash, status")).
		WithArgs("withdrawal:user-1", "key-1").
		WillReturnRows(idempotencyRow("other-hash", "completed", 201, nil, "", time.Now().Add(-time.Minute)))
	mockDB.ExpectCommit()

	decision, err := store.Acquire(context.Background(), testRequest())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), DecisionConflict, decision.Type)
	assert.NoError(s.T(), mockDB.ExpectationsWereMet())
}

func (s *SQLXStoreSuite) TestAcquire_HeldLockIsInProgress() {
	db, mockDB := newSQLXMock(s.T())
	store := NewSQLXStore(db)

	mockDB.ExpectBegin()
	mockDB.ExpectQuery(regexp.QuoteMeta("SELECT request_hash, status")).
		WithArgs("withdrawal:user-1", "key-1").
		WillReturnRows(idempotencyRow("hash-1", "in_progress", 0, nil, "", time.Now().Add(time.Minute)))
	mockDB.ExpectCommit()

	decision, err := store.Acquire(context.Background(), testRequest())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), DecisionInProgress, decision.Type)
	assert.NoError(s.T(), mockDB.ExpectationsWereMet())
}

func (s *SQLXStoreSuite) TestAcquire_StaleLockIsTakenOver() {
	db, mockDB := newSQLXMock(s.T())
	store := NewSQLXStore(db)

	mockDB.ExpectBegin()
	mockDB.ExpectQuery(regexp.QuoteMeta("SELECT request_hash, status")).
		WithArgs("withdrawal:user-1", "key-1").
		WillReturnRows(idempotencyRow("hash-1", "in_progress", 0, nil, "", time.Now().Add(-time.Minute)))
	mockDB.ExpectExec(regexp.QuoteMeta("UPDATE withdrawal_idempotency")).
		WithArgs("withdrawal:user-1", "key-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.ExpectCommit()

	decision, err := store.Acquire(context.Background(), testRequest())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), DecisionAcquired, decision.Type)
	assert.NoError(s.T(), mockDB.ExpectationsWereMet())
}

func (s *SQLXStoreSuite) TestAcquire_RejectsBlankScope() {
	db, _ := newSQLXMock(s.T())
	store := NewSQLXStore(db)

	_, err := store.Acquire(context.Background(), Request{Scope: "  ", Key: "key-1", RequestHash: "hash-1"})
	require.Error(s.T(), err)
}

func (s *SQLXStoreSuite) TestComplete_PersistsResponse() {
	db, mockDB := newSQLXMock(s.T())
	store := NewSQLXStore(db)

	body := []byte(`{"id":"wd-1"}`)
	mockDB.ExpectExec(regexp.QuoteMeta(completeQuery)).
		WithArgs("withdrawal:user-1", "key-1", "hash-1", 201, body, "application/json").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Complete(context.Background(), testRequest(), StoredResponse{
		StatusCode:  201,
		Body:        body,
		ContentType: "application/json",
	})
	require.NoError(s.T(), err)
	assert.NoError(s.T(), mockDB.ExpectationsWereMet())
}

func (s *SQLXStoreSuite) TestComplete_UnknownKeyFails() {
	db, mockDB := newSQLXMock(s.T())
	store := NewSQLXStore(db)

	mockDB.ExpectExec(regexp.QuoteMeta("UPDATE withdrawal_idempotency")).
		WithArgs("withdrawal:user-1", "key-1", "hash-1", 200, []byte(nil), "").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Complete(context.Background(), testRequest(), StoredResponse{StatusCode: 200})
	require.Error(s.T(), err)
	assert.NoError(s.T(), mockDB.ExpectationsWereMet())
}

// Every column the store's SQL touches must exist in the migration, so a
// query and the schema cannot drift apart unnoticed.
func (s *SQLXStoreSuite) TestQueriesMatchMigrationSchema() {
	columns := migrationColumns(s.T())

	queries := map[string]string{
		"acquire select": acquireSelectQuery,
		"acquire insert": acquireInsertQuery,
		"reacquire":      reacquireQuery,
		"complete":       completeQuery,
	}

	for name, query := range queries {
		s.Run(name, func() {
			for _, identifier := range queryIdentifiers(query) {
				assert.Truef(s.T(), columns[identifier],
					"column %q is not defined by the withdrawal_idempotency migration", identifier)
			}
		})
	}
}

func migrationColumns(t *testing.T) map[string]bool {
	t.Helper()

	raw, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "0001_init.sql"))
	require.NoError(t, err)

	block := regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS withdrawal_idempotency \((.+?)\);`).FindSubmatch(raw)
	require.Len(t, block, 2, "withdrawal_idempotency table not found in migration")

	columns := make(map[string]bool)
	for _, line := range strings.Split(string(block[1]), "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 || strings.EqualFold(fields[0], "PRIMARY") {
			continue
		}
		columns[fields[0]] = true
	}
	return columns
}

// queryIdentifiers extracts the lower-case column names from a query. SQL
// keywords in the store's queries are upper case and string literals are
// stripped first, so what remains is columns plus now() and the table name.
func queryIdentifiers(query string) []string {
	stripped := regexp.MustCompile(`'[^']*'`).ReplaceAllString(query, "")

	var identifiers []string
	for _, token := range regexp.MustCompile(`[a-z_][a-z0-9_]*`).FindAllString(stripped, -1) {
		if token == "now" || token == "withdrawal_idempotency" {
			continue
		}
		identifiers = append(identifiers, token)
	}
	return identifiers
}

func TestSQLXStoreSuite(t *testing.T) {
	suite.Run(t, new(SQLXStoreSuite))
}
