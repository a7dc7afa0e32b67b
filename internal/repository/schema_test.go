package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	return newMockRepositoryPings(t, false)
}

func newMockRepositoryPings(t *testing.T, monitorPings bool) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(monitorPings))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func assertReleased(t *testing.T, r *Repository) {
	assert.Equal(t, 0, r.db.Stats().InUse, "connection was not released")
}

var createFragments = []string{
	`CREATE TABLE IF NOT EXISTS "account"`,
	`CREATE TABLE IF NOT EXISTS "statement"`,
	`CREATE TABLE IF NOT EXISTS "transactionType"`,
	`CREATE TABLE IF NOT EXISTS "transaction"`,
	`conname = 'FK_transaction_counterPartyAccount'`,
	`conname = 'FK_transaction_transactionType'`,
	`conname = 'FK_transaction_statement'`,
}

func expectCreateSteps(mock sqlmock.Sqlmock) {
	for _, fragment := range createFragments {
		mock.ExpectExec(regexp.QuoteMeta(fragment)).WillReturnResult(sqlmock.NewResult(0, 0))
	}
}

func TestInitializeSchema(t *testing.T) {
	repo, mock := newMockRepository(t)
	expectCreateSteps(mock)

	require.NoError(t, repo.InitializeSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
	assertReleased(t, repo)
}

func TestInitializeSchema_Twice(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.MatchExpectationsInOrder(true)
	expectCreateSteps(mock)
	expectCreateSteps(mock)

	require.NoError(t, repo.InitializeSchema(context.Background()))
	require.NoError(t, repo.InitializeSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
	assertReleased(t, repo)

	// Every step is guarded, so reapplying it is a no-op.
	for _, step := range createSteps {
		if strings.HasPrefix(step.name, "create table") {
			assert.Contains(t, step.query, "CREATE TABLE IF NOT EXISTS", step.name)
			continue
		}
		assert.Contains(t, step.query, "DO $$", step.name)
		assert.Contains(t, step.query, "IF NOT EXISTS (SELECT 1 FROM pg_constraint", step.name)
	}
}

func TestInitializeSchema_StopsAtFailingStep(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS "account"`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS "statement"`)).WillReturnError(errors.New("permission denied"))

	err := repo.InitializeSchema(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create table statement")
	assert.Contains(t, err.Error(), "permission denied")
	assert.NoError(t, mock.ExpectationsWereMet())
	assertReleased(t, repo)
}

func TestDropSchema_DependentsFirst(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.MatchExpectationsInOrder(true)

	for _, table := range []string{"transaction", "transactionType", "statement", "account"} {
		mock.ExpectExec(regexp.QuoteMeta(`DROP TABLE IF EXISTS "` + table + `"`)).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, repo.DropSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddForeignKey(t *testing.T) {
	q := addForeignKey("FK_x", "col", "ref", "refId")
	assert.Contains(t, q, `SELECT 1 FROM pg_constraint WHERE conname = 'FK_x'`)
	assert.Contains(t, q, `ALTER TABLE "transaction" ADD CONSTRAINT "FK_x"`)
	assert.Contains(t, q, `FOREIGN KEY ("col") REFERENCES "ref" ("refId")`)
}

func TestCheckConnectivity(t *testing.T) {
	repo, mock := newMockRepositoryPings(t, true)

	mock.ExpectPing()
	c := repo.CheckConnectivity(context.Background())
	assert.Equal(t, Healthy, c.State)
	assert.NoError(t, c.Err)

	mock.ExpectPing().WillReturnError(errors.New("connection reset"))
	c = repo.CheckConnectivity(context.Background())
	assert.Equal(t, Unhealthy, c.State)
	assert.EqualError(t, c.Err, "connection reset")

	assert.NoError(t, mock.ExpectationsWereMet())
	assertReleased(t, repo)
}

func TestCheckConnectivity_Unreachable(t *testing.T) {
	repo, _ := newMockRepository(t)
	repo.db.Close()

	c := repo.CheckConnectivity(context.Background())
	assert.Equal(t, Unreachable, c.State)
	assert.Error(t, c.Err)
	assert.Equal(t, "unreachable", c.State.String())
}
