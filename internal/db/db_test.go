package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMigrations(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestReadMigrationsSortsAndSkips(t *testing.T) {
	dir := writeMigrations(t, map[string]string{
		"002_add_index.sql": "CREATE INDEX x ON feedback (kind);",
		"001_feedback.sql":  "CREATE TABLE feedback (id INT);",
		"README.md":         "notes",
		"draft.sql":         "SELECT 1;",
	})

	ms, err := ReadMigrations(dir)
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, 1, ms[0].Number)
	assert.Equal(t, "feedback", ms[0].Name)
	assert.Equal(t, "add_index", ms[1].Name)
}

func TestRunMigrationsSkipsApplied(t *testing.T) {
	dir := writeMigrations(t, map[string]string{
		"001_feedback.sql":  "CREATE TABLE feedback (id INT);",
		"002_add_index.sql": "CREATE INDEX x ON feedback (id);",
	})
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT").WithArgs(1).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT COUNT").WithArgs(2).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE INDEX x").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs(2, "add_index").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, Wrap(sqlDB).RunMigrations(context.Background(), dir))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBundledMigrationsParse(t *testing.T) {
	ms, err := ReadMigrations("../../migrations")
	require.NoError(t, err)
	require.NotEmpty(t, ms)
	assert.Contains(t, ms[0].SQL, "CREATE TABLE IF NOT EXISTS feedback")
}

func TestNewRequiresConnectionString(t *testing.T) {
	_, err := New(context.Background(), "")
	assert.Error(t, err)
}
