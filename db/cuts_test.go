package db

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	database, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, path
}

func sampleCut(output string) NewCut {
	return NewCut{
		InputPath:    "/videos/in.mp4",
		StartSeconds: 90,
		EndSeconds:   120,
		OutputPath:   output,
		Engine:       "ffmpeg",
	}
}

func TestOpenCreatesParentDirAndIsReopenable(t *testing.T) {
	database, path := openTestDB(t)
	assert.FileExists(t, path)
	require.NoError(t, database.Close())

	again, err := Open(path)
	require.NoError(t, err)
	defer again.Close()

	var count int
	require.NoError(t, again.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestInsertAndCompleteCut(t *testing.T) {
	database, _ := openTestDB(t)

	started := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	id, err := InsertCut(database, sampleCut("/videos/out.mkv"), started)
	require.NoError(t, err)

	c, err := SelectCutByID(database, id)
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, c.Status)
	assert.Equal(t, 90, c.StartSeconds)
	assert.Equal(t, 120, c.EndSeconds)
	assert.Equal(t, "ffmpeg", c.Engine)
	assert.True(t, started.Equal(c.StartedAt))
	assert.Nil(t, c.FinishedAt)
	assert.Nil(t, c.ErrorAt)

	finished := started.Add(3 * time.Second)
	require.NoError(t, MarkCutComplete(database, id, finished, 4096))

	c, err = SelectCutByID(database, id)
	require.NoError(t, err)
	assert.Equal(t, StatusComplete, c.Status)
	assert.Equal(t, int64(4096), c.Filesize)
	require.NotNil(t, c.FinishedAt)
	assert.True(t, finished.Equal(*c.FinishedAt))
}

func TestMarkCutError(t *testing.T) {
	database, _ := openTestDB(t)

	id, err := InsertCut(database, sampleCut("/videos/out.mkv"), time.Now())
	require.NoError(t, err)
	require.NoError(t, MarkCutError(database, id, time.Now(), "Invalid data found when processing input"))

	c, err := SelectCutByID(database, id)
	require.NoError(t, err)
	assert.Equal(t, StatusError, c.Status)
	assert.Equal(t, "Invalid data found when processing input", c.Log)
	assert.NotNil(t, c.ErrorAt)
}

func TestSelectRecentCuts(t *testing.T) {
	database, _ := openTestDB(t)

	for _, out := range []string{"a.mkv", "b.mkv", "c.mkv"} {
		_, err := InsertCut(database, sampleCut(out), time.Now())
		require.NoError(t, err)
	}

	cuts, err := SelectRecentCuts(database, 2)
	require.NoError(t, err)
	require.Len(t, cuts, 2)
	assert.Equal(t, "c.mkv", cuts[0].OutputPath)
	assert.Equal(t, "b.mkv", cuts[1].OutputPath)
}

func TestSelectCutByIDMissing(t *testing.T) {
	database, _ := openTestDB(t)
	_, err := SelectCutByID(database, 42)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestLoadMigrationsSorted(t *testing.T) {
	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].version, migrations[i].version)
	}
}
