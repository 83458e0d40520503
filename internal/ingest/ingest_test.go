package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataset-sql-assistant/internal/config"
	"dataset-sql-assistant/internal/datastore"
)

func newTestStore(t *testing.T) *datastore.Store {
	t.Helper()
	store, err := datastore.Open(config.StoreConfig{
		Backend:    datastore.BackendSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "Employee List.csv",
		"Name,Age,Salary\nAlice,30,1000.50\nBob,25,900\nCarol,,\n")

	loaded, err := NewLoader(store).LoadFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "employee_list", loaded.TableName)
	assert.Equal(t, "Employee List.csv", loaded.SourceFile)
	assert.Equal(t, int64(3), loaded.RowCount)
	assert.Equal(t, []string{"name", "age", "salary"}, loaded.Columns)

	result, err := store.ExecuteQuery(context.Background(),
		`SELECT name, age, salary FROM employee_list ORDER BY name`)
	require.NoError(t, err)
	require.Equal(t, 3, result.RowCount)

	assert.Equal(t, "Alice", result.Rows[0]["name"])
	assert.Equal(t, int64(30), result.Rows[0]["age"])
	assert.Equal(t, 1000.5, result.Rows[0]["salary"])
	// empty cells land as NULL, not empty string
	assert.Nil(t, result.Rows[2]["age"])
	assert.Nil(t, result.Rows[2]["salary"])
}

func TestLoadFileReplacesExistingTable(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	loader := NewLoader(store)

	path := writeFile(t, dir, "items.csv", "id,label\n1,first\n2,second\n")
	_, err := loader.LoadFile(context.Background(), path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("id,label\n7,only\n"), 0o644))
	loaded, err := loader.LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, int64(1), loaded.RowCount)

	result, err := store.ExecuteQuery(context.Background(), `SELECT id FROM items`)
	require.NoError(t, err)
	require.Equal(t, 1, result.RowCount)
	assert.Equal(t, int64(7), result.Rows[0]["id"])
}

func TestLoadFileLatin1Fallback(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	// 0xE9 is é in Latin-1 and invalid as UTF-8
	path := writeFile(t, dir, "cities.csv", "name\nOrl\xe9ans\n")

	_, err := NewLoader(store).LoadFile(context.Background(), path)
	require.NoError(t, err)

	result, err := store.ExecuteQuery(context.Background(), `SELECT name FROM cities`)
	require.NoError(t, err)
	require.Equal(t, 1, result.RowCount)
	assert.Equal(t, "Orléans", result.Rows[0]["name"])
}

func TestLoadFileRaggedRows(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "ragged.csv", "a,b,c\n1,2\n3,4,5\n")

	loaded, err := NewLoader(store).LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, int64(2), loaded.RowCount)

	result, err := store.ExecuteQuery(context.Background(), `SELECT c FROM ragged ORDER BY a`)
	require.NoError(t, err)
	assert.Nil(t, result.Rows[0]["c"], "short rows pad with NULL")
	assert.Equal(t, int64(5), result.Rows[1]["c"])
}

func TestLoadFileCollidingHeaders(t *testing.T) {
	store := newTestStore(t)
	path := writeFile(t, t.TempDir(), "clash.csv", "a_2,a,a\n1,2,3\n")

	loaded, err := NewLoader(store).LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a_2", "a", "a_3"}, loaded.Columns)

	result, err := store.ExecuteQuery(context.Background(), `SELECT a, a_2, a_3 FROM clash`)
	require.NoError(t, err)
	require.Equal(t, 1, result.RowCount)
	assert.Equal(t, int64(2), result.Rows[0]["a"])
	assert.Equal(t, int64(1), result.Rows[0]["a_2"])
	assert.Equal(t, int64(3), result.Rows[0]["a_3"])
}

func TestLoadFileEmpty(t *testing.T) {
	store := newTestStore(t)
	path := writeFile(t, t.TempDir(), "empty.csv", "")

	_, err := NewLoader(store).LoadFile(context.Background(), path)
	assert.Error(t, err)
}

func TestLoadDirSkipsBrokenFiles(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	writeFile(t, dir, "good.csv", "id\n1\n")
	writeFile(t, dir, "broken.csv", "")
	writeFile(t, dir, "notes.txt", "not a dataset")

	loaded, err := NewLoader(store).LoadDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "good", loaded[0].TableName)
}

func TestLoadDirMissingDirectory(t *testing.T) {
	store := newTestStore(t)
	_, err := NewLoader(store).LoadDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
