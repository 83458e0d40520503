package datastore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataset-sql-assistant/internal/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(config.StoreConfig{
		Backend:    BackendSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedTable(t *testing.T, store *Store) {
	t.Helper()
	db := store.DB()
	require.NoError(t, db.Exec(`CREATE TABLE employees ("name" TEXT, "age" INTEGER)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO employees VALUES ('Alice', 30), ('Bob', 25)`).Error)
}

func TestExecuteQuery(t *testing.T) {
	store := newTestStore(t)
	seedTable(t, store)

	result, err := store.ExecuteQuery(context.Background(),
		`SELECT name, age FROM employees ORDER BY age DESC`)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age"}, result.Columns)
	require.Equal(t, 2, result.RowCount)
	assert.Equal(t, "Alice", result.Rows[0]["name"])
	assert.Equal(t, int64(30), result.Rows[0]["age"])
}

func TestExecuteQueryRejectsWrites(t *testing.T) {
	store := newTestStore(t)
	seedTable(t, store)

	_, err := store.ExecuteQuery(context.Background(), "DELETE FROM employees")
	require.Error(t, err)

	// the table is untouched
	result, err := store.ExecuteQuery(context.Background(), "SELECT count(*) AS n FROM employees")
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Rows[0]["n"])
}

func TestListTablesHidesBookkeeping(t *testing.T) {
	store := newTestStore(t)
	seedTable(t, store)

	names, err := store.ListTables(context.Background())
	require.NoError(t, err)

	// AutoMigrate created assistant_* tables; only datasets are listed
	assert.Equal(t, []string{"employees"}, names)
}

func TestTableInfo(t *testing.T) {
	store := newTestStore(t)
	seedTable(t, store)

	info, err := store.TableInfo(context.Background(), "employees")
	require.NoError(t, err)

	assert.Equal(t, "employees", info.Name)
	require.Len(t, info.Columns, 2)
	assert.Equal(t, ColumnInfo{Name: "name", Type: "TEXT"}, info.Columns[0])
	assert.Equal(t, ColumnInfo{Name: "age", Type: "INTEGER"}, info.Columns[1])
	assert.Len(t, info.SampleRows, 2)
}

func TestTableInfoUnknownTable(t *testing.T) {
	store := newTestStore(t)

	_, err := store.TableInfo(context.Background(), "missing")
	assert.Error(t, err)
}

func TestSchemaPrompt(t *testing.T) {
	infos := []TableInfo{
		{
			Name: "employees",
			Columns: []ColumnInfo{
				{Name: "name", Type: "TEXT"},
				{Name: "age", Type: "INTEGER"},
			},
		},
		{
			Name:    "orders",
			Columns: []ColumnInfo{{Name: "id", Type: "INTEGER"}},
		},
	}

	got := SchemaPrompt(infos)
	want := "Table: employees\nColumns: name (TEXT), age (INTEGER)\n\nTable: orders\nColumns: id (INTEGER)\n"
	assert.Equal(t, want, got)
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"employees"`, QuoteIdent("employees"))
	assert.Equal(t, `"we""ird"`, QuoteIdent(`we"ird`))
}

func TestOpenUnsupportedBackend(t *testing.T) {
	_, err := Open(config.StoreConfig{Backend: "mysql"})
	assert.Error(t, err)
}
