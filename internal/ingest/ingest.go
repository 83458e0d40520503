package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding/charmap"

	"dataset-sql-assistant/internal/datastore"
)

// LoadedTable reports one CSV file turned into one dataset table.
type LoadedTable struct {
	TableName  string
	SourceFile string
	RowCount   int64
	Columns    []string
}

type Loader struct {
	store *datastore.Store
}

func NewLoader(store *datastore.Store) *Loader {
	return &Loader{store: store}
}

const insertBatchSize = 200

// LoadDir ingests every *.csv file under dir, one table per file with replace
// semantics. Files that fail to parse are skipped with a warning so one broken
// export does not block the rest of the datasets.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]LoadedTable, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	loaded := make([]LoadedTable, 0, len(files))
	for _, file := range files {
		table, err := l.LoadFile(ctx, file)
		if err != nil {
			log.Warn("skipping dataset", "file", file, "err", err)
			continue
		}
		loaded = append(loaded, *table)
	}
	return loaded, nil
}

// LoadFile ingests a single CSV file, dropping and recreating its table.
func (l *Loader) LoadFile(ctx context.Context, path string) (*LoadedTable, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file %s is empty", path)
	}

	columns := SanitizeColumns(records[0])
	rows := records[1:]
	types := inferColumnTypes(rows, len(columns))

	table := TableNameForFile(path)
	if err := l.recreateTable(ctx, table, columns, types); err != nil {
		return nil, err
	}

	inserted, err := l.insertRows(ctx, table, columns, types, rows)
	if err != nil {
		return nil, err
	}

	log.Info("loaded dataset", "table", table, "rows", inserted, "file", filepath.Base(path))

	return &LoadedTable{
		TableName:  table,
		SourceFile: filepath.Base(path),
		RowCount:   inserted,
		Columns:    columns,
	}, nil
}

func (l *Loader) recreateTable(ctx context.Context, table string, columns []string, types []columnType) error {
	db := l.store.DB().WithContext(ctx)

	if err := db.Exec("DROP TABLE IF EXISTS " + datastore.QuoteIdent(table)).Error; err != nil {
		return fmt.Errorf("failed to drop table %s: %w", table, err)
	}

	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = datastore.QuoteIdent(col) + " " + types[i].sqlType()
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", datastore.QuoteIdent(table), strings.Join(defs, ", "))
	if err := db.Exec(create).Error; err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}
	return nil
}

func (l *Loader) insertRows(ctx context.Context, table string, columns []string, types []columnType, rows [][]string) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	db := l.store.DB().WithContext(ctx)

	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = datastore.QuoteIdent(col)
	}
	placeholders := "(" + strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",") + ")"
	prefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES ", datastore.QuoteIdent(table), strings.Join(quoted, ", "))

	var total int64
	for start := 0; start < len(rows); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]

		values := make([]string, 0, len(batch))
		args := make([]any, 0, len(batch)*len(columns))
		for _, record := range batch {
			values = append(values, placeholders)
			for i := range columns {
				cell := ""
				if i < len(record) {
					cell = strings.TrimSpace(record[i])
				}
				args = append(args, convertCell(cell, types[i]))
			}
		}

		if err := db.Exec(prefix+strings.Join(values, ", "), args...).Error; err != nil {
			return total, fmt.Errorf("failed to insert into %s: %w", table, err)
		}
		total += int64(len(batch))
	}
	return total, nil
}

// readCSV reads the whole file, falling back to Latin-1 when the content is
// not valid UTF-8. Ragged rows are tolerated; short rows are padded with NULLs
// at insert time.
func readCSV(path string) ([][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if !utf8.Valid(raw) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s as latin-1: %w", path, err)
		}
		raw = decoded
	}

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}
