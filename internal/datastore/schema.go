package datastore

import (
	"context"
	"fmt"
	"strings"
)

type ColumnInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// TableInfo is what the agent gets to see about a dataset: its shape plus a
// handful of sample rows.
type TableInfo struct {
	Name       string           `json:"name"`
	Columns    []ColumnInfo     `json:"columns"`
	SampleRows []map[string]any `json:"sample_rows,omitempty"`
}

const sampleRowLimit = 5

// internal bookkeeping tables, never exposed to the agent
func isAssistantTable(name string) bool {
	return strings.HasPrefix(name, "assistant_")
}

// ListTables returns the names of all dataset tables.
func (s *Store) ListTables(ctx context.Context) ([]string, error) {
	var query string
	switch s.backend {
	case BackendSQLite:
		query = `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`
	case BackendPostgres:
		query = `SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' AND table_type = 'BASE TABLE' ORDER BY table_name`
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", s.backend)
	}

	var names []string
	if err := s.db.WithContext(ctx).Raw(query).Scan(&names).Error; err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	filtered := names[:0]
	for _, n := range names {
		if !isAssistantTable(n) {
			filtered = append(filtered, n)
		}
	}
	return filtered, nil
}

// TableInfo describes a single table, including sample rows.
func (s *Store) TableInfo(ctx context.Context, table string) (*TableInfo, error) {
	columns, err := s.tableColumns(ctx, table)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found", table)
	}

	info := &TableInfo{Name: table, Columns: columns}

	sample, err := s.ExecuteQuery(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT %d", QuoteIdent(table), sampleRowLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to sample table %s: %w", table, err)
	}
	info.SampleRows = sample.Rows

	return info, nil
}

// AllTableInfo describes every dataset table.
func (s *Store) AllTableInfo(ctx context.Context) ([]TableInfo, error) {
	names, err := s.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]TableInfo, 0, len(names))
	for _, name := range names {
		info, err := s.TableInfo(ctx, name)
		if err != nil {
			return nil, err
		}
		infos = append(infos, *info)
	}
	return infos, nil
}

func (s *Store) tableColumns(ctx context.Context, table string) ([]ColumnInfo, error) {
	switch s.backend {
	case BackendSQLite:
		var rows []struct {
			Name string
			Type string
		}
		query := fmt.Sprintf("SELECT name, type FROM pragma_table_info(%s)", quoteLiteral(table))
		if err := s.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to read sqlite schema for %s: %w", table, err)
		}
		columns := make([]ColumnInfo, 0, len(rows))
		for _, r := range rows {
			columns = append(columns, ColumnInfo{Name: r.Name, Type: r.Type})
		}
		return columns, nil

	case BackendPostgres:
		var rows []struct {
			ColumnName string
			DataType   string
		}
		query := `
			SELECT column_name, data_type
			FROM information_schema.columns
			WHERE table_schema = 'public' AND table_name = ?
			ORDER BY ordinal_position`
		if err := s.db.WithContext(ctx).Raw(query, table).Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to read postgres schema for %s: %w", table, err)
		}
		columns := make([]ColumnInfo, 0, len(rows))
		for _, r := range rows {
			columns = append(columns, ColumnInfo{Name: r.ColumnName, Type: r.DataType})
		}
		return columns, nil
	}

	return nil, fmt.Errorf("unsupported store backend: %s", s.backend)
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// SchemaPrompt renders table info into the plain-text block embedded in the
// agent's system prompt.
func SchemaPrompt(infos []TableInfo) string {
	var b strings.Builder
	for i, info := range infos {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Table: ")
		b.WriteString(info.Name)
		b.WriteString("\nColumns: ")
		for j, col := range info.Columns {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(col.Name)
			b.WriteString(" (")
			b.WriteString(col.Type)
			b.WriteString(")")
		}
		b.WriteString("\n")
	}
	return b.String()
}
