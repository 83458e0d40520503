package datastore

import (
	"context"
	"fmt"
	"time"
)

type QueryResult struct {
	Columns       []string         `json:"columns"`
	Rows          []map[string]any `json:"rows"`
	RowCount      int              `json:"row_count"`
	ExecutionTime int64            `json:"execution_time_ms"`
}

// ExecuteQuery runs a validated read-only statement and materializes the full
// result set. Callers are expected to have passed the query through
// ValidateReadOnly first; ExecuteQuery re-checks to keep the invariant local.
func (s *Store) ExecuteQuery(ctx context.Context, query string) (*QueryResult, error) {
	if err := ValidateReadOnly(query); err != nil {
		return nil, err
	}

	start := time.Now()

	rows, err := s.db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	result := &QueryResult{
		Columns: columns,
		Rows:    make([]map[string]any, 0),
	}

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			switch v := values[i].(type) {
			case []byte:
				row[col] = string(v)
			default:
				row[col] = v
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("result iteration failed: %w", err)
	}

	result.RowCount = len(result.Rows)
	result.ExecutionTime = time.Since(start).Milliseconds()
	return result, nil
}
