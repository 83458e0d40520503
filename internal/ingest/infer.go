package ingest

import "strconv"

type columnType int

const (
	typeInteger columnType = iota
	typeReal
	typeText
)

func (t columnType) sqlType() string {
	switch t {
	case typeInteger:
		return "INTEGER"
	case typeReal:
		return "REAL"
	default:
		return "TEXT"
	}
}

// inferColumnTypes scans every record and settles on the narrowest SQL type
// each column can hold. Empty cells are NULLs and carry no type information;
// a column with no values at all stays TEXT.
func inferColumnTypes(records [][]string, columnCount int) []columnType {
	types := make([]columnType, columnCount)
	hasValue := make([]bool, columnCount)
	for i := range types {
		types[i] = typeInteger
	}

	for _, record := range records {
		for i := 0; i < columnCount && i < len(record); i++ {
			cell := record[i]
			if cell == "" {
				continue
			}
			hasValue[i] = true

			switch types[i] {
			case typeInteger:
				if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
					continue
				}
				if _, err := strconv.ParseFloat(cell, 64); err == nil {
					types[i] = typeReal
					continue
				}
				types[i] = typeText
			case typeReal:
				if _, err := strconv.ParseFloat(cell, 64); err == nil {
					continue
				}
				types[i] = typeText
			}
		}
	}

	for i := range types {
		if !hasValue[i] {
			types[i] = typeText
		}
	}
	return types
}

// convertCell turns a CSV cell into the value bound to the INSERT statement.
// Empty strings become NULL so missing data never masquerades as "".
func convertCell(cell string, t columnType) any {
	if cell == "" {
		return nil
	}
	switch t {
	case typeInteger:
		if v, err := strconv.ParseInt(cell, 10, 64); err == nil {
			return v
		}
	case typeReal:
		if v, err := strconv.ParseFloat(cell, 64); err == nil {
			return v
		}
	}
	return cell
}
