package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferColumnTypes(t *testing.T) {
	records := [][]string{
		{"1", "1.5", "hello", "", "10"},
		{"2", "2", "world", "", "x"},
		{"3", "-0.25", "", "", "12"},
	}
	types := inferColumnTypes(records, 5)

	assert.Equal(t, typeInteger, types[0])
	assert.Equal(t, typeReal, types[1], "mixed int and float settles on REAL")
	assert.Equal(t, typeText, types[2])
	assert.Equal(t, typeText, types[3], "column with no values stays TEXT")
	assert.Equal(t, typeText, types[4], "one non-numeric cell forces TEXT")
}

func TestInferColumnTypesIntWidensToReal(t *testing.T) {
	types := inferColumnTypes([][]string{{"10"}, {"3.14"}}, 1)
	assert.Equal(t, typeReal, types[0])
}

func TestConvertCell(t *testing.T) {
	assert.Nil(t, convertCell("", typeText), "empty cells become NULL")
	assert.Equal(t, int64(42), convertCell("42", typeInteger))
	assert.Equal(t, 2.5, convertCell("2.5", typeReal))
	// cells that no longer parse fall back to the raw string
	assert.Equal(t, "n/a", convertCell("n/a", typeInteger))
}

func TestSQLType(t *testing.T) {
	assert.Equal(t, "INTEGER", typeInteger.sqlType())
	assert.Equal(t, "REAL", typeReal.sqlType())
	assert.Equal(t, "TEXT", typeText.sqlType())
}
