package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSQL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare statement", "SELECT * FROM t", "SELECT * FROM t"},
		{"sql fence", "```sql\nSELECT 1\n```", "SELECT 1"},
		{"plain fence", "```\nSELECT 1\n```", "SELECT 1"},
		{"fence with prose around", "Here you go:\n```sql\nSELECT name FROM t\n```\nHope that helps!", "SELECT name FROM t"},
		{"unclosed fence", "```sql\nSELECT 1", "SELECT 1"},
		{"whitespace", "  SELECT 1  ", "SELECT 1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ExtractSQL(c.in))
		})
	}
}

func TestCleanAnswer(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "42 employees.", "42 employees."},
		{"thinking prefix", "Based on the data, there are 42 employees.", "there are 42 employees."},
		{"answer prefix", "The answer is: 42.", "42."},
		{"leaked fence", "There are 3 rows.\n```sql\nSELECT count(*) FROM t;\n```", "There are 3 rows."},
		{"leaked inline sql", "SELECT count(*) FROM t; gives 3.", "gives 3."},
		{"collapsed whitespace", "a\n\n  b", "a b"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, CleanAnswer(c.in))
		})
	}
}
