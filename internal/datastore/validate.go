package datastore

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var commentPattern = regexp.MustCompile(`--.*|/\*[\s\S]*?\*/`)

// Statements the agent must never run. Keyword matching is deliberately
// conservative: a SELECT whose string literals mention DROP is rejected too,
// which is an acceptable trade for model-generated SQL.
var forbiddenKeywords = []*regexp.Regexp{
	regexp.MustCompile(`\bINSERT\b`),
	regexp.MustCompile(`\bUPDATE\b`),
	regexp.MustCompile(`\bDELETE\b`),
	regexp.MustCompile(`\bDROP\b`),
	regexp.MustCompile(`\bALTER\b`),
	regexp.MustCompile(`\bTRUNCATE\b`),
	regexp.MustCompile(`\bCREATE\b`),
	regexp.MustCompile(`\bGRANT\b`),
	regexp.MustCompile(`\bATTACH\b`),
	regexp.MustCompile(`\bPRAGMA\b`),
}

// ValidateReadOnly rejects everything except a single SELECT (or WITH ... SELECT)
// statement. The SQL reaching this function is model-generated, so the store
// treats it as untrusted input: no writes, no DDL, no statement stacking.
func ValidateReadOnly(query string) error {
	normalized := commentPattern.ReplaceAllString(query, "")
	normalized = strings.TrimSpace(normalized)

	if normalized == "" {
		return errors.New("query cannot be empty")
	}

	// Allow one trailing semicolon, nothing after it.
	if idx := strings.Index(normalized, ";"); idx >= 0 {
		if strings.TrimSpace(normalized[idx+1:]) != "" {
			return errors.New("multiple statements are not allowed")
		}
		normalized = strings.TrimSpace(normalized[:idx])
	}

	upper := strings.ToUpper(normalized)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return fmt.Errorf("only SELECT statements are allowed, got: %s", firstWord(upper))
	}

	for _, re := range forbiddenKeywords {
		if kw := re.FindString(upper); kw != "" {
			return fmt.Errorf("statement contains forbidden keyword %s", kw)
		}
	}

	return nil
}

var wordPattern = regexp.MustCompile(`[A-Z_]+`)

func firstWord(s string) string {
	w := wordPattern.FindString(s)
	if w == "" {
		return "<empty>"
	}
	return w
}
