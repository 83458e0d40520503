package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SanitizeIdentifier turns a raw CSV header (or file name) into a safe,
// lowercase SQL identifier: spaces and hyphens become underscores, dots are
// dropped, everything outside [a-z0-9_] is stripped.
func SanitizeIdentifier(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ToLower(s)

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ', r == '-':
			b.WriteRune('_')
		case r == '.':
			// dropped
		}
	}

	out := b.String()
	// collapse runs of underscores left by consecutive separators
	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}
	out = strings.Trim(out, "_")

	if out == "" {
		return "col"
	}
	// identifiers must not start with a digit
	if out[0] >= '0' && out[0] <= '9' {
		out = "c_" + out
	}
	return out
}

// SanitizeColumns sanitizes a full header row and resolves collisions by
// suffixing _2, _3, ... so every column name stays unique. The suffix search
// skips names already emitted, so a header like "a_2, a, a" cannot produce a
// duplicate.
func SanitizeColumns(header []string) []string {
	taken := make(map[string]bool, len(header))
	out := make([]string, len(header))

	for i, raw := range header {
		name := SanitizeIdentifier(raw)
		if taken[name] {
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s_%d", name, n)
				if !taken[candidate] {
					name = candidate
					break
				}
			}
		}
		taken[name] = true
		out[i] = name
	}
	return out
}

// TableNameForFile derives the dataset table name from a CSV path.
func TableNameForFile(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return SanitizeIdentifier(base)
}
