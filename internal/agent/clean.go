package agent

import (
	"regexp"
	"strings"
)

var (
	fencePattern     = regexp.MustCompile("(?s)```(?:sql|SQL)?\\s*(.*?)```")
	inlineSQLPattern = regexp.MustCompile(`(?is)SELECT\s.*?FROM\s.*?;`)
	spacePattern     = regexp.MustCompile(`\s+`)
	leadingPunct     = regexp.MustCompile(`^[,.:;]\s*`)
)

// Phrases the model tends to prefix answers with despite being told not to.
var thinkingPhrases = []string{
	"Based on the question,", "Based on the data,", "After executing the query,",
	"The query I will execute", "To answer this question", "I'll query the",
	"Looking at the data", "According to the database", "The SQL query shows",
	"The results show", "The answer is", "I found that",
}

// ExtractSQL pulls a bare SQL statement out of a model response. Models keep
// wrapping statements in markdown fences no matter what the prompt says.
func ExtractSQL(response string) string {
	if m := fencePattern.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1])
	}

	s := strings.TrimSpace(response)
	s = strings.TrimPrefix(s, "```sql")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// CleanAnswer strips leaked SQL and boilerplate reasoning prefixes from a
// final answer, leaving just the direct response.
func CleanAnswer(response string) string {
	s := fencePattern.ReplaceAllString(response, "")
	s = inlineSQLPattern.ReplaceAllString(s, "")

	for _, phrase := range thinkingPhrases {
		s = strings.ReplaceAll(s, phrase, "")
	}

	s = strings.TrimSpace(s)
	s = leadingPunct.ReplaceAllString(s, "")
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
