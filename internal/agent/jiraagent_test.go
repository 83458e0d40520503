package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataset-sql-assistant/internal/jira"
)

type fakeSearcher struct {
	total   int
	issues  []jira.Issue
	err     error
	lastJQL string
}

func (s *fakeSearcher) SearchIssues(_ context.Context, jql string, _ int) (int, []jira.Issue, error) {
	s.lastJQL = jql
	return s.total, s.issues, s.err
}

func openIssue(key, summary string) jira.Issue {
	issue := jira.Issue{Key: key}
	issue.Fields.Summary = summary
	issue.Fields.Status.Name = "Open"
	return issue
}

func TestJiraAgentQuery(t *testing.T) {
	ctx := context.Background()
	searcher := &fakeSearcher{
		total:  2,
		issues: []jira.Issue{openIssue("PROJ-1", "Login broken"), openIssue("PROJ-2", "Slow reports")},
	}
	cm := &scriptedModel{responses: []string{
		"```\nproject = PROJ AND status = Open\n```",
		"PROJ-1 (Login broken) and PROJ-2 (Slow reports) are open.",
	}}

	agent, err := NewJiraAgent(ctx, cm, searcher)
	require.NoError(t, err)

	answer, err := agent.Query(ctx, "jira what is open in PROJ?")
	require.NoError(t, err)

	assert.Equal(t, "project = PROJ AND status = Open", searcher.lastJQL)
	assert.Equal(t, "PROJ-1 (Login broken) and PROJ-2 (Slow reports) are open.", answer)
}

func TestJiraAgentNoMatches(t *testing.T) {
	ctx := context.Background()
	cm := &scriptedModel{responses: []string{"project = EMPTY"}}

	agent, err := NewJiraAgent(ctx, cm, &fakeSearcher{})
	require.NoError(t, err)

	answer, err := agent.Query(ctx, "anything in EMPTY?")
	require.NoError(t, err)
	assert.Equal(t, "No Jira issues match your question.", answer)
	assert.Equal(t, 1, cm.calls, "no summarize call when nothing matched")
}

func TestJiraAgentSearchFailure(t *testing.T) {
	ctx := context.Background()
	cm := &scriptedModel{responses: []string{"bad ~ jql"}}
	searcher := &fakeSearcher{err: errors.New("jira returned 400")}

	agent, err := NewJiraAgent(ctx, cm, searcher)
	require.NoError(t, err)

	_, err = agent.Query(ctx, "jira broken question")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jira returned 400")
}

func TestRenderIssues(t *testing.T) {
	issue := openIssue("PROJ-9", "Crash on save")
	issue.Fields.Assignee = &jira.User{DisplayName: "Dana"}
	issue.Fields.Priority = &jira.Priority{Name: "High"}

	got := renderIssues([]jira.Issue{issue})
	assert.Equal(t, "PROJ-9: Crash on save [Open, assignee: Dana, priority: High]\n", got)
}
