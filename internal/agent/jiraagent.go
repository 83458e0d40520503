package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"dataset-sql-assistant/internal/jira"
)

const (
	nodeGenerateJQL = "GenerateJQL"
	nodeSearchJira  = "SearchJira"
	nodeSummarize   = "Summarize"
)

// IssueSearcher is the slice of the Jira client the agent needs.
type IssueSearcher interface {
	SearchIssues(ctx context.Context, jql string, maxResults int) (int, []jira.Issue, error)
}

// JiraAgent answers ticket questions with the same generate-retrieve-answer
// pipeline as the SQL agent, using JQL instead of SQL.
type JiraAgent struct {
	runner compose.Runnable[string, string]
}

type jiraState struct {
	Question string
	JQL      string
	Total    int
	Issues   []jira.Issue
}

const jqlSystemPrompt = `You are a Jira expert. Translate the user's question into one JQL query.

Rules:
1. Output only the JQL query. No markdown, no explanation.
2. Prefer ordering by priority or updated date when the question implies urgency or recency.
3. When the question names a project, status, or assignee, use it as given.`

const jiraAnswerSystemPrompt = `You answer questions about Jira issues. You will be given the user question and the matching issues.

Rules:
1. Do NOT show JQL in your response.
2. Do NOT explain your reasoning.
3. Give a clear, direct answer listing the relevant issue keys and summaries.`

const maxIssuesInPrompt = 20

func NewJiraAgent(ctx context.Context, cm model.BaseChatModel, searcher IssueSearcher) (*JiraAgent, error) {
	g := compose.NewGraph[string, string]()

	_ = g.AddLambdaNode(nodeGenerateJQL, compose.InvokableLambda(func(ctx context.Context, question string) (*jiraState, error) {
		question = strings.TrimSpace(question)
		if question == "" {
			return nil, fmt.Errorf("question cannot be empty")
		}

		resp, err := cm.Generate(ctx, []*schema.Message{
			schema.SystemMessage(jqlSystemPrompt),
			schema.UserMessage(question),
		})
		if err != nil {
			return nil, fmt.Errorf("JQL generation failed: %w", err)
		}

		jql := ExtractSQL(resp.Content) // same fence-stripping rules apply
		if jql == "" {
			return nil, fmt.Errorf("model returned no JQL for question %q", question)
		}
		return &jiraState{Question: question, JQL: jql}, nil
	}))

	_ = g.AddLambdaNode(nodeSearchJira, compose.InvokableLambda(func(ctx context.Context, state *jiraState) (*jiraState, error) {
		total, issues, err := searcher.SearchIssues(ctx, state.JQL, maxIssuesInPrompt)
		if err != nil {
			return nil, err
		}
		state.Total = total
		state.Issues = issues
		return state, nil
	}))

	_ = g.AddLambdaNode(nodeSummarize, compose.InvokableLambda(func(ctx context.Context, state *jiraState) (string, error) {
		if len(state.Issues) == 0 {
			return "No Jira issues match your question.", nil
		}

		resp, err := cm.Generate(ctx, []*schema.Message{
			schema.SystemMessage(jiraAnswerSystemPrompt),
			schema.UserMessage(fmt.Sprintf(
				"Question: %s\n\nMatching issues (%d total):\n%s",
				state.Question, state.Total, renderIssues(state.Issues),
			)),
		})
		if err != nil {
			return "", fmt.Errorf("answer generation failed: %w", err)
		}
		return CleanAnswer(resp.Content), nil
	}))

	_ = g.AddEdge(compose.START, nodeGenerateJQL)
	_ = g.AddEdge(nodeGenerateJQL, nodeSearchJira)
	_ = g.AddEdge(nodeSearchJira, nodeSummarize)
	_ = g.AddEdge(nodeSummarize, compose.END)

	runner, err := g.Compile(ctx, compose.WithGraphName("JiraAgent"))
	if err != nil {
		return nil, fmt.Errorf("failed to compile jira agent graph: %w", err)
	}

	return &JiraAgent{runner: runner}, nil
}

func (a *JiraAgent) Query(ctx context.Context, question string) (string, error) {
	return a.runner.Invoke(ctx, question)
}

func renderIssues(issues []jira.Issue) string {
	var b strings.Builder
	for _, issue := range issues {
		b.WriteString(issue.Key)
		b.WriteString(": ")
		b.WriteString(issue.Fields.Summary)
		b.WriteString(" [")
		b.WriteString(issue.Fields.Status.Name)
		if issue.Fields.Assignee != nil {
			b.WriteString(", assignee: ")
			b.WriteString(issue.Fields.Assignee.DisplayName)
		}
		if issue.Fields.Priority != nil {
			b.WriteString(", priority: ")
			b.WriteString(issue.Fields.Priority.Name)
		}
		b.WriteString("]\n")
	}
	return b.String()
}
