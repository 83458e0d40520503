package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"dataset-sql-assistant/internal/datastore"
)

const (
	nodeGenerateSQL   = "GenerateSQL"
	nodeExecuteSQL    = "ExecuteSQL"
	nodeComposeAnswer = "ComposeAnswer"
	nodeFormatOutput  = "FormatOutput"
)

// Store is the slice of the datastore the agent needs.
type Store interface {
	ExecuteQuery(ctx context.Context, query string) (*datastore.QueryResult, error)
	AllTableInfo(ctx context.Context) ([]datastore.TableInfo, error)
	Backend() string
}

// Result is one answered question.
type Result struct {
	Answer   string           `json:"answer"`
	SQLQuery string           `json:"sql_query"`
	Columns  []string         `json:"columns,omitempty"`
	Rows     []map[string]any `json:"rows,omitempty"`
}

// SQLAgent answers natural-language questions by generating a read-only SQL
// query, running it against the datasets store, and turning the rows back
// into prose.
type SQLAgent struct {
	runner compose.Runnable[string, *Result]
}

// queryState travels between the graph nodes.
type queryState struct {
	Question string
	Schema   string
	SQL      string
	Result   *datastore.QueryResult
	Answer   string
}

const sqlSystemPromptTmpl = `You are an expert %s analyst. You will be given a database schema and a user question.
Write one SQL query that answers the question.

Database schema:
%s

Rules:
1. Use standard %s syntax.
2. Output only the SQL statement. No markdown fences, no explanation, no extra characters.
3. Exactly one SELECT statement. Never modify data.
4. When the question names a table or column explicitly, use it as given.`

const answerSystemPrompt = `You answer questions about tabular data. You will be given the user question, the SQL query that was run, and its results.

Rules:
1. Do NOT show any SQL in your response.
2. Do NOT explain your reasoning.
3. Do NOT prefix the answer with phrases like "The answer is" or "Based on the data".
4. Give only the direct, concise answer, including the actual values and numbers.`

// rows beyond this are not shown to the model; enough for every realistic
// aggregate or lookup while keeping prompts bounded
const maxRowsInPrompt = 50

func NewSQLAgent(ctx context.Context, cm model.BaseChatModel, store Store) (*SQLAgent, error) {
	dialect := "SQL"
	switch store.Backend() {
	case datastore.BackendSQLite:
		dialect = "SQLite"
	case datastore.BackendPostgres:
		dialect = "PostgreSQL"
	}

	g := compose.NewGraph[string, *Result]()

	_ = g.AddLambdaNode(nodeGenerateSQL, compose.InvokableLambda(func(ctx context.Context, question string) (*queryState, error) {
		question = strings.TrimSpace(question)
		if question == "" {
			return nil, fmt.Errorf("question cannot be empty")
		}

		infos, err := store.AllTableInfo(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load schema: %w", err)
		}
		if len(infos) == 0 {
			return nil, ErrNoDatasets
		}

		state := &queryState{
			Question: question,
			Schema:   datastore.SchemaPrompt(infos),
		}

		messages := []*schema.Message{
			schema.SystemMessage(fmt.Sprintf(sqlSystemPromptTmpl, dialect, state.Schema, dialect)),
			schema.UserMessage(question),
		}

		resp, err := cm.Generate(ctx, messages)
		if err != nil {
			return nil, fmt.Errorf("SQL generation failed: %w", err)
		}

		state.SQL = ExtractSQL(resp.Content)
		if state.SQL == "" {
			return nil, fmt.Errorf("model returned no SQL for question %q", question)
		}
		return state, nil
	}))

	_ = g.AddLambdaNode(nodeExecuteSQL, compose.InvokableLambda(func(ctx context.Context, state *queryState) (*queryState, error) {
		result, err := store.ExecuteQuery(ctx, state.SQL)
		if err != nil {
			return nil, fmt.Errorf("generated query failed: %w", err)
		}
		state.Result = result
		return state, nil
	}))

	_ = g.AddLambdaNode(nodeComposeAnswer, compose.InvokableLambda(func(ctx context.Context, state *queryState) (*queryState, error) {
		messages := []*schema.Message{
			schema.SystemMessage(answerSystemPrompt),
			schema.UserMessage(fmt.Sprintf(
				"Question: %s\n\nSQL query: %s\n\nResults:\n%s",
				state.Question, state.SQL, renderResult(state.Result),
			)),
		}

		resp, err := cm.Generate(ctx, messages)
		if err != nil {
			return nil, fmt.Errorf("answer generation failed: %w", err)
		}
		state.Answer = CleanAnswer(resp.Content)
		return state, nil
	}))

	_ = g.AddLambdaNode(nodeFormatOutput, compose.InvokableLambda(func(ctx context.Context, state *queryState) (*Result, error) {
		return &Result{
			Answer:   state.Answer,
			SQLQuery: state.SQL,
			Columns:  state.Result.Columns,
			Rows:     state.Result.Rows,
		}, nil
	}))

	_ = g.AddEdge(compose.START, nodeGenerateSQL)
	_ = g.AddEdge(nodeGenerateSQL, nodeExecuteSQL)
	_ = g.AddEdge(nodeExecuteSQL, nodeComposeAnswer)
	_ = g.AddEdge(nodeComposeAnswer, nodeFormatOutput)
	_ = g.AddEdge(nodeFormatOutput, compose.END)

	runner, err := g.Compile(ctx, compose.WithGraphName("SQLAgent"))
	if err != nil {
		return nil, fmt.Errorf("failed to compile agent graph: %w", err)
	}

	return &SQLAgent{runner: runner}, nil
}

// Query answers one natural-language question.
func (a *SQLAgent) Query(ctx context.Context, question string) (*Result, error) {
	return a.runner.Invoke(ctx, question)
}

// renderResult serializes query results for the answer prompt, capping the row
// count so a broad SELECT cannot blow up the context window.
func renderResult(result *datastore.QueryResult) string {
	if result == nil || len(result.Rows) == 0 {
		return "(no rows)"
	}

	rows := result.Rows
	truncated := false
	if len(rows) > maxRowsInPrompt {
		rows = rows[:maxRowsInPrompt]
		truncated = true
	}

	var b strings.Builder
	b.WriteString(strings.Join(result.Columns, " | "))
	b.WriteString("\n")
	for _, row := range rows {
		cells := make([]string, len(result.Columns))
		for i, col := range result.Columns {
			cells[i] = formatCell(row[col])
		}
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString("\n")
	}
	if truncated {
		fmt.Fprintf(&b, "(%d more rows omitted)\n", result.RowCount-maxRowsInPrompt)
	}
	return b.String()
}

func formatCell(v any) string {
	if v == nil {
		return "NULL"
	}
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(raw)
	}
}
