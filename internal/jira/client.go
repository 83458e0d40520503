package jira

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"dataset-sql-assistant/internal/config"
)

// Client is a thin Jira REST client covering what the assistant needs:
// a connection check and JQL issue search.
type Client struct {
	http       *resty.Client
	apiVersion string
}

type Project struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type Status struct {
	Name string `json:"name"`
}

type User struct {
	DisplayName string `json:"displayName"`
}

type Priority struct {
	Name string `json:"name"`
}

type IssueFields struct {
	Summary  string    `json:"summary"`
	Status   Status    `json:"status"`
	Assignee *User     `json:"assignee"`
	Priority *Priority `json:"priority"`
}

type Issue struct {
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

type searchResponse struct {
	Total  int     `json:"total"`
	Issues []Issue `json:"issues"`
}

func NewClient(cfg config.JiraConfig) *Client {
	apiVersion := "2"
	if cfg.IsCloud {
		apiVersion = "3"
	}

	http := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.InstanceURL, "/")).
		SetBasicAuth(cfg.Username, cfg.APIToken).
		SetTimeout(20 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second)

	return &Client{http: http, apiVersion: apiVersion}
}

// VerifyConnection fetches the project list and reports the first few names,
// mirroring the product's "Test Jira Connection" action.
func (c *Client) VerifyConnection(ctx context.Context) (int, []string, error) {
	var projects []Project
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&projects).
		Get(fmt.Sprintf("/rest/api/%s/project", c.apiVersion))
	if err != nil {
		return 0, nil, fmt.Errorf("jira connection failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, nil, fmt.Errorf("jira returned %d: %s", resp.StatusCode(), resp.String())
	}

	names := make([]string, 0, 5)
	for _, p := range projects {
		if len(names) == 5 {
			break
		}
		if p.Name != "" {
			names = append(names, p.Name)
		} else {
			names = append(names, p.Key)
		}
	}
	return len(projects), names, nil
}

// SearchIssues runs a JQL query and returns up to maxResults issues.
func (c *Client) SearchIssues(ctx context.Context, jql string, maxResults int) (int, []Issue, error) {
	if maxResults <= 0 {
		maxResults = 20
	}

	var result searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("jql", jql).
		SetQueryParam("maxResults", fmt.Sprintf("%d", maxResults)).
		SetQueryParam("fields", "summary,status,assignee,priority").
		SetResult(&result).
		Get(fmt.Sprintf("/rest/api/%s/search", c.apiVersion))
	if err != nil {
		return 0, nil, fmt.Errorf("jira search failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, nil, fmt.Errorf("jira search returned %d: %s", resp.StatusCode(), resp.String())
	}

	return result.Total, result.Issues, nil
}
