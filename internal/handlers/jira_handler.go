package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"dataset-sql-assistant/internal/jira"
	"dataset-sql-assistant/internal/responses"
)

type JiraHandler struct {
	client *jira.Client
}

func NewJiraHandler(client *jira.Client) *JiraHandler {
	return &JiraHandler{client: client}
}

// Verify checks the Jira credentials and reports a few project names, the
// same check the product exposed as "Test Jira Connection".
func (h *JiraHandler) Verify(c *gin.Context) {
	if h.client == nil {
		responses.Fail(c, http.StatusConflict, nil, "Jira is not configured")
		return
	}

	total, names, err := h.client.VerifyConnection(c.Request.Context())
	if err != nil {
		responses.Fail(c, http.StatusBadGateway, err, "Jira connection check failed")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{
		"projects":      names,
		"project_count": total,
	}, fmt.Sprintf("Successfully connected to Jira. Found %d projects.", total))
}
