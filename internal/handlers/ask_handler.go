package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dataset-sql-assistant/internal/agent"
	"dataset-sql-assistant/internal/responses"
	"dataset-sql-assistant/internal/services"
)

type AskHandler struct {
	askService *services.AskService
}

func NewAskHandler(askService *services.AskService) *AskHandler {
	return &AskHandler{askService: askService}
}

type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask answers a natural-language question about the loaded datasets.
func (h *AskHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body: question is required")
		return
	}

	result, err := h.askService.Ask(c.Request.Context(), req.Question, "api")
	if err != nil {
		if errors.Is(err, agent.ErrNoDatasets) {
			responses.Fail(c, http.StatusConflict, err, "No datasets loaded. Add CSV files to the data directory and reload.")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to answer question")
		return
	}

	responses.Success(c, http.StatusOK, result, "Question answered")
}

// History returns recent questions, newest first.
func (h *AskHandler) History(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			responses.Fail(c, http.StatusBadRequest, err, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := h.askService.Recent(limit)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to load query history")
		return
	}

	responses.Success(c, http.StatusOK, entries, "Query history")
}
