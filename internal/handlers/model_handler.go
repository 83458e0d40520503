package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dataset-sql-assistant/internal/config"
	"dataset-sql-assistant/internal/model/chatmodel"
	"dataset-sql-assistant/internal/responses"
)

type ModelHandler struct {
	modelCfg config.ModelConfig
}

func NewModelHandler(modelCfg config.ModelConfig) *ModelHandler {
	return &ModelHandler{modelCfg: modelCfg}
}

// List returns the Gemini models that support content generation, so
// operators can see what GEMINI_CHAT_MODEL accepts.
func (h *ModelHandler) List(c *gin.Context) {
	names, err := chatmodel.ListModels(c.Request.Context(), h.modelCfg)
	if err != nil {
		responses.Fail(c, http.StatusBadGateway, err, "Failed to list models")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{
		"provider": h.modelCfg.Provider,
		"active":   h.modelCfg.GeminiChatModel,
		"models":   names,
	}, "Available models")
}
