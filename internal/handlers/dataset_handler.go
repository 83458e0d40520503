package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dataset-sql-assistant/internal/responses"
	"dataset-sql-assistant/internal/services"
)

type DatasetHandler struct {
	datasetService *services.DatasetService
}

func NewDatasetHandler(datasetService *services.DatasetService) *DatasetHandler {
	return &DatasetHandler{datasetService: datasetService}
}

func (h *DatasetHandler) List(c *gin.Context) {
	datasets, err := h.datasetService.List()
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to list datasets")
		return
	}
	responses.Success(c, http.StatusOK, datasets, "Registered datasets")
}

// Reload re-ingests every CSV file from the data directory.
func (h *DatasetHandler) Reload(c *gin.Context) {
	datasets, err := h.datasetService.Reload(c.Request.Context())
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to reload datasets")
		return
	}
	responses.Success(c, http.StatusOK, datasets, "Datasets reloaded")
}

// Schema returns columns and sample rows for one dataset.
func (h *DatasetHandler) Schema(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		responses.Fail(c, http.StatusBadRequest, nil, "Dataset name is required")
		return
	}

	info, err := h.datasetService.TableInfo(c.Request.Context(), name)
	if err != nil {
		responses.Fail(c, http.StatusNotFound, err, "Dataset not found")
		return
	}
	responses.Success(c, http.StatusOK, info, "Dataset schema")
}
