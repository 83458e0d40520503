package routes

import (
	"github.com/gin-gonic/gin"

	"dataset-sql-assistant/internal/handlers"
)

type DatasetRoutes struct {
	handler *handlers.DatasetHandler
}

func NewDatasetRoutes(handler *handlers.DatasetHandler) *DatasetRoutes {
	return &DatasetRoutes{handler: handler}
}

func (r *DatasetRoutes) RegisterRoutes(router *gin.RouterGroup) {
	datasets := router.Group("/datasets")
	{
		datasets.GET("", r.handler.List)
		datasets.POST("/reload", r.handler.Reload)
		datasets.GET("/:name/schema", r.handler.Schema)
	}
}
