package routes

import (
	"github.com/gin-gonic/gin"

	"dataset-sql-assistant/internal/handlers"
)

type AskRoutes struct {
	handler *handlers.AskHandler
}

func NewAskRoutes(handler *handlers.AskHandler) *AskRoutes {
	return &AskRoutes{handler: handler}
}

func (r *AskRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/ask", r.handler.Ask)
	router.GET("/history", r.handler.History)
}
