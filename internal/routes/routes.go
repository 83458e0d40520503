package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dataset-sql-assistant/internal/handlers"
)

func RegisterRoutes(
	router *gin.Engine,
	askHandler *handlers.AskHandler,
	datasetHandler *handlers.DatasetHandler,
	messagingHandler *handlers.MessagingHandler,
	jiraHandler *handlers.JiraHandler,
	modelHandler *handlers.ModelHandler,
	webhookHandler *handlers.WebhookHandler,
	webhookMiddleware ...gin.HandlerFunc,
) {
	api := router.Group("/api/v1")

	askRoutes := NewAskRoutes(askHandler)
	askRoutes.RegisterRoutes(api)

	datasetRoutes := NewDatasetRoutes(datasetHandler)
	datasetRoutes.RegisterRoutes(api)

	messagingRoutes := NewMessagingRoutes(messagingHandler, jiraHandler, modelHandler)
	messagingRoutes.RegisterRoutes(api)

	webhookRoutes := NewWebhookRoutes(webhookHandler, webhookMiddleware...)
	webhookRoutes.RegisterRoutes(router)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "WhatsApp webhook is running",
		})
	})
}
