package routes

import (
	"github.com/gin-gonic/gin"

	"dataset-sql-assistant/internal/handlers"
)

type MessagingRoutes struct {
	messaging *handlers.MessagingHandler
	jira      *handlers.JiraHandler
	model     *handlers.ModelHandler
}

func NewMessagingRoutes(messaging *handlers.MessagingHandler, jira *handlers.JiraHandler, model *handlers.ModelHandler) *MessagingRoutes {
	return &MessagingRoutes{messaging: messaging, jira: jira, model: model}
}

func (r *MessagingRoutes) RegisterRoutes(router *gin.RouterGroup) {
	whatsapp := router.Group("/whatsapp")
	{
		whatsapp.GET("/verify", r.messaging.Verify)
		whatsapp.POST("/send", r.messaging.Send)
	}

	router.GET("/jira/verify", r.jira.Verify)
	router.GET("/models", r.model.List)
}
