package routes

import (
	"github.com/gin-gonic/gin"

	"dataset-sql-assistant/internal/handlers"
)

// WebhookRoutes registers the Twilio callback at the root path (not under
// /api/v1): the webhook URL is configured in the Twilio console and has been
// /webhook since the first deployment.
type WebhookRoutes struct {
	handler    *handlers.WebhookHandler
	middleware []gin.HandlerFunc
}

func NewWebhookRoutes(handler *handlers.WebhookHandler, middleware ...gin.HandlerFunc) *WebhookRoutes {
	return &WebhookRoutes{handler: handler, middleware: middleware}
}

func (r *WebhookRoutes) RegisterRoutes(router *gin.Engine) {
	chain := append([]gin.HandlerFunc{}, r.middleware...)
	chain = append(chain, r.handler.Receive)
	router.POST("/webhook", chain...)
}
