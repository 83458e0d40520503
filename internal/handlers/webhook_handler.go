package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"dataset-sql-assistant/internal/services"
	"dataset-sql-assistant/internal/whatsapp"
)

type WebhookHandler struct {
	messaging *services.MessagingService
}

func NewWebhookHandler(messaging *services.MessagingService) *WebhookHandler {
	return &WebhookHandler{messaging: messaging}
}

// emergency fallback if TwiML rendering itself fails
const emptyTwiML = `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`

// Receive handles an inbound Twilio WhatsApp callback. Twilio retries on
// non-2xx responses, so this handler always answers 200 with a TwiML body,
// even when the agent fails.
func (h *WebhookHandler) Receive(c *gin.Context) {
	body := c.PostForm("Body")
	from := c.PostForm("From")

	reply := h.messaging.HandleIncoming(c.Request.Context(), from, body)

	xml, err := whatsapp.MessageReply(reply)
	if err != nil {
		log.Error("failed to render TwiML reply", "err", err)
		c.Data(http.StatusOK, "text/xml", []byte(emptyTwiML))
		return
	}

	c.Data(http.StatusOK, "text/xml", []byte(xml))
}
