package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dataset-sql-assistant/internal/responses"
	"dataset-sql-assistant/internal/services"
)

type MessagingHandler struct {
	messaging *services.MessagingService
}

func NewMessagingHandler(messaging *services.MessagingService) *MessagingHandler {
	return &MessagingHandler{messaging: messaging}
}

type SendMessageRequest struct {
	To      string `json:"to" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// Send delivers an outbound WhatsApp message.
func (h *MessagingHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body: to and message are required")
		return
	}

	sid, err := h.messaging.SendMessage(req.To, req.Message)
	if err != nil {
		if errors.Is(err, services.ErrTwilioNotConfigured) {
			responses.Fail(c, http.StatusConflict, err, "Twilio is not configured")
			return
		}
		responses.Fail(c, http.StatusBadGateway, err, "Failed to send WhatsApp message")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"message_sid": sid}, "Message sent")
}

// Verify checks the Twilio credentials.
func (h *MessagingHandler) Verify(c *gin.Context) {
	name, err := h.messaging.VerifyConnection()
	if err != nil {
		if errors.Is(err, services.ErrTwilioNotConfigured) {
			responses.Fail(c, http.StatusConflict, err, "Twilio is not configured")
			return
		}
		responses.Fail(c, http.StatusBadGateway, err, "Twilio connection check failed")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"account": name}, "Successfully connected to Twilio")
}
