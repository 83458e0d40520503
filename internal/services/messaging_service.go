package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"dataset-sql-assistant/internal/agent"
	"dataset-sql-assistant/internal/utils"
	"dataset-sql-assistant/internal/whatsapp"
)

// MessagingService routes inbound WhatsApp messages to the right agent and
// shapes the reply for the channel. It never returns an error for incoming
// traffic: the webhook always answers with some human-readable text.
type MessagingService struct {
	ask         *AskService
	jiraAgent   *agent.JiraAgent
	sender      *whatsapp.Sender
	maxReplyLen int
}

func NewMessagingService(ask *AskService, jiraAgent *agent.JiraAgent, sender *whatsapp.Sender, maxReplyLen int) *MessagingService {
	return &MessagingService{
		ask:         ask,
		jiraAgent:   jiraAgent,
		sender:      sender,
		maxReplyLen: maxReplyLen,
	}
}

const fallbackReply = "I'm sorry, I couldn't process your query. Please try asking a question about your " +
	"data, or start your message with 'jira' for ticket-related questions."

// ErrTwilioNotConfigured means no Twilio credentials were supplied; handlers
// report it as a configuration problem rather than a delivery failure.
var ErrTwilioNotConfigured = errors.New("twilio is not configured")

// HandleIncoming answers one inbound message. Messages starting with jira,
// ticket or issue go to the Jira agent when it is configured; everything else
// goes to the SQL agent.
func (s *MessagingService) HandleIncoming(ctx context.Context, from, body string) string {
	number := whatsapp.StripPrefix(from)
	log.Info("received message", "from", number)

	if body == "" {
		return fallbackReply
	}

	switch utils.FirstWord(body) {
	case "jira", "ticket", "issue":
		if s.jiraAgent != nil {
			answer, err := s.jiraAgent.Query(ctx, body)
			if err != nil {
				log.Error("jira agent failed", "err", err)
				return fmt.Sprintf("Sorry, an error occurred while processing your message: %v", err)
			}
			return utils.Truncate(answer, s.maxReplyLen)
		}
		// fall through to the SQL agent when Jira is not configured
	}

	result, err := s.ask.Ask(ctx, body, "whatsapp")
	if err != nil {
		if errors.Is(err, agent.ErrNoDatasets) {
			return "No datasets are loaded yet. Add CSV files to the data directory and reload."
		}
		log.Error("sql agent failed", "err", err)
		return fmt.Sprintf("Sorry, an error occurred while processing your message: %v", err)
	}
	if result.Answer == "" {
		return "I'm sorry, I couldn't find an answer to your question."
	}

	return utils.Truncate(result.Answer, s.maxReplyLen)
}

// SendMessage delivers an outbound WhatsApp message (the "Send WhatsApp
// Message" product action).
func (s *MessagingService) SendMessage(to, message string) (string, error) {
	if s.sender == nil {
		return "", ErrTwilioNotConfigured
	}
	return s.sender.Send(to, utils.Truncate(message, s.maxReplyLen))
}

// VerifyConnection checks the Twilio credentials (the "Test Twilio
// Connection" product action).
func (s *MessagingService) VerifyConnection() (string, error) {
	if s.sender == nil {
		return "", ErrTwilioNotConfigured
	}
	return s.sender.VerifyConnection()
}
