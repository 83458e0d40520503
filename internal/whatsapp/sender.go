package whatsapp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"dataset-sql-assistant/internal/config"
)

// Sender sends WhatsApp messages through Twilio.
type Sender struct {
	client     *twilio.RestClient
	accountSID string
	from       string
	validator  twilioclient.RequestValidator
}

func NewSender(cfg config.TwilioConfig) (*Sender, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, errors.New("twilio credentials are not configured")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &Sender{
		client:     client,
		accountSID: cfg.AccountSID,
		from:       NormalizeNumber(cfg.FromNumber),
		validator:  twilioclient.NewRequestValidator(cfg.AuthToken),
	}, nil
}

// NormalizeNumber makes sure a number carries the whatsapp: prefix Twilio
// expects on both sides of a WhatsApp message.
func NormalizeNumber(number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		return number
	}
	if !strings.HasPrefix(number, "whatsapp:") {
		return "whatsapp:" + number
	}
	return number
}

// StripPrefix removes the whatsapp: prefix for display and logging.
func StripPrefix(number string) string {
	return strings.TrimPrefix(number, "whatsapp:")
}

// Send delivers one message and returns the Twilio message SID.
func (s *Sender) Send(to, body string) (string, error) {
	params := &openapi.CreateMessageParams{}
	params.SetTo(NormalizeNumber(to))
	params.SetFrom(s.from)
	params.SetBody(body)

	msg, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("failed to send WhatsApp message: %w", err)
	}
	if msg.Sid == nil {
		return "", errors.New("twilio returned no message SID")
	}
	return *msg.Sid, nil
}

// VerifyConnection fetches the account to confirm the credentials work,
// returning the account's friendly name.
func (s *Sender) VerifyConnection() (string, error) {
	account, err := s.client.Api.FetchAccount(s.accountSID)
	if err != nil {
		return "", fmt.Errorf("twilio connection error: %w", err)
	}
	if account.FriendlyName == nil {
		return s.accountSID, nil
	}
	return *account.FriendlyName, nil
}

// ValidateSignature checks the X-Twilio-Signature header on a webhook request.
func (s *Sender) ValidateSignature(url string, params map[string]string, signature string) bool {
	return s.validator.Validate(url, params, signature)
}
