package whatsapp

import (
	"github.com/twilio/twilio-go/twiml"
)

// MessageReply renders the TwiML document Twilio expects as a webhook
// response: a single <Message> verb carrying the reply body.
func MessageReply(body string) (string, error) {
	return twiml.Messages([]twiml.Element{
		&twiml.MessagingMessage{Body: body},
	})
}
