package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataset-sql-assistant/internal/config"
)

func TestNormalizeNumber(t *testing.T) {
	assert.Equal(t, "whatsapp:+1555000", NormalizeNumber("+1555000"))
	assert.Equal(t, "whatsapp:+1555000", NormalizeNumber("whatsapp:+1555000"))
	assert.Equal(t, "whatsapp:+1555000", NormalizeNumber("  +1555000  "))
	assert.Equal(t, "", NormalizeNumber(""))
}

func TestStripPrefix(t *testing.T) {
	assert.Equal(t, "+1555000", StripPrefix("whatsapp:+1555000"))
	assert.Equal(t, "+1555000", StripPrefix("+1555000"))
}

func TestNewSenderRequiresCredentials(t *testing.T) {
	_, err := NewSender(config.TwilioConfig{})
	assert.Error(t, err)

	_, err = NewSender(config.TwilioConfig{AccountSID: "AC123"})
	assert.Error(t, err)

	sender, err := NewSender(config.TwilioConfig{
		AccountSID: "AC123",
		AuthToken:  "secret",
		FromNumber: "+1555000",
	})
	require.NoError(t, err)
	assert.NotNil(t, sender)
}

func TestMessageReply(t *testing.T) {
	xml, err := MessageReply("Hello from the assistant")
	require.NoError(t, err)

	assert.Contains(t, xml, "<Response>")
	assert.Contains(t, xml, "<Message>Hello from the assistant</Message>")
}

func TestMessageReplyEscapes(t *testing.T) {
	xml, err := MessageReply(`5 < 10 & "quotes"`)
	require.NoError(t, err)
	assert.Contains(t, xml, "&lt;")
	assert.Contains(t, xml, "&amp;")
}
