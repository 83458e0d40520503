package chatmodel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"dataset-sql-assistant/internal/config"
)

func TestGetChatModelUnknownProvider(t *testing.T) {
	_, err := GetChatModel(context.Background(), config.ModelConfig{Provider: "nope"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported model provider")
}

func TestProvidersRegistered(t *testing.T) {
	providers := Providers()
	assert.Contains(t, providers, "gemini")
	assert.Contains(t, providers, "openai")
}
