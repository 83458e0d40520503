package chatmodel

import (
	"context"
	"errors"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"dataset-sql-assistant/internal/config"
)

// The openai factory also covers OpenAI-compatible endpoints (set
// OPENAI_BASE_URL to point it elsewhere).
func initOpenAI() {
	register("openai", func(ctx context.Context, cfg config.ModelConfig) (model.BaseChatModel, error) {
		if cfg.OpenAIKey == "" {
			return nil, errors.New("OPENAI_API_KEY is not set")
		}

		temperature := cfg.Temperature
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:      cfg.OpenAIKey,
			BaseURL:     cfg.OpenAIBaseURL,
			Model:       cfg.OpenAIChatModel,
			Temperature: &temperature,
		})
	})
}
