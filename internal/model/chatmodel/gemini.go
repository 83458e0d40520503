package chatmodel

import (
	"context"
	"errors"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"

	"dataset-sql-assistant/internal/config"
)

func initGemini() {
	register("gemini", func(ctx context.Context, cfg config.ModelConfig) (model.BaseChatModel, error) {
		if cfg.GeminiKey == "" {
			return nil, errors.New("GOOGLE_API_KEY is not set")
		}

		cli, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: cfg.GeminiKey,
		})
		if err != nil {
			return nil, err
		}

		temperature := cfg.Temperature
		return gemini.NewChatModel(ctx, &gemini.Config{
			Client:      cli,
			Model:       cfg.GeminiChatModel,
			Temperature: &temperature,
		})
	})
}
