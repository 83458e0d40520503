package chatmodel

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"

	"dataset-sql-assistant/internal/config"
)

// Factory builds a chat model for one provider.
type Factory func(ctx context.Context, cfg config.ModelConfig) (model.BaseChatModel, error)

var registry = make(map[string]Factory)

func register(name string, factory Factory) {
	registry[name] = factory
}

func init() {
	initGemini()
	initOpenAI()
}

// GetChatModel builds the chat model selected by cfg.Provider.
func GetChatModel(ctx context.Context, cfg config.ModelConfig) (model.BaseChatModel, error) {
	factory, ok := registry[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unsupported model provider: %s", cfg.Provider)
	}
	return factory(ctx, cfg)
}

// Providers lists the registered provider names.
func Providers() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
