package chatmodel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"dataset-sql-assistant/internal/config"
)

const geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta"

type geminiModel struct {
	Name                       string   `json:"name"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
}

type geminiModelList struct {
	Models        []geminiModel `json:"models"`
	NextPageToken string        `json:"nextPageToken"`
}

// ListModels returns the Gemini model names that support generateContent,
// so operators can check what GEMINI_CHAT_MODEL may be set to.
func ListModels(ctx context.Context, cfg config.ModelConfig) ([]string, error) {
	if cfg.GeminiKey == "" {
		return nil, errors.New("GOOGLE_API_KEY is not set")
	}

	client := resty.New().
		SetBaseURL(geminiAPIBase).
		SetTimeout(15 * time.Second)

	var names []string
	pageToken := ""
	for {
		var page geminiModelList
		req := client.R().
			SetContext(ctx).
			SetQueryParam("key", cfg.GeminiKey).
			SetResult(&page)
		if pageToken != "" {
			req.SetQueryParam("pageToken", pageToken)
		}

		resp, err := req.Get("/models")
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("model listing returned %d: %s", resp.StatusCode(), resp.String())
		}

		for _, m := range page.Models {
			for _, method := range m.SupportedGenerationMethods {
				if method == "generateContent" {
					names = append(names, strings.TrimPrefix(m.Name, "models/"))
					break
				}
			}
		}

		if page.NextPageToken == "" {
			return names, nil
		}
		pageToken = page.NextPageToken
	}
}
