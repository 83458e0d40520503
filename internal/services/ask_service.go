package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"dataset-sql-assistant/internal/agent"
	"dataset-sql-assistant/internal/models"
	"dataset-sql-assistant/internal/repositories"
)

// AskService runs questions through the SQL agent, with an optional answer
// cache in front and a history record behind every call.
type AskService struct {
	agent   *agent.SQLAgent
	history *repositories.QueryHistoryRepository
	cache   *repositories.AnswerCache
}

func NewAskService(sqlAgent *agent.SQLAgent, history *repositories.QueryHistoryRepository, cache *repositories.AnswerCache) *AskService {
	return &AskService{
		agent:   sqlAgent,
		history: history,
		cache:   cache,
	}
}

// Ask answers one question. channel tags the history row (api, whatsapp, cli).
func (s *AskService) Ask(ctx context.Context, question, channel string) (*agent.Result, error) {
	if payload, ok := s.cache.Get(ctx, question); ok {
		var cached agent.Result
		if err := json.Unmarshal([]byte(payload), &cached); err == nil {
			log.Debug("answer served from cache", "channel", channel)
			return &cached, nil
		}
		// corrupt cache entries fall through to a fresh run
	}

	start := time.Now()
	result, err := s.agent.Query(ctx, question)
	elapsed := int(time.Since(start).Milliseconds())

	entry := &models.QueryHistory{
		Channel:         channel,
		Question:        question,
		Success:         boolPtr(err == nil),
		ExecutionTimeMs: &elapsed,
	}
	if result != nil {
		entry.GeneratedSQL = result.SQLQuery
		entry.Answer = result.Answer
	}
	if histErr := s.history.Create(entry); histErr != nil {
		log.Warn("failed to record query history", "err", histErr)
	}

	if err != nil {
		return nil, err
	}

	if payload, marshalErr := json.Marshal(result); marshalErr == nil {
		if cacheErr := s.cache.Set(ctx, question, string(payload)); cacheErr != nil {
			log.Warn("failed to cache answer", "err", cacheErr)
		}
	}

	return result, nil
}

// Recent returns the latest history entries, newest first.
func (s *AskService) Recent(limit int) ([]models.QueryHistory, error) {
	return s.history.Recent(limit)
}

func boolPtr(b bool) *bool {
	return &b
}
