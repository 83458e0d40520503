package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"dataset-sql-assistant/internal/agent"
	"dataset-sql-assistant/internal/config"
	"dataset-sql-assistant/internal/datastore"
	"dataset-sql-assistant/internal/handlers"
	"dataset-sql-assistant/internal/ingest"
	"dataset-sql-assistant/internal/jira"
	"dataset-sql-assistant/internal/middlewares"
	"dataset-sql-assistant/internal/model/chatmodel"
	"dataset-sql-assistant/internal/repositories"
	"dataset-sql-assistant/internal/routes"
	"dataset-sql-assistant/internal/services"
	"dataset-sql-assistant/internal/whatsapp"
)

// NewServer wires the whole assistant together: store, agents, services,
// handlers, routes. It also runs the initial dataset load so the agent has
// something to answer about the moment the server is up.
func NewServer(ctx context.Context, cfg *config.Config) (*http.Server, func(), error) {
	if err := datastore.EnsureDatabaseExists(ctx, cfg.Store); err != nil {
		return nil, nil, fmt.Errorf("failed to ensure database exists: %w", err)
	}

	store, err := datastore.Open(cfg.Store)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			log.Warn("failed to close store", "err", err)
		}
	}

	// Optional answer cache. The server runs fine without Redis.
	var cache *repositories.AnswerCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("redis unreachable, answer cache disabled", "addr", cfg.Redis.Addr, "err", err)
		} else {
			cache = repositories.NewAnswerCache(rdb, time.Duration(cfg.Redis.TTLHours)*time.Hour)
			log.Info("answer cache enabled", "addr", cfg.Redis.Addr)
		}
	}

	cm, err := chatmodel.GetChatModel(ctx, cfg.Model)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to initialize chat model: %w", err)
	}

	sqlAgent, err := agent.NewSQLAgent(ctx, cm, store)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	var jiraAgent *agent.JiraAgent
	var jiraClient *jira.Client
	if cfg.JiraConfigured() {
		jiraClient = jira.NewClient(cfg.Jira)
		jiraAgent, err = agent.NewJiraAgent(ctx, cm, jiraClient)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		log.Info("jira agent enabled", "instance", cfg.Jira.InstanceURL)
	}

	var sender *whatsapp.Sender
	if cfg.TwilioConfigured() {
		sender, err = whatsapp.NewSender(cfg.Twilio)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
	} else {
		log.Warn("twilio credentials missing, outbound messaging disabled")
	}

	// Dependency injection
	loader := ingest.NewLoader(store)
	datasetRepo := repositories.NewDatasetRepository(store.DB())
	historyRepo := repositories.NewQueryHistoryRepository(store.DB())

	datasetService := services.NewDatasetService(store, loader, datasetRepo, cfg.Store.DataDir)
	askService := services.NewAskService(sqlAgent, historyRepo, cache)
	messagingService := services.NewMessagingService(askService, jiraAgent, sender, cfg.Messaging.MaxReplyLen)

	askHandler := handlers.NewAskHandler(askService)
	datasetHandler := handlers.NewDatasetHandler(datasetService)
	messagingHandler := handlers.NewMessagingHandler(messagingService)
	jiraHandler := handlers.NewJiraHandler(jiraClient)
	modelHandler := handlers.NewModelHandler(cfg.Model)
	webhookHandler := handlers.NewWebhookHandler(messagingService)

	// Initial load; an empty data directory is not fatal.
	datasets, err := datasetService.Reload(ctx)
	if err != nil {
		log.Warn("initial dataset load failed", "err", err)
	} else if len(datasets) == 0 {
		log.Warn("no CSV files found in data directory", "dir", cfg.Store.DataDir)
	} else {
		log.Info("datasets loaded", "count", len(datasets))
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	var webhookMiddleware []gin.HandlerFunc
	if cfg.Twilio.ValidateSignature && sender != nil {
		webhookMiddleware = append(webhookMiddleware,
			middlewares.VerifyTwilioSignature(sender, cfg.Twilio.WebhookPublicURL))
	}

	routes.RegisterRoutes(router,
		askHandler, datasetHandler, messagingHandler,
		jiraHandler, modelHandler, webhookHandler,
		webhookMiddleware...,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute, // agent calls wait on the model API
	}

	return srv, cleanup, nil
}
