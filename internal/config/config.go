package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Model     ModelConfig
	Twilio    TwilioConfig
	Redis     RedisConfig
	Jira      JiraConfig
	Messaging MessagingConfig
}

type ServerConfig struct {
	Port         int
	AllowOrigins []string
}

// StoreConfig selects where ingested datasets live. Backend is "sqlite" or
// "postgres"; the postgres fields are ignored for sqlite.
type StoreConfig struct {
	Backend string
	// sqlite
	SQLitePath string
	// postgres
	Host          string
	Port          string
	User          string
	Password      string
	Database      string
	AdminUser     string
	AdminPassword string
	// directory scanned for *.csv files
	DataDir string
}

type ModelConfig struct {
	Provider string // gemini | openai

	GeminiKey       string
	GeminiChatModel string

	OpenAIKey       string
	OpenAIBaseURL   string
	OpenAIChatModel string

	Temperature float32
}

type TwilioConfig struct {
	AccountSID        string
	AuthToken         string
	FromNumber        string
	ValidateSignature bool
	WebhookPublicURL  string
}

type RedisConfig struct {
	Addr     string
	Password string
	TTLHours int
}

type JiraConfig struct {
	Username    string
	APIToken    string
	InstanceURL string
	IsCloud     bool
}

type MessagingConfig struct {
	MaxReplyLen int
}

// Load reads .env (when present) and the process environment. A missing .env
// file is not an error: deployments commonly set real environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("PORT must be an integer: %w", err)
	}

	maxReply, err := strconv.Atoi(getEnv("MAX_REPLY_LENGTH", "1500"))
	if err != nil {
		return nil, fmt.Errorf("MAX_REPLY_LENGTH must be an integer: %w", err)
	}

	cacheTTL, err := strconv.Atoi(getEnv("ANSWER_CACHE_TTL_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("ANSWER_CACHE_TTL_HOURS must be an integer: %w", err)
	}

	temp64, err := strconv.ParseFloat(getEnv("MODEL_TEMPERATURE", "0.1"), 32)
	if err != nil {
		return nil, fmt.Errorf("MODEL_TEMPERATURE must be a float: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         port,
			AllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		},
		Store: StoreConfig{
			Backend:       getEnv("STORE_BACKEND", "sqlite"),
			SQLitePath:    getEnv("SQLITE_PATH", "datasets.db"),
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "5432"),
			User:          getEnv("DB_USERNAME", ""),
			Password:      getEnv("DB_PASSWORD", ""),
			Database:      getEnv("DB_DATABASE", "datasets"),
			AdminUser:     getEnv("DB_ADMIN_USER", ""),
			AdminPassword: getEnv("DB_ADMIN_PASSWORD", ""),
			DataDir:       getEnv("DATA_DIR", "data"),
		},
		Model: ModelConfig{
			Provider:        getEnv("MODEL_PROVIDER", "gemini"),
			GeminiKey:       getEnv("GOOGLE_API_KEY", ""),
			GeminiChatModel: getEnv("GEMINI_CHAT_MODEL", "gemini-1.5-flash"),
			OpenAIKey:       getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),
			OpenAIChatModel: getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			Temperature:     float32(temp64),
		},
		Twilio: TwilioConfig{
			AccountSID:        getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:         getEnv("TWILIO_AUTH_TOKEN", ""),
			FromNumber:        getEnv("TWILIO_WHATSAPP_NUMBER", ""),
			ValidateSignature: getEnv("TWILIO_VALIDATE_SIGNATURE", "false") == "true",
			WebhookPublicURL:  getEnv("WEBHOOK_PUBLIC_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			TTLHours: cacheTTL,
		},
		Jira: JiraConfig{
			Username:    getEnv("JIRA_USERNAME", ""),
			APIToken:    getEnv("JIRA_API_TOKEN", ""),
			InstanceURL: getEnv("JIRA_INSTANCE_URL", ""),
			IsCloud:     strings.ToLower(getEnv("JIRA_CLOUD", "true")) == "true",
		},
		Messaging: MessagingConfig{
			MaxReplyLen: maxReply,
		},
	}

	switch cfg.Store.Backend {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported STORE_BACKEND: %s", cfg.Store.Backend)
	}

	return cfg, nil
}

// JiraConfigured reports whether enough Jira credentials are present to build
// the Jira agent.
func (c *Config) JiraConfigured() bool {
	return c.Jira.InstanceURL != "" && c.Jira.APIToken != "" && c.Jira.Username != ""
}

func (c *Config) TwilioConfigured() bool {
	return c.Twilio.AccountSID != "" && c.Twilio.AuthToken != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
