package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"regmap/internal/chat"
	"regmap/internal/config"
	"regmap/internal/handler"
	"regmap/internal/prefs"
	"regmap/internal/source"
	"regmap/pkg/airtable"
	"regmap/pkg/llm"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(os.Getenv("REGMAP_CONFIG"))
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	dashboard := source.NewFallback(buildUpstream(cfg), slog.Default())
	mapHandler := handler.NewMapHandler(dashboard)

	chatter := buildChatter(cfg)
	chatHandler := handler.NewChatHandler(chat.NewSessions(chatter))

	prefsHandler := handler.NewPrefsHandler(buildPrefsStore(cfg))

	r := gin.Default()

	slog.Info("AllowOrigins URL:", "urls", cfg.AllowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/states", mapHandler.GetStates)
	r.GET("/news", mapHandler.GetNews)
	r.POST("/chat", chatHandler.PostChat)
	r.GET("/prefs/theme", prefsHandler.GetTheme)
	r.PUT("/prefs/theme", prefsHandler.PutTheme)
	r.GET("/health", mapHandler.GetHealth)

	err = r.Run(cfg.Addr)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

// buildUpstream prefers a pre-built dashboard backend when one is
// configured, otherwise fetches the tables directly.
func buildUpstream(cfg *config.Config) source.Upstream {
	if cfg.UpstreamURL != "" {
		return source.NewProxy(cfg.UpstreamURL)
	}
	records := airtable.NewClient(cfg.AirtableBaseID, cfg.AirtablePAT)
	return source.NewAdapter(records, cfg.SnapshotTTLDuration())
}

func buildChatter(cfg *config.Config) llm.Chatter {
	if cfg.ChatProvider == "anthropic" && cfg.AnthropicKey != "" {
		return llm.NewAnthropicClient(cfg.AnthropicKey, cfg.ChatModel)
	}
	return llm.NewOpenAIClient(cfg.OpenAIKey, cfg.ChatModel)
}

func buildPrefsStore(cfg *config.Config) prefs.Store {
	if cfg.RedisURL == "" {
		slog.Warn("REDIS_URL not set, theme preferences held in memory")
		return prefs.NewMemoryStore()
	}

	client, err := prefs.ConnectRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		slog.Warn("redis unavailable, theme preferences held in memory", "error", err)
		return prefs.NewMemoryStore()
	}
	return prefs.NewRedisStore(client)
}
