package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/trogers1052/stock-analysis-service/internal/analysis"
	"github.com/trogers1052/stock-analysis-service/internal/api"
	"github.com/trogers1052/stock-analysis-service/internal/auth"
	"github.com/trogers1052/stock-analysis-service/internal/cache"
	"github.com/trogers1052/stock-analysis-service/internal/config"
	"github.com/trogers1052/stock-analysis-service/internal/database"
	"github.com/trogers1052/stock-analysis-service/internal/kafka"
	"github.com/trogers1052/stock-analysis-service/internal/llm"
	"github.com/trogers1052/stock-analysis-service/internal/marketdata"
	"github.com/trogers1052/stock-analysis-service/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	log.Println("database migrations applied")

	producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer producer.Close()

	var narrativeCache *cache.NarrativeCache
	if cfg.Redis.Addr != "" {
		narrativeCache = cache.NewNarrativeCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.TTL)
	}

	provider := marketdata.NewYahooClient()
	generator := llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model)
	analyzer := analysis.NewAnalyzer(provider, generator, narrativeCache)

	svc := service.New(db, db, producer)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	handler := api.NewHandler(db, analyzer, svc, tokens, cfg.MarketData.DefaultPeriod)
	router := api.SetupRoutes(handler)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}
