package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/channelscope/channelscope-go/internal/cache"
	"github.com/channelscope/channelscope-go/internal/config"
	"github.com/channelscope/channelscope-go/internal/db"
	"github.com/channelscope/channelscope-go/internal/genai"
	"github.com/channelscope/channelscope-go/internal/handler"
	"github.com/channelscope/channelscope-go/internal/middleware"
	"github.com/channelscope/channelscope-go/internal/platform"
	"github.com/channelscope/channelscope-go/internal/repository"
	"github.com/channelscope/channelscope-go/internal/router"
	"github.com/channelscope/channelscope-go/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "channelscope")

	ctx := context.Background()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedis(cfg.RedisURL)
	defer redisCache.Close()

	yt, err := platform.NewClient(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		log.Fatalf("failed to create youtube client: %v", err)
	}

	gemini, err := genai.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("failed to create gemini client: %v", err)
	}

	handler.InitMetrics(pool)
	cache.OnHit = handler.Metrics.CacheHits.Inc
	cache.OnMiss = handler.Metrics.CacheMisses.Inc
	genai.ObserveGeneration = handler.Metrics.GenerationDuration.Observe

	channelRepo := repository.NewChannelRepo(pool)
	videoRepo := repository.NewVideoRepo(pool)
	analysisRepo := repository.NewAnalysisRepo(pool)
	sessionRepo := repository.NewSessionRepo(pool)
	profileRepo := repository.NewProfileRepo(pool)

	analysisSvc := service.NewAnalysisService(cfg, redisCache, channelRepo, videoRepo, analysisRepo, yt, gemini)
	coachingSvc := service.NewCoachingService(cfg, analysisSvc, sessionRepo, profileRepo, yt, gemini)

	handlers := &router.Handlers{
		Analyze:  handler.NewAnalyzeHandler(analysisSvc),
		Channel:  handler.NewChannelHandler(analysisSvc),
		Coaching: handler.NewCoachingHandler(coachingSvc),
		Profile:  handler.NewProfileHandler(profileRepo),
		Stats:    handler.NewStatsHandler(analysisRepo),
		Health:   handler.NewHealthHandler(pool, redisCache.Client()),
	}

	app := fiber.New(fiber.Config{
		AppName:      "ChannelScope API",
		ServerHeader: "ChannelScope",
	})
	router.Setup(app, handlers, cfg.CORSOrigins)

	// Graceful shutdown on SIGINT/SIGTERM.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		zlog.Info().Msg("shutdown signal received")
		if err := app.Shutdown(); err != nil {
			zlog.Error().Err(err).Msg("shutdown error")
		}
	}()

	zlog.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Environment).
		Str("model", cfg.GeminiModel).
		Msg("channelscope backend starting")

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
	zlog.Info().Msg("server stopped")
}
