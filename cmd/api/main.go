// Package main API 服务入口
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storycraftor-api/internal/application/ai"
	"storycraftor-api/internal/application/ebook"
	"storycraftor-api/internal/config"
	"storycraftor-api/internal/infrastructure/llm"
	"storycraftor-api/internal/infrastructure/persistence/postgres"
	"storycraftor-api/internal/infrastructure/persistence/redis"
	"storycraftor-api/internal/interfaces/http/handler"
	"storycraftor-api/internal/interfaces/http/middleware"
	"storycraftor-api/internal/interfaces/http/router"
	"storycraftor-api/pkg/logger"
	"storycraftor-api/pkg/tracer"

	"github.com/joho/godotenv"
)

// Version 版本信息，构建时注入
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(
		cfg.Observability.Logging.Level,
		cfg.Observability.Logging.Format,
	)

	ctx := context.Background()
	log := logger.FromContext(ctx)
	log.Info("starting api",
		"version", Version,
		"build_time", BuildTime,
		"env", cfg.App.Env,
	)

	shutdownTracer, err := tracer.Init(ctx, tracer.Config{
		ServiceName: cfg.App.Name,
		Endpoint:    cfg.Observability.Tracing.Endpoint,
		SampleRate:  cfg.Observability.Tracing.SampleRate,
		Enabled:     cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		log.Error("failed to init tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracer(ctx); err != nil {
			log.Error("failed to shutdown tracer", "error", err)
		}
	}()

	// 数据层
	pgClient, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		logger.Fatal(ctx, "failed to connect postgres", err)
	}
	defer pgClient.Close()

	redisClient, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Fatal(ctx, "failed to connect redis", err)
	}
	defer redisClient.Close()

	ebookRepo := postgres.NewEbookRepository(pgClient)
	userRepo := postgres.NewUserRepository(pgClient)
	txManager := postgres.NewTxManager(pgClient)

	// 应用层
	ebookSvc := ebook.NewService(ebookRepo, txManager)
	aiSvc := ai.NewService(&cfg.AI, llm.NewGeminiClient(&cfg.AI))

	// 接口层
	authCfg := middleware.AuthConfig{
		Secret: cfg.Security.JWT.Secret,
		Issuer: cfg.Security.JWT.Issuer,
	}
	handlers := router.Handlers{
		Auth:   handler.NewAuthHandler(authCfg, userRepo),
		Ebook:  handler.NewEbookHandler(ebookSvc),
		AI:     handler.NewAIHandler(aiSvc),
		User:   handler.NewUserHandler(userRepo),
		Health: handler.NewHealthHandler(pgClient, redisClient),
	}

	rateLimit := middleware.NewRateLimitMiddleware(middleware.RateLimitConfig{
		Enabled:           cfg.Security.RateLimit.Enabled,
		RequestsPerSecond: cfg.Security.RateLimit.RequestsPerSecond,
	}, redisClient.Redis())

	r := router.New(cfg, handlers, rateLimit)

	addr := fmt.Sprintf("%s:%d", cfg.Server.HTTP.Host, cfg.Server.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
		IdleTimeout:  cfg.Server.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("http server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
