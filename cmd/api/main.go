package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"engineering-sync/config"
	"engineering-sync/internal/auth"
	bulletinUC "engineering-sync/internal/bulletin/usecase"
	"engineering-sync/internal/cache"
	"engineering-sync/internal/httpserver"
	"engineering-sync/internal/mailer"
	"engineering-sync/internal/narrative"
	"engineering-sync/internal/subscription"
	"engineering-sync/internal/subscription/postgres"
	"engineering-sync/internal/taskapi"
	"engineering-sync/pkg/llm"
	"engineering-sync/pkg/log"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Engineering Sync...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Upstream API: %s", cfg.Upstream.BaseURL)

	// 3. Upstream client, narrative model, cache
	apiClient := taskapi.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.APIKey, logger)

	llmClient := llm.NewClient(llm.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	})
	if !llmClient.Configured() {
		logger.Warn(ctx, "OPENAI_API_KEY not set, narrative stages will use deterministic fallbacks")
	}
	synth := narrative.New(logger, llmClient)

	store := cache.NewStore(cfg.Cache.TTL, nil)

	// 4. Subscription store (optional)
	var repo subscription.Repository
	if cfg.Database.DSN != "" {
		pgRepo, dbErr := postgres.Connect(ctx, cfg.Database.DSN, logger)
		if dbErr != nil {
			logger.Errorf(ctx, "Subscription store unavailable: %v", dbErr)
			return
		}
		defer pgRepo.Close()
		repo = pgRepo
	} else {
		logger.Warn(ctx, "DATABASE_URL not set, subscription routes disabled")
	}

	// 5. Delivery
	sender := mailer.New(mailer.Config{
		Host:        cfg.SMTP.Host,
		Port:        cfg.SMTP.Port,
		User:        cfg.SMTP.User,
		Password:    cfg.SMTP.Password,
		SenderEmail: cfg.SMTP.SenderEmail,
	}, logger)
	tokens := auth.NewManager(cfg.Broadcast.TokenSecret)

	// 6. Bulletin usecase
	uc := bulletinUC.New(logger, apiClient, store, synth, repo, sender, tokens, bulletinUC.BroadcastConfig{
		BaseURL:         cfg.Broadcast.BaseURL,
		ExtraRecipients: cfg.Broadcast.Recipients,
		SenderEmail:     cfg.SMTP.SenderEmail,
	})

	// 7. Background prewarm so the first dashboard hit finds a warm cache.
	go func() {
		logger.Info(ctx, "Prewarming enriched cache in background...")
		categories := uc.GetAllCategoriesWithTasks(ctx)
		logger.Infof(ctx, "Prewarm complete (%d categories)", len(categories))
	}()

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		UseCase:     uc,
		Repo:        repo,
		Tokens:      tokens,
		AdminUser:   cfg.Admin.User,
		AdminPass:   cfg.Admin.Password,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
