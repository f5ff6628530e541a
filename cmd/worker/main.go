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
	"engineering-sync/internal/mailer"
	"engineering-sync/internal/narrative"
	"engineering-sync/internal/subscription/postgres"
	"engineering-sync/internal/taskapi"
	"engineering-sync/pkg/llm"
	"engineering-sync/pkg/log"
)

// The worker runs one full broadcast cycle and exits. Scheduling is left to
// cron or the platform's job runner.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting bulletin broadcast cycle...")

	if cfg.Database.DSN == "" {
		logger.Error(ctx, "DATABASE_URL is required for broadcasting")
		os.Exit(1)
	}
	repo, err := postgres.Connect(ctx, cfg.Database.DSN, logger)
	if err != nil {
		logger.Errorf(ctx, "Subscription store unavailable: %v", err)
		os.Exit(1)
	}
	defer repo.Close()

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

	sender := mailer.New(mailer.Config{
		Host:        cfg.SMTP.Host,
		Port:        cfg.SMTP.Port,
		User:        cfg.SMTP.User,
		Password:    cfg.SMTP.Password,
		SenderEmail: cfg.SMTP.SenderEmail,
	}, logger)
	if sender.DryRun() {
		logger.Warn(ctx, "SMTP credentials not set, bulletins will be logged instead of sent")
	}

	uc := bulletinUC.New(
		logger,
		apiClient,
		cache.NewStore(cfg.Cache.TTL, nil),
		narrative.New(logger, llmClient),
		repo,
		sender,
		auth.NewManager(cfg.Broadcast.TokenSecret),
		bulletinUC.BroadcastConfig{
			BaseURL:         cfg.Broadcast.BaseURL,
			ExtraRecipients: cfg.Broadcast.Recipients,
			SenderEmail:     cfg.SMTP.SenderEmail,
		},
	)

	report, err := uc.Broadcast(ctx)
	if err != nil {
		logger.Errorf(ctx, "Broadcast failed: %v", err)
		os.Exit(1)
	}
	logger.Infof(ctx, "Broadcast cycle %s finished: sent=%d failed=%d skipped=%d",
		report.CycleID, report.Sent, report.Failed, report.Skipped)
}
