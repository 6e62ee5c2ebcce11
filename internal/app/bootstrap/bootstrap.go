package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	automationservice "leadrail/contexts/engagement/automation-service"
	automationnhn "leadrail/contexts/engagement/automation-service/adapters/nhn"
	automationpg "leadrail/contexts/engagement/automation-service/adapters/postgres"
	automationapp "leadrail/contexts/engagement/automation-service/application"
	liveservice "leadrail/contexts/engagement/live-service"
	partitionservice "leadrail/contexts/sales-core/partition-service"
	partitionpg "leadrail/contexts/sales-core/partition-service/adapters/postgres"
	recordservice "leadrail/contexts/sales-core/record-service"
	recordpg "leadrail/contexts/sales-core/record-service/adapters/postgres"
	recordports "leadrail/contexts/sales-core/record-service/ports"
	planservice "leadrail/contexts/tenant-core/plan-service"
	planpg "leadrail/contexts/tenant-core/plan-service/adapters/postgres"
	"leadrail/internal/platform/config"
	"leadrail/internal/platform/db"
	"leadrail/internal/platform/httpserver"

	"github.com/go-redis/redis/v8"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	redis    *redis.Client
	live     liveservice.Module
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	worker       automationapp.DeliveryWorker
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	var redisClient *redis.Client
	if cfg.EnableLiveBroadcast && cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	liveModule := liveservice.NewModule(redisClient, logger)

	planModule := planservice.NewModule(planservice.Dependencies{
		Repository: planpg.NewRepository(pg.DB, logger),
		Logger:     logger,
	})

	partitionModule := partitionservice.NewModule(partitionservice.Dependencies{
		Repository: partitionpg.NewRepository(pg.DB, logger),
		Clock:      partitionpg.SystemClock{},
		Logger:     logger,
	})

	automationModule := automationservice.NewModule(automationservice.Dependencies{
		Templates:  automationpg.NewRepository(pg.DB, logger),
		Deliveries: automationpg.NewRepository(pg.DB, logger),
		Clock:      automationpg.SystemClock{},
		IDGen:      automationpg.UUIDGenerator{},
		Logger:     logger,
	})

	var dispatcher recordports.AutomationDispatcher
	if cfg.EnableAutomationQueue {
		dispatcher = automationTrigger{service: automationModule.Service}
	}

	recordModule := recordservice.NewModule(recordservice.Dependencies{
		Repository: recordpg.NewRepository(pg.DB, logger),
		Plan:       planGuard{service: planModule.Service},
		Automation: dispatcher,
		Broadcast:  liveModule.Broadcaster,
		Clock:      recordpg.SystemClock{},
		IDGen:      recordpg.UUIDGenerator{},
		Logger:     logger,
	})

	server := httpserver.New(
		recordModule,
		partitionModule,
		planModule,
		automationModule,
		liveModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
		cfg.EnableSwaggerEndpoints,
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		redis:    redisClient,
		live:     liveModule,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	repo := automationpg.NewRepository(pg.DB, logger)
	worker := automationservice.NewDeliveryWorker(
		automationservice.Dependencies{
			Templates:  repo,
			Deliveries: repo,
			Clock:      automationpg.SystemClock{},
			IDGen:      automationpg.UUIDGenerator{},
			Logger:     logger,
		},
		automationnhn.NewAlimTalkClient(automationnhn.AlimTalkConfig{
			BaseURL:   cfg.NHNAlimTalkBaseURL,
			AppKey:    cfg.NHNAlimTalkAppKey,
			SecretKey: cfg.NHNAlimTalkSecret,
			SenderKey: cfg.NHNSenderKey,
		}, logger),
		automationnhn.NewEmailClient(automationnhn.EmailConfig{
			BaseURL:       cfg.NHNEmailBaseURL,
			AppKey:        cfg.NHNEmailAppKey,
			SecretKey:     cfg.NHNEmailSecret,
			SenderAddress: cfg.NHNEmailSender,
		}, logger),
	)

	return &WorkerApp{
		postgres:     pg,
		worker:       worker,
		pollInterval: cfg.WorkerPollInterval,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(ctx context.Context) error {
	if a.live.Bridge != nil {
		go func() {
			if err := a.live.Bridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Error("live bridge stopped",
					"event", "bootstrap_live_bridge_stopped",
					"module", "internal/app/bootstrap",
					"layer", "platform",
					"error", err.Error(),
				)
			}
		}()
	}
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)
	err := w.worker.Run(ctx, w.pollInterval)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
