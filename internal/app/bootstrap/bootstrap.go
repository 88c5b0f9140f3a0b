package bootstrap

import (
	"context"
	"log/slog"
	"strings"

	campaignservice "quorum/contexts/crowd-labeling/campaign-service"
	"quorum/contexts/crowd-labeling/campaign-service/adapters/memory"
	postgresadapter "quorum/contexts/crowd-labeling/campaign-service/adapters/postgres"
	"quorum/internal/platform/config"
	"quorum/internal/platform/db"
	"quorum/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	// The marketplace gateway ships as the in-process sandbox adapter; a
	// production adapter slots in behind the same port.
	marketplace := memory.NewMarketplace()
	logger.Info("marketplace gateway configured",
		"event", "bootstrap_marketplace_configured",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"sandbox", cfg.MarketplaceSandbox,
	)

	deps := campaignservice.Dependencies{
		Marketplace:        marketplace,
		ConsensusThreshold: cfg.ConsensusThreshold,
		PageSize:           cfg.MarketplacePageSize,
		Logger:             logger,
	}

	var pg *db.Postgres
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		store := memory.NewStore(nil)
		deps.Campaigns = store
		deps.Clock = store
		deps.IDGenerator = store
	} else {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		deps.Campaigns = postgresadapter.NewRepository(pg.DB, logger)
		deps.Clock = postgresadapter.SystemClock{}
		deps.IDGenerator = postgresadapter.UUIDGenerator{}
	}

	module := campaignservice.NewModule(deps)
	module.Marketplace = marketplace

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
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
