package main

import (
	"context"
	"log" // standard log only for fatal errors before the logger is ready

	"fundboard/config"
	"fundboard/internal/adapters/bitgetclient"
	"fundboard/internal/adapters/filestore"
	"fundboard/internal/adapters/logger"
	"fundboard/internal/adapters/sqlite"
	"fundboard/internal/adapters/upbitclient"
	"fundboard/internal/app"
	"fundboard/internal/fund"
	"fundboard/internal/history"
	"fundboard/internal/ports"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	var appLogger ports.Logger
	if cfg.LogFormat == "json" {
		zl, err := logger.NewZapLogger(cfg.LogLevel)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize zap logger: %v", err)
		}
		defer zl.Sync()
		appLogger = zl
	} else {
		appLogger = logger.NewStdLogger(cfg.LogLevel)
	}
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String(), "format": cfg.LogFormat})

	// 3. Initialize Repositories (store backend per config)
	var snapRepo ports.SnapshotRepository
	var unitRepo ports.UnitLedgerRepository
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize sqlite store: %v", err)
		}
		defer func() {
			if err := repo.Close(); err != nil {
				appLogger.Error(context.Background(), err, "Error closing sqlite store")
			}
		}()
		snapRepo = repo
		unitRepo = repo.UnitLedger()
	default:
		snapRepo, err = filestore.NewSnapshotRepository(cfg.HistoryPath, appLogger)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize equity history store: %v", err)
		}
		unitRepo, err = filestore.NewUnitLedgerRepository(cfg.FundStatePath, appLogger)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize fund state store: %v", err)
		}
	}
	appLogger.Info(context.Background(), "Stores initialized", map[string]interface{}{"backend": string(cfg.StoreBackend)})

	// 4. Initialize Engine Components
	snapshots, err := history.New(history.Config{
		Repo:       snapRepo,
		Logger:     appLogger,
		TZOffsetH:  cfg.SnapshotTZOffsetHours,
		CutoffHour: cfg.SnapshotCutoffHour,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize snapshot store: %v", err)
	}
	accountant, err := fund.New(unitRepo, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize fund accountant: %v", err)
	}

	// 5. Initialize Exchange and FX Clients
	exchange, err := bitgetclient.New(bitgetclient.Config{
		APIKey:      cfg.APIKey,
		SecretKey:   cfg.SecretKey,
		Passphrase:  cfg.Passphrase,
		ProductType: cfg.ProductType,
		MarginCoin:  cfg.MarginCoin,
		Logger:      appLogger,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Bitget client: %v", err)
	}
	fx, err := upbitclient.New(upbitclient.Config{Logger: appLogger})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Upbit client: %v", err)
	}
	appLogger.Info(context.Background(), "Exchange clients initialized")

	// 6. Initialize and Start the Service
	service, err := app.NewDashboardService(app.Config{
		Logger:     appLogger,
		Exchange:   exchange,
		FX:         fx,
		Snapshots:  snapshots,
		Accountant: accountant,
		BillsLimit: cfg.BillsLimit,
		Interval:   cfg.RefreshInterval,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize dashboard service: %v", err)
	}

	if err := service.Start(context.Background()); err != nil {
		appLogger.Error(context.Background(), err, "Dashboard service exited with error")
		log.Fatalf("FATAL: Dashboard service exited with error: %v", err)
	}
	appLogger.Info(context.Background(), "Application finished gracefully.")
}
