// Command force_snapshot overwrites today's equity snapshot. With an
// argument it records that equity; without one it fetches the live account
// from the exchange first. This is the manual correction path for days
// where the automatic recording captured a bad value.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"fundboard/config"
	"fundboard/internal/adapters/bitgetclient"
	"fundboard/internal/adapters/filestore"
	"fundboard/internal/adapters/logger"
	"fundboard/internal/adapters/sqlite"
	"fundboard/internal/analytics"
	"fundboard/internal/history"
	"fundboard/internal/ports"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	appLogger := logger.NewStdLogger(cfg.LogLevel)
	ctx := context.Background()

	var snapRepo ports.SnapshotRepository
	if cfg.StoreBackend == config.BackendSQLite {
		repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
		if err != nil {
			log.Fatalf("FATAL: Failed to open sqlite store: %v", err)
		}
		defer repo.Close()
		snapRepo = repo
	} else {
		snapRepo, err = filestore.NewSnapshotRepository(cfg.HistoryPath, appLogger)
		if err != nil {
			log.Fatalf("FATAL: Failed to open equity history store: %v", err)
		}
	}

	snapshots, err := history.New(history.Config{
		Repo:       snapRepo,
		Logger:     appLogger,
		TZOffsetH:  cfg.SnapshotTZOffsetHours,
		CutoffHour: cfg.SnapshotCutoffHour,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize snapshot store: %v", err)
	}

	var equity float64
	if len(os.Args) > 1 {
		equity, err = strconv.ParseFloat(os.Args[1], 64)
		if err != nil {
			log.Fatalf("FATAL: Invalid equity argument '%s': %v", os.Args[1], err)
		}
	} else {
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
		positions, err := exchange.FetchPositions(ctx)
		if err != nil {
			log.Fatalf("FATAL: Failed to fetch positions: %v", err)
		}
		account, err := exchange.FetchAccount(ctx)
		if err != nil {
			log.Fatalf("FATAL: Failed to fetch account: %v", err)
		}
		equity = analytics.Aggregate(positions, account).TotalEquity
	}

	series, err := snapshots.ForceRecord(ctx, equity)
	if err != nil {
		log.Fatalf("FATAL: Failed to record snapshot: %v", err)
	}
	last := series[len(series)-1]
	fmt.Printf("Recorded snapshot %s = %s\n", last.Date, strconv.FormatFloat(last.Equity, 'f', -1, 64))
}
