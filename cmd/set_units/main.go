// Command set_units replaces the investor unit ledger. Usage:
//
//	set_units "Investor A=511" "Investor B=467"
//
// Unit changes (deposits, withdrawals) are an administrative action and
// happen only through this tool; the engine itself never mints or redeems.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"fundboard/config"
	"fundboard/internal/adapters/filestore"
	"fundboard/internal/adapters/logger"
	"fundboard/internal/adapters/sqlite"
	"fundboard/internal/ports"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: set_units \"<investor>=<units>\" ...")
		os.Exit(2)
	}

	investors := make(map[string]float64)
	for _, arg := range os.Args[1:] {
		name, unitsStr, ok := strings.Cut(arg, "=")
		if !ok {
			log.Fatalf("FATAL: Argument '%s' is not in <investor>=<units> form", arg)
		}
		units, err := strconv.ParseFloat(unitsStr, 64)
		if err != nil || units <= 0 {
			log.Fatalf("FATAL: Units for '%s' must be a positive number, got '%s'", name, unitsStr)
		}
		investors[strings.TrimSpace(name)] = units
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	appLogger := logger.NewStdLogger(cfg.LogLevel)

	var unitRepo ports.UnitLedgerRepository
	if cfg.StoreBackend == config.BackendSQLite {
		repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
		if err != nil {
			log.Fatalf("FATAL: Failed to open sqlite store: %v", err)
		}
		defer repo.Close()
		unitRepo = repo.UnitLedger()
	} else {
		unitRepo, err = filestore.NewUnitLedgerRepository(cfg.FundStatePath, appLogger)
		if err != nil {
			log.Fatalf("FATAL: Failed to open fund state store: %v", err)
		}
	}

	if err := unitRepo.Save(context.Background(), investors); err != nil {
		log.Fatalf("FATAL: Failed to save fund state: %v", err)
	}

	var total float64
	for _, units := range investors {
		total += units
	}
	fmt.Printf("Saved %d investors, %s total units\n", len(investors), strconv.FormatFloat(total, 'f', -1, 64))
}
