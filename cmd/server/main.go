// cmd/server/main.go

// 本服務提供客戶開戶、存提款、借還款、每月推進與前瞻模擬的 RESTful API。
// 帳本只存在記憶體中：啟動時由情境檔（BANK_SCENARIO）或隨機示範客戶開業。

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"banksim/internal/bank"
	"banksim/internal/config"
	"banksim/internal/generator"
	"banksim/internal/logging"
	"banksim/internal/server"
	"banksim/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	b := bank.NewBank(cfg.Bank.InitialCapital, logger)
	if err := seed(logger, b, cfg.Bank); err != nil {
		logger.Error("failed to open the bank", "error", err)
		os.Exit(1)
	}

	srv := server.NewLifecycle(logger, cfg.HTTP, server.NewServer(b, logger).Router())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			logger.Error("server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// seed 由情境檔或隨機客戶建立開業狀態。
func seed(logger *slog.Logger, b *bank.Bank, cfg config.BankConfig) error {
	if cfg.ScenarioPath != "" {
		sc, err := storage.LoadScenario(cfg.ScenarioPath)
		if err != nil {
			return err
		}
		return b.Restore(sc)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	gen := generator.New(generator.Config{Customers: cfg.SeedCustomers, Seed: cfg.Seed})
	res, err := gen.Populate(ctx, b)
	if err != nil {
		return err
	}
	logger.Info("seeded random customers", "enrolled", len(res.Enrolled), "skipped", res.Skipped)
	return nil
}
