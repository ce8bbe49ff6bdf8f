package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/Ramon98292347/financeiro-igreja/internal/amqp"
	"github.com/Ramon98292347/financeiro-igreja/internal/backend"
	"github.com/Ramon98292347/financeiro-igreja/internal/config"
	"github.com/Ramon98292347/financeiro-igreja/internal/export"
	exportgoogle "github.com/Ramon98292347/financeiro-igreja/internal/export/google"
	exportmem "github.com/Ramon98292347/financeiro-igreja/internal/export/memory"
	"github.com/Ramon98292347/financeiro-igreja/internal/ledger"
	"github.com/Ramon98292347/financeiro-igreja/internal/services"
	"github.com/Ramon98292347/financeiro-igreja/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting export-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}

	result, err := backend.Create(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize data backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	// Google Sheets is the real destination; without a spreadsheet id the
	// worker keeps exports in memory, which is enough for local runs.
	var writer export.ReportWriter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := exportgoogle.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		writer = client
		logger.Info("Google Sheets export enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)
	} else {
		writer = exportmem.New()
		logger.Info("Google Sheets disabled - exports stay in memory")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ledgers := ledger.NewManager(result.Store)
	registers := ledger.NewRegisters(result.Store)
	reports := services.NewReportService(ledgers, registers, result.Store, nil)
	exportWorker := worker.NewExportWorker(reports, writer, cfg.DefaultOwner)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeReportExports(gctx, func(msg *amqp.ReportExportMessage) error {
			if msg.OwnerID == "" {
				msg.OwnerID = cfg.DefaultOwner
			}
			return exportWorker.HandleExportMessage(gctx, msg)
		})
	})

	g.Go(func() error {
		return exportWorker.RunPeriodic(gctx, cfg.ExportInterval)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
