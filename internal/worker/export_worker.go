// Package worker runs the report export side of the system: it consumes
// export requests from AMQP and pushes rebuilt monthly reports out.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ramon98292347/financeiro-igreja/internal/amqp"
	"github.com/Ramon98292347/financeiro-igreja/internal/export"
	"github.com/Ramon98292347/financeiro-igreja/internal/services"
)

// ExportWorker rebuilds monthly reports from the ledger and writes them
// through a ReportWriter.
type ExportWorker struct {
	reports *services.ReportService
	writer  export.ReportWriter
	owner   string
}

func NewExportWorker(reports *services.ReportService, writer export.ReportWriter, defaultOwner string) *ExportWorker {
	return &ExportWorker{
		reports: reports,
		writer:  writer,
		owner:   defaultOwner,
	}
}

// HandleExportMessage processes a single export request from AMQP.
func (w *ExportWorker) HandleExportMessage(ctx context.Context, msg *amqp.ReportExportMessage) error {
	slog.InfoContext(ctx, "Processing export request",
		"owner", msg.OwnerID,
		"year", msg.Year,
		"month", msg.Month)

	report, err := w.reports.MonthlyReport(ctx, msg.OwnerID, msg.Year, msg.Month)
	if err != nil {
		return fmt.Errorf("rebuild monthly report: %w", err)
	}

	ref, err := w.writer.Append(ctx, report)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	slog.InfoContext(ctx, "Report exported",
		"owner", msg.OwnerID,
		"year", msg.Year,
		"month", msg.Month,
		"ref", ref)
	return nil
}

// ExportSavedReport re-exports the last persisted snapshot for a month.
// A month that was never assembled is not an error.
func (w *ExportWorker) ExportSavedReport(ctx context.Context, year, month int) error {
	report, err := w.reports.SavedMonthlyReport(ctx, year, month)
	if services.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load saved report: %w", err)
	}

	ref, err := w.writer.Append(ctx, report)
	if err != nil {
		return fmt.Errorf("write saved report: %w", err)
	}

	slog.InfoContext(ctx, "Saved report re-exported",
		"year", year,
		"month", month,
		"ref", ref)
	return nil
}

// RunPeriodic re-exports the current month's saved snapshot on every tick.
// This is the recovery path for export requests lost while the broker or
// the worker was down.
func (w *ExportWorker) RunPeriodic(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "Periodic export started", "interval", interval, "owner", w.owner)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Periodic export stopped", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			now := time.Now()
			if err := w.ExportSavedReport(ctx, now.Year(), int(now.Month())); err != nil {
				slog.ErrorContext(ctx, "Periodic export failed", "error", err)
			}
		}
	}
}
