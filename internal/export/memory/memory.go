// Package memory provides an in-memory ReportWriter for tests and the
// memory export backend.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Ramon98292347/financeiro-igreja/internal/core"
)

type Writer struct {
	mu      sync.Mutex
	reports []core.MonthlyReport
}

func New() *Writer {
	return &Writer{}
}

// Append stores the report and returns a synthetic reference.
func (w *Writer) Append(_ context.Context, report core.MonthlyReport) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reports = append(w.reports, report)
	return fmt.Sprintf("mem:%d", len(w.reports)), nil
}

// Reports returns a copy of everything appended so far.
func (w *Writer) Reports() []core.MonthlyReport {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]core.MonthlyReport, len(w.reports))
	copy(out, w.reports)
	return out
}
