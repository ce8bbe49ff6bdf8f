// Package export defines the outbound ports for pushing closed monthly
// reports to an external sheet.
package export

import (
	"context"

	"github.com/Ramon98292347/financeiro-igreja/internal/core"
)

// ReportWriter appends a rendered monthly report to its destination and
// returns a reference to where it landed.
type ReportWriter interface {
	Append(ctx context.Context, report core.MonthlyReport) (ref string, err error)
}
