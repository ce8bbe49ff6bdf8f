package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Ramon98292347/financeiro-igreja/internal/core"
)

func (s *Server) handleSummaryReport(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.ownerID(w, r)
	if !ok {
		return
	}

	period := core.Period(strings.TrimSpace(r.URL.Query().Get("period")))
	if period == "" {
		period = core.CurrentMonth
	}
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	report, err := s.reports.Summary(r.Context(), ownerID, period, category)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleDailyReport(w http.ResponseWriter, r *http.Request) {
	entries, err := s.registers.SavedEntries(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, core.ConsolidateDaily(entries))
}

// yearMonth reads year/month query parameters, defaulting to the current
// calendar month.
func yearMonth(r *http.Request) (int, int, bool) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, false
		}
		year = y
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, false
		}
		month = m
	}
	if month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.ownerID(w, r)
	if !ok {
		return
	}
	year, month, ok := yearMonth(r)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "invalid year or month")
		return
	}

	key := reportCacheKey(ownerID, year, month)
	if report, found := s.reportCache.Get(key); found {
		slog.DebugContext(r.Context(), "Monthly report cache hit", "owner", ownerID, "year", year, "month", month)
		writeJSON(w, http.StatusOK, report)
		return
	}

	report, err := s.reports.MonthlyReport(r.Context(), ownerID, year, month)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.reportCache.Set(key, report)
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleCloseMonth(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.ownerID(w, r)
	if !ok {
		return
	}
	year, month, ok := yearMonth(r)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "invalid year or month")
		return
	}

	report, err := s.reports.CloseMonth(r.Context(), ownerID, year, month)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.invalidateReports()
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.ownerID(w, r)
	if !ok {
		return
	}

	metrics, err := s.dashboard.Metrics(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}
