// Package http exposes the treasury ledger as a JSON API for the SPA.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Ramon98292347/financeiro-igreja/internal/cache"
	"github.com/Ramon98292347/financeiro-igreja/internal/core"
	"github.com/Ramon98292347/financeiro-igreja/internal/ledger"
	"github.com/Ramon98292347/financeiro-igreja/internal/services"
)

const ownerHeader = "X-Owner-ID"

type Server struct {
	http.Server

	ledgers   *ledger.Manager
	registers *ledger.Registers
	reports   *services.ReportService
	dashboard *services.DashboardService

	rateLimiter *rateLimiter

	// Assembled monthly reports are cheap to cache and expensive to build.
	reportCache *cache.LRUCache[core.MonthlyReport]

	shutdownOnce sync.Once
}

// NewServer wires the routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, ledgers *ledger.Manager, registers *ledger.Registers, reports *services.ReportService, dashboard *services.DashboardService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		ledgers:     ledgers,
		registers:   registers,
		reports:     reports,
		dashboard:   dashboard,
		rateLimiter: newRateLimiter(),
		reportCache: cache.NewLRUCache[core.MonthlyReport](100, 5*time.Minute),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/transactions", s.wrap(s.handleCreateTransaction))
	mux.HandleFunc("GET /api/transactions", s.wrap(s.handleListTransactions))
	mux.HandleFunc("PUT /api/transactions/{id}", s.wrap(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.wrap(s.handleDeleteTransaction))

	mux.HandleFunc("POST /api/cash-counts", s.wrap(s.handleCreateCashCount))
	mux.HandleFunc("GET /api/cash-counts", s.wrap(s.handleListCashCounts))
	mux.HandleFunc("DELETE /api/cash-counts/{id}", s.wrap(s.handleDeleteCashCount))

	mux.HandleFunc("GET /api/categories", s.wrap(s.handleListCategories))
	mux.HandleFunc("POST /api/categories", s.wrap(s.handleCreateCategory))
	mux.HandleFunc("PUT /api/categories/{id}", s.wrap(s.handleUpdateCategory))
	mux.HandleFunc("DELETE /api/categories/{id}", s.wrap(s.handleDeleteCategory))

	mux.HandleFunc("POST /api/saved-entries", s.wrap(s.handleCreateSavedEntry))
	mux.HandleFunc("GET /api/saved-entries", s.wrap(s.handleListSavedEntries))
	mux.HandleFunc("DELETE /api/saved-entries/{id}", s.wrap(s.handleDeleteSavedEntry))

	mux.HandleFunc("POST /api/daily-records", s.wrap(s.handleCreateDailyRecord))
	mux.HandleFunc("GET /api/daily-records", s.wrap(s.handleListDailyRecords))
	mux.HandleFunc("DELETE /api/daily-records/{id}", s.wrap(s.handleDeleteDailyRecord))

	mux.HandleFunc("GET /api/prior-transfer", s.wrap(s.handleGetPriorTransfer))
	mux.HandleFunc("PUT /api/prior-transfer", s.wrap(s.handleSetPriorTransfer))
	mux.HandleFunc("GET /api/monthly-sheet", s.wrap(s.handleGetMonthlySheet))
	mux.HandleFunc("PUT /api/monthly-sheet", s.wrap(s.handleSetMonthlySheet))

	mux.HandleFunc("GET /api/reports/summary", s.wrap(s.handleSummaryReport))
	mux.HandleFunc("GET /api/reports/daily", s.wrap(s.handleDailyReport))
	mux.HandleFunc("GET /api/reports/monthly", s.wrap(s.handleMonthlyReport))
	mux.HandleFunc("POST /api/reports/monthly/close", s.wrap(s.handleCloseMonth))

	mux.HandleFunc("GET /api/dashboard", s.wrap(s.handleDashboard))

	return s
}

// Shutdown stops the cleanup goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// wrap adds security headers, rate limiting and request logging.
func (s *Server) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		if isMutation(r.Method) && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// ownerStore resolves the request's owner ledger from the X-Owner-ID
// header. A missing header is a client error.
func (s *Server) ownerStore(w http.ResponseWriter, r *http.Request) (*ledger.Store, bool) {
	ownerID := r.Header.Get(ownerHeader)
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "missing "+ownerHeader+" header")
		return nil, false
	}
	store, err := s.ledgers.Open(r.Context(), ownerID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to open ledger", "owner", ownerID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load ledger")
		return nil, false
	}
	return store, true
}

func (s *Server) ownerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	ownerID := r.Header.Get(ownerHeader)
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "missing "+ownerHeader+" header")
		return "", false
	}
	return ownerID, true
}

func (s *Server) invalidateReports() {
	s.reportCache.Purge()
}

func reportCacheKey(ownerID string, year, month int) string {
	return ownerID + "/" + strconv.Itoa(year) + "-" + strconv.Itoa(month)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
