package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"finsight/internal/cache"
	"finsight/internal/core"
	"finsight/internal/insights"
	"finsight/internal/ledger"
	"finsight/internal/records"
)

type Server struct {
	http.Server
	store       records.Store
	insightsSvc *insights.Service
	publisher   ledger.Publisher
	rateLimiter *rateLimiter
	metrics     *securityMetrics

	// Per-user caches for the two derived endpoints, invalidated on
	// every record write.
	summaryCache *cache.LRUCache[core.FinancialSummary]
	insightCache *cache.LRUCache[insights.Response]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and caches, returning a ready-to-run
// http.Server. publisher may be nil when ledger export is disabled.
func NewServer(addr string, store records.Store, svc *insights.Service, publisher ledger.Publisher, cacheTTL time.Duration) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:        store,
		insightsSvc:  svc,
		publisher:    publisher,
		rateLimiter:  newRateLimiter(),
		metrics:      &securityMetrics{},
		summaryCache: cache.NewLRUCache[core.FinancialSummary](500, cacheTTL),
		insightCache: cache.NewLRUCache[insights.Response](500, cacheTTL),
		cacheManager: cache.NewManager(),
	}

	s.cacheManager.Register(s.summaryCache)
	s.cacheManager.Register(s.insightCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/api/salaries", s.withMiddleware(s.handleSalaries))
	mux.HandleFunc("/api/expenses", s.withMiddleware(s.handleLegacyExpenses))
	mux.HandleFunc("/api/transactions", s.withMiddleware(s.handleTransactions))
	mux.HandleFunc("/api/budgets", s.withMiddleware(s.handleBudgets))
	mux.HandleFunc("/api/goals", s.withMiddleware(s.handleGoals))
	mux.HandleFunc("/api/summary", s.withMiddleware(s.handleSummary))
	mux.HandleFunc("/api/insights", s.withMiddleware(s.handleInsights))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withMiddleware adds security headers, rate limiting and request
// logging to a handler.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP, s.metrics) {
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

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// invalidateUser drops the cached summary and insights after a write.
func (s *Server) invalidateUser(userID string) {
	s.summaryCache.Delete(userID)
	s.insightCache.Delete(userID)
}

// publishEntry sends a ledger entry if a publisher is configured.
// Export is best-effort: a publish failure is logged, never surfaced
// to the API caller.
func (s *Server) publishEntry(ctx context.Context, entry ledger.Entry) {
	if s.publisher == nil {
		return
	}
	entry.CreatedAt = time.Now().UTC()
	if err := s.publisher.PublishEntry(ctx, entry); err != nil {
		slog.WarnContext(ctx, "Ledger entry publish failed",
			"user_id", entry.UserID, "kind", entry.Kind, "error", err)
	}
}
