package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"driversdash/internal/insight"
	"driversdash/internal/repo"
	appweb "driversdash/web"
)

// EventPublisher forwards entry-created events to the backup mirror. A nil
// publisher disables mirroring.
type EventPublisher interface {
	PublishEntryCreated(ctx context.Context, entryID string) error
}

type Server struct {
	http.Server
	repo     *repo.Repository
	insights *insight.Service
	events   EventPublisher
	limiter  *rateLimiter

	// now is replaceable in tests; date windows depend on it.
	now func() time.Time
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, r *repo.Repository, ins *insight.Service, events EventPublisher) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		repo:     r,
		insights: ins,
		events:   events,
		limiter:  newRateLimiter(60, time.Minute),
		now:      time.Now,
	}

	// Static SPA assets from the embedded FS.
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.FileServer(http.FS(sub))
		mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/entries", s.with(s.handleListEntries))
	mux.HandleFunc("POST /api/entries", s.with(s.handleCreateEntry))
	mux.HandleFunc("DELETE /api/entries/{id}", s.with(s.handleDeleteEntry))

	mux.HandleFunc("GET /api/goals", s.with(s.handleListGoals))
	mux.HandleFunc("POST /api/goals", s.with(s.handleCreateGoal))
	mux.HandleFunc("DELETE /api/goals/{id}", s.with(s.handleDeleteGoal))

	mux.HandleFunc("GET /api/dashboard", s.with(s.handleDashboard))
	mux.HandleFunc("GET /api/charts", s.with(s.handleCharts))
	mux.HandleFunc("POST /api/insights", s.with(s.handleInsights))

	mux.HandleFunc("GET /api/export", s.with(s.handleExport))
	mux.HandleFunc("POST /api/import", s.with(s.handleImport))
	mux.HandleFunc("POST /api/reset", s.with(s.handleReset))

	return s
}

// with adds request logging, a request ID, security headers and rate
// limiting for mutating methods.
func (s *Server) with(next http.HandlerFunc) http.HandlerFunc {
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

		if r.Method != http.MethodGet && !s.limiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "Muitas requisições. Tente novamente em instantes.")
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
			"duration_ms", time.Since(start).Milliseconds())
	}
}

type requestIDKey struct{}

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

// rateLimiter is a small fixed-window per-IP limiter for mutating requests.
type rateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]*clientWindow
}

type clientWindow struct {
	start    time.Time
	requests int
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*clientWindow),
	}
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	c, ok := rl.clients[clientIP]
	if !ok || now.Sub(c.start) > rl.window {
		rl.clients[clientIP] = &clientWindow{start: now, requests: 1}
		// Drop stale windows opportunistically to bound the map.
		for ip, w := range rl.clients {
			if now.Sub(w.start) > 2*rl.window {
				delete(rl.clients, ip)
			}
		}
		return true
	}
	c.requests++
	return c.requests <= rl.limit
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
