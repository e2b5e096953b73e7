package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/camuig/lcf-dashboard/internal/config"
	"github.com/camuig/lcf-dashboard/internal/dashboard"
	"github.com/camuig/lcf-dashboard/internal/logger"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

type Server struct {
	httpServer *http.Server
	router     chi.Router
	service    *dashboard.Service
	layout     dashboard.Layout
	metrics    *Metrics
	config     *config.Config
	logger     *logger.Logger
}

func NewServer(svc *dashboard.Service, layout dashboard.Layout, cfg *config.Config, log *logger.Logger) *Server {
	s := &Server{
		service: svc,
		layout:  layout,
		metrics: NewMetrics(),
		config:  cfg,
		logger:  log,
	}
	if layout.TradeLog != nil {
		s.metrics.TradeLogRows.Set(float64(len(layout.TradeLog.Rows)))
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleDashboard)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/layout", s.handleLayout)
		r.Get("/tradelog", s.handleTradeLog)
		r.Get("/charts/price", s.handlePriceChart)
		r.Post("/charts/price", s.handlePriceChartPost)
		r.Get("/charts/balance", s.handleBalanceChart)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		notFound(w, "route not found")
	})

	s.router = r
	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("web server starting", "addr", s.httpServer.Addr, "debug", s.config.IsDebug())
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()[:8]
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		s.metrics.observeRequest(route, r.Method, status, elapsed)

		if route == "/metrics" || route == "/health" {
			return
		}
		s.logger.Debug("http request",
			"request_id", requestIDFrom(r.Context()),
			"remote_addr", r.RemoteAddr,
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"elapsed", elapsed)
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
