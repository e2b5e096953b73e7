package web

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/camuig/lcf-dashboard/internal/dashboard"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxBodyBytes = 64 << 10

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

type priceChartRequest struct {
	Ticker    string                       `json:"ticker"`
	Indicator dashboard.IndicatorSelection `json:"indicator"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, s.layout); err != nil {
		s.logger.Error("execute template", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	successResponse(w, s.layout)
}

func (s *Server) handleTradeLog(w http.ResponseWriter, r *http.Request) {
	successResponse(w, s.layout.TradeLog)
}

func (s *Server) handlePriceChart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.renderPriceChart(w, r, q.Get("ticker"), dashboard.ParseIndicatorQuery(q["indicator"]))
}

func (s *Server) handlePriceChartPost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req priceChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errorResponse(w, http.StatusRequestEntityTooLarge, "request body too large", nil)
			return
		}
		badRequest(w, "invalid request body: "+err.Error())
		return
	}
	s.renderPriceChart(w, r, req.Ticker, req.Indicator)
}

func (s *Server) renderPriceChart(w http.ResponseWriter, r *http.Request, ticker string, sel dashboard.IndicatorSelection) {
	if ticker == "" {
		ticker = s.layout.Ticker.Value
	}

	start := time.Now()
	fig, err := s.service.PriceChart(r.Context(), ticker, sel)
	s.metrics.observeChart("price", start, err)
	if err != nil {
		s.logger.Error("price chart", "ticker", ticker, "indicators", sel,
			"request_id", requestIDFrom(r.Context()), "error", err)
		internalError(w, "failed to build price chart", err, s.config.IsDebug())
		return
	}

	writeJSON(w, http.StatusOK, fig)
}

func (s *Server) handleBalanceChart(w http.ResponseWriter, r *http.Request) {
	platform := r.URL.Query().Get("platform")
	if platform == "" {
		platform = s.layout.Platform.Value
	}

	start := time.Now()
	fig, err := s.service.BalanceChart(r.Context(), platform)
	s.metrics.observeChart("balance", start, err)
	if err != nil {
		s.logger.Error("balance chart", "platform", platform,
			"request_id", requestIDFrom(r.Context()), "error", err)
		internalError(w, "failed to build balance chart", err, s.config.IsDebug())
		return
	}

	writeJSON(w, http.StatusOK, fig)
}
