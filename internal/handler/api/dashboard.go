package api

import (
	"encoding/json"
	"time"

	"BtcPulse/internal/domain/models"
	icache "BtcPulse/internal/service/cache"
	"BtcPulse/internal/service/ratelimit"
	"BtcPulse/internal/usecase"
	xhttp "BtcPulse/pkg/http"
	xlogger "BtcPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

const dashboardCacheKey = "dashboard:data"

// DashboardHandler exposes the signal pipeline over HTTP.
type DashboardHandler struct {
	logger   *xlogger.Logger
	uc       *usecase.DashboardUseCase
	cache    icache.BytesCache
	rl       *ratelimit.Limiter
	cacheTTL time.Duration
}

func NewDashboardHandler(logger *xlogger.Logger, uc *usecase.DashboardUseCase, cacheTTL time.Duration) *DashboardHandler {
	return &DashboardHandler{
		logger:   logger,
		uc:       uc,
		rl:       ratelimit.New(),
		cacheTTL: cacheTTL,
	}
}

// SetCache enables response caching.
func (h *DashboardHandler) SetCache(c icache.BytesCache) { h.cache = c }

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/dashboard", h.Dashboard)
	g.GET("/signals", h.Signals)
	g.GET("/alerts", h.Alerts)
	e.GET("/healthz", h.Health)
}

// Dashboard runs the full pipeline: collect signals, compute the
// composite decision, generate alerts.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if !h.rl.Allow(c.RealIP()+":dashboard", 5, 2) {
		h.logger.Warn("dashboard rate_limited", xlogger.String("remote", c.RealIP()))
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limited"))
	}

	if !req.Fresh && h.cache != nil {
		if b, ok, err := h.cache.GetBytes(dashboardCacheKey); err != nil {
			h.logger.Warn("dashboard cache_get_error", xlogger.Error(err))
		} else if ok {
			return xhttp.SuccessResponse(c, json.RawMessage(b))
		}
	}

	data := h.uc.Evaluate(c.Request().Context())

	b, err := json.Marshal(data)
	if err != nil {
		h.logger.Error("dashboard marshal_error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("encode error"))
	}
	if h.cache != nil {
		if err := h.cache.SetBytes(dashboardCacheKey, b, h.cacheTTL); err != nil {
			h.logger.Warn("dashboard cache_set_error", xlogger.Error(err))
		}
	}

	return xhttp.SuccessResponse(c, json.RawMessage(b))
}

// Signals returns the raw engine output without decision or alerts.
func (h *DashboardHandler) Signals(c echo.Context) error {
	if !h.rl.Allow(c.RealIP()+":signals", 5, 2) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limited"))
	}

	data := h.uc.Evaluate(c.Request().Context())
	return xhttp.SuccessResponse(c, struct {
		Price   models.PriceData `json:"price"`
		Signals []models.Signal  `json:"signals"`
	}{Price: data.Price, Signals: data.Signals})
}

// Alerts returns the current alert list, filtered by a severity floor.
func (h *DashboardHandler) Alerts(c echo.Context) error {
	req := &models.AlertsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if !h.rl.Allow(c.RealIP()+":alerts", 5, 2) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limited"))
	}

	data := h.uc.Evaluate(c.Request().Context())
	return xhttp.SuccessResponse(c, filterBySeverity(data.Alerts, models.AlertSeverity(req.MinSeverity)))
}

func (h *DashboardHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

var severityFloor = map[models.AlertSeverity]int{
	models.SeverityCritical: 0,
	models.SeverityWarning:  1,
	models.SeverityInfo:     2,
}

func filterBySeverity(alerts []models.Alert, min models.AlertSeverity) []models.Alert {
	floor, ok := severityFloor[min]
	if !ok {
		return alerts
	}
	out := make([]models.Alert, 0, len(alerts))
	for _, a := range alerts {
		if severityFloor[a.Severity] <= floor {
			out = append(out, a)
		}
	}
	return out
}
