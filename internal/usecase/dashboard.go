package usecase

import (
	"context"
	"time"

	"BtcPulse/internal/alerts"
	"BtcPulse/internal/decision"
	"BtcPulse/internal/domain/models"
	domsvc "BtcPulse/internal/domain/service"
	"BtcPulse/internal/signals"
	applogger "BtcPulse/pkg/logger"
)

// DashboardUseCase runs one full evaluation: collect signals, compute the
// composite decision, generate alerts, and assemble the aggregate report.
// Every run is independent; nothing is persisted across invocations.
type DashboardUseCase struct {
	engine    *signals.Engine
	generator *alerts.Generator
	sink      domsvc.AlertSink
	metrics   domsvc.Metrics
	l         *applogger.Logger
	timeout   time.Duration
	now       func() time.Time
}

func NewDashboardUseCase(engine *signals.Engine, generator *alerts.Generator, metrics domsvc.Metrics) *DashboardUseCase {
	return &DashboardUseCase{
		engine:    engine,
		generator: generator,
		metrics:   metrics,
		timeout:   15 * time.Second,
		now:       time.Now,
	}
}

// SetAlertSink enables downstream alert delivery (optional).
func (uc *DashboardUseCase) SetAlertSink(sink domsvc.AlertSink) { uc.sink = sink }

// SetLogger injects a structured logger.
func (uc *DashboardUseCase) SetLogger(l *applogger.Logger) { uc.l = l }

// SetClock overrides the timestamp source; used by tests.
func (uc *DashboardUseCase) SetClock(now func() time.Time) { uc.now = now }

// Evaluate runs the pipeline once and returns the full dashboard report.
// The pipeline itself never fails: provider outages degrade to neutral
// low-confidence signals inside the engine.
func (uc *DashboardUseCase) Evaluate(ctx context.Context) *models.DashboardData {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	price, sigs := uc.timed("collect", func() (models.PriceData, []models.Signal) {
		return uc.engine.Collect(ctx)
	})

	start := time.Now()
	dec := decision.Compute(sigs)
	uc.recordLatency("decision", time.Since(start))

	start = time.Now()
	alertList := uc.generator.Generate(sigs, dec, price)
	uc.recordLatency("alerts", time.Since(start))
	uc.recordAlerts(alertList)

	uc.deliverAlerts(ctx, alertList)

	return &models.DashboardData{
		Price:       price,
		Signals:     sigs,
		Decision:    dec,
		Alerts:      alertList,
		LastUpdated: uc.now(),
	}
}

func (uc *DashboardUseCase) timed(stage string, fn func() (models.PriceData, []models.Signal)) (models.PriceData, []models.Signal) {
	start := time.Now()
	price, sigs := fn()
	uc.recordLatency(stage, time.Since(start))
	return price, sigs
}

func (uc *DashboardUseCase) recordLatency(stage string, d time.Duration) {
	if uc.metrics != nil {
		uc.metrics.RecordStageLatency(stage, d.Seconds())
	}
}

func (uc *DashboardUseCase) recordAlerts(alertList []models.Alert) {
	if uc.metrics == nil {
		return
	}
	counts := map[models.AlertSeverity]int{}
	for _, a := range alertList {
		counts[a.Severity]++
	}
	for severity, n := range counts {
		uc.metrics.RecordAlerts(string(severity), n)
	}
}

// deliverAlerts is best-effort: a broken broker never fails the request.
func (uc *DashboardUseCase) deliverAlerts(ctx context.Context, alertList []models.Alert) {
	if uc.sink == nil || len(alertList) == 0 {
		return
	}
	if err := uc.sink.Publish(ctx, alertList); err != nil {
		if uc.l != nil {
			uc.l.Warn("alert publish failed", applogger.Error(err), applogger.Int("count", len(alertList)))
		}
	}
}
