package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"BtcPulse/internal/handler/api"
	"BtcPulse/internal/usecase"
	"BtcPulse/pkg/config"
	xhttp "BtcPulse/pkg/http"
	pkgkafka "BtcPulse/pkg/kafka"
	applogger "BtcPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	l          *applogger.Logger
	uc         *usecase.DashboardUseCase
	dashboard  *api.DashboardHandler
	stream     *api.StreamHandler
	producer   *pkgkafka.Producer
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	uc *usecase.DashboardUseCase,
	dashboard *api.DashboardHandler,
	stream *api.StreamHandler,
) *App {
	return &App{
		cfg:       cfg,
		l:         l,
		uc:        uc,
		dashboard: dashboard,
		stream:    stream,
	}
}

// SetProducer attaches the Kafka producer so the app can close it on
// shutdown and ship aggregated logs when a logs topic is configured.
func (a *App) SetProducer(p *pkgkafka.Producer) { a.producer = p }

// routeSet registers every handler on the same Echo instance.
type routeSet []xhttp.Handler

func (rs routeSet) RegisterRoutes(e *echo.Echo) {
	for _, h := range rs {
		h.RegisterRoutes(e)
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if a.producer != nil && a.cfg.Kafka.LogsTopic != "" {
		a.l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          a.cfg.Kafka.LogsTopic,
			Publisher:      a.producer,
		})
	}

	a.httpServer = xhttp.NewServer(routeSet{a.dashboard, a.stream},
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	go a.refreshLoop(ctx)
	a.l.Info("refresh loop started", applogger.Duration("interval", a.cfg.Dashboard.StreamInterval))

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}
	a.l.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

// refreshLoop periodically re-evaluates the dashboard and pushes each
// snapshot to WebSocket clients. The first evaluation runs immediately so
// clients connecting early get data without waiting a full interval.
func (a *App) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.Dashboard.StreamInterval)
	defer ticker.Stop()

	a.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.refresh(ctx)
		}
	}
}

func (a *App) refresh(ctx context.Context) {
	data := a.uc.Evaluate(ctx)
	a.stream.Broadcast(data)
	if n := a.stream.ClientCount(); n > 0 {
		a.l.Debug("snapshot broadcast",
			applogger.Int("clients", n),
			applogger.Int("score", data.Decision.CompositeScore),
		)
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	a.stream.Close()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}

	a.l.RemoveCollector()

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.l.Warn("kafka producer close error", applogger.Error(err))
		}
	}

	a.l.Info("shutdown complete")
	return nil
}
