package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stride-labs/stride/internal/api"
	"github.com/stride-labs/stride/internal/app/reward"
	"github.com/stride-labs/stride/internal/app/winscreen"
	"github.com/stride-labs/stride/internal/domain"
	"github.com/stride-labs/stride/internal/health"
	_ "github.com/stride-labs/stride/internal/infra/metrics" // Register Prometheus metrics
	"github.com/stride-labs/stride/internal/infra/sqlite"
)

// Daemon is the Stride runtime. It wires together all services.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Engine *reward.Engine
	Wins   *winscreen.Coordinator
	Health *health.Checker
	Server *api.Server
	cancel context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	db, err := sqlite.Open(strideHome())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	engineCfg := reward.DefaultConfig()
	if cfg.Engine.MinSetsPerDay > 0 {
		engineCfg.MinSetsPerDay = cfg.Engine.MinSetsPerDay
	}
	if cfg.Engine.MinSetMinutes > 0 {
		engineCfg.MinSetMinutes = cfg.Engine.MinSetMinutes
	}

	eng, err := reward.New(db, reward.WithConfig(engineCfg))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init reward engine: %w", err)
	}

	window := winscreen.DefaultWindow
	if cfg.Engine.CoalesceWindowMS > 0 {
		window = time.Duration(cfg.Engine.CoalesceWindowMS) * time.Millisecond
	}
	wins := winscreen.New(winscreen.WithWindow(window))
	eng.SetSummarySink(wins.Submit)

	hc := health.NewChecker(db, strideHome())

	srv := api.NewServer(eng, wins, hc)
	srv.SetCORSOrigins(cfg.API.CORSOrigins)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	return &Daemon{
		Config: cfg,
		DB:     db,
		Engine: eng,
		Wins:   wins,
		Health: hc,
		Server: srv,
	}, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		d.Engine.Flush()
		_ = d.DB.Close()
	}()

	fmt.Printf("Stride serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.Engine != nil {
		d.Engine.Flush()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
