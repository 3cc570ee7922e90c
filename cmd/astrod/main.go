package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/siderealworks/astrocarto/core"
	"github.com/siderealworks/astrocarto/internal/api"
	"github.com/siderealworks/astrocarto/internal/config"
	"github.com/siderealworks/astrocarto/internal/logging"
	"github.com/siderealworks/astrocarto/internal/observability"
	"github.com/siderealworks/astrocarto/kb"
	"github.com/siderealworks/astrocarto/timectrl"
)

func main() {
	// A local .env is optional; real deployments set ASTRO_* directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logging.New(logging.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: true,
	})
	ctx := context.Background()

	tables, err := config.LoadTables(cfg.TablesPath)
	if err != nil {
		log.Error(ctx, "failed to load tuning tables", logging.Err(err))
		os.Exit(1)
	}

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.Err(err))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdownTracing, log)

	apiCollector, err := observability.NewAPICollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise API metrics", logging.Err(err))
		os.Exit(1)
	}
	engineCollector, err := observability.NewEngineCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise engine metrics", logging.Err(err))
		os.Exit(1)
	}

	store := kb.NewStore()
	if cfg.LocationCatalog != "" {
		n, err := store.LoadLocations(cfg.LocationCatalog)
		if err != nil {
			log.Error(ctx, "failed to load location catalog",
				logging.String("path", cfg.LocationCatalog), logging.Err(err))
			os.Exit(1)
		}
		log.Info(ctx, "location catalog loaded",
			logging.String("path", cfg.LocationCatalog), logging.Int("locations", n))
	}
	apiCollector.SetStoreCounts(len(store.ListCharts()), len(store.ListLocations()))

	// Keep the store gauges current as charts are created and refreshed.
	unsubscribe := store.Subscribe(func(kb.Event) {
		apiCollector.SetStoreCounts(len(store.ListCharts()), len(store.ListLocations()))
	})
	defer unsubscribe()

	engine := core.NewScoringEngine(tables.Orbs, tables.Weights, tables.Sentiment)
	if cfg.ScanStepDays > 0 {
		engine.Scanner.Step = time.Duration(cfg.ScanStepDays) * 24 * time.Hour
	}

	clock := timectrl.SystemClock{}
	handler := &api.Handler{
		Log:     log,
		Store:   store,
		Engine:  engine,
		Clock:   clock,
		Metrics: engineCollector,
	}
	server := api.NewServer(cfg.Server.Addr, handler, log, apiCollector)

	metricsSrv := serveMetrics(cfg.Server.MetricsAddr, apiCollector, log)

	// Keep every stored chart's transit snapshot fresh.
	refresher := timectrl.NewRefreshController(clock, cfg.RefreshInterval)
	refresher.AddListener(func(now time.Time) {
		jd := core.JulianDayFromTime(now)
		positions := core.PositionsAt(jd)
		engineCollector.AddPositionsComputed(len(positions))

		for _, chart := range store.ListCharts() {
			if err := store.UpdateChartTransits(chart.ID, positions); err != nil {
				log.Warn(ctx, "transit refresh failed",
					logging.String("chart_id", chart.ID), logging.Err(err))
			}
		}
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	refresherDone := refresher.Start(runCtx)

	log.Info(ctx, "starting astrod",
		logging.String("addr", cfg.Server.Addr),
		logging.String("metrics_addr", cfg.Server.MetricsAddr),
		logging.Duration("refresh_interval", cfg.RefreshInterval),
	)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "HTTP server exited", logging.Err(err))
			stop()
		}
	}()

	<-runCtx.Done()
	log.Info(ctx, "shutting down astrod")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	<-refresherDone
}

func serveMetrics(addr string, collector *observability.APICollector, log logging.Logger) *http.Server {
	if addr == "" || collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.Err(err))
		}
	}()
	return srv
}
