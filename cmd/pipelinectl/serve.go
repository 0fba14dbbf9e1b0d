package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	router "github.com/goliatone/go-router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goliatone/go-pipeline-dashboard/components/dashboard"
	"github.com/goliatone/go-pipeline-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-pipeline-dashboard/components/dashboard/gorouter"
	"github.com/goliatone/go-pipeline-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-pipeline-dashboard/components/dashboard/queries"
)

type serveCmd struct {
	ChartFlags

	Addr        string `default:":9876" env:"PIPELINE_DASHBOARD_ADDR" help:"Listen address."`
	Dataset     string `type:"existingfile" env:"PIPELINE_DASHBOARD_DATASET" help:"YAML or JSON dataset to load (defaults to the bundled sample)."`
	MetricsAddr string `name:"metrics-addr" env:"PIPELINE_DASHBOARD_METRICS_ADDR" help:"Expose Prometheus metrics on this address."`
	Server      string `enum:"fiber,http" default:"fiber" env:"PIPELINE_DASHBOARD_SERVER" help:"HTTP stack: fiber (go-router) or http (net/http)."`
	BasePath    string `name:"base-path" env:"PIPELINE_DASHBOARD_BASE_PATH" help:"Prefix for every dashboard route."`
	Templates   string `type:"existingdir" env:"PIPELINE_DASHBOARD_TEMPLATES" help:"Directory with a dashboard.html overriding the bundled page."`
}

func (cmd *serveCmd) Run(ctx context.Context, g *Globals) error {
	logger, err := g.logger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	registry := prometheus.NewRegistry()
	counters, err := dashboard.NewPrometheusTelemetry(registry)
	if err != nil {
		return err
	}
	telemetry := dashboard.MultiTelemetry{dashboard.NewZapTelemetry(logger), counters}

	renderer, err := dashboard.NewTemplateRenderer(cmd.Templates)
	if err != nil {
		return err
	}
	hook := dashboard.NewBroadcastHook()
	context.AfterFunc(ctx, hook.Close)
	validator := dashboard.NewJSONSchemaValidator()
	controller := dashboard.NewController(dashboard.ControllerOptions{
		Charts:     cmd.renderer(),
		Renderer:   renderer,
		StreamPath: cmd.BasePath + "/dashboard/ws",
		Telemetry:  telemetry,
		Logger:     logger,
		RedrawHook: hook,
	})
	defer controller.Close()

	seed := commands.NewSeedDataCommand(controller, validator, telemetry)
	if err := seed.Execute(ctx, commands.SeedDataInput{Path: cmd.Dataset}); err != nil {
		return err
	}

	api := &httpapi.Handlers{
		Update:    commands.NewUpdateDataCommand(controller, telemetry),
		Metric:    commands.NewSelectMetricCommand(controller, telemetry),
		Filters:   commands.NewChangeFilterCommand(controller, telemetry),
		Stage:     commands.NewStageCommand(controller, telemetry),
		Data:      queries.NewCurrentDataQuery(controller),
		View:      queries.NewViewQuery(controller),
		Page:      controller,
		Validator: validator,
	}

	if cmd.MetricsAddr != "" {
		go serveMetrics(ctx, logger, cmd.MetricsAddr, registry)
	}

	logger.Info("dashboard ready",
		zap.String("addr", cmd.Addr),
		zap.String("server", cmd.Server),
		zap.String("page", cmd.BasePath+"/dashboard"),
	)
	if cmd.Server == "http" {
		mux := http.NewServeMux()
		api.Mount(mux, cmd.BasePath, hook)
		return serveHTTP(ctx, logger, &http.Server{Addr: cmd.Addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second})
	}

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config{
		Router:     server.Router(),
		Controller: controller,
		API:        api,
		Broadcast:  hook,
		BasePath:   cmd.BasePath,
	}); err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		logger.Info("shutting down", zap.String("addr", cmd.Addr))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("fiber shutdown", zap.Error(err))
		}
	}()
	return server.Serve(cmd.Addr)
}

func serveMetrics(ctx context.Context, logger *zap.Logger, addr string, registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	logger.Info("metrics ready", zap.String("addr", addr))
	if err := serveHTTP(ctx, logger, &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}); err != nil {
		logger.Error("metrics server stopped", zap.Error(err))
	}
}

func serveHTTP(ctx context.Context, logger *zap.Logger, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down", zap.String("addr", srv.Addr))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
