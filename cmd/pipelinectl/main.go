package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-pipeline-dashboard/components/dashboard"
)

type Globals struct {
	LogLevel string `name:"log-level" default:"info" env:"PIPELINE_DASHBOARD_LOG_LEVEL" help:"Log level (debug, info, warn, error)."`
	Dev      bool   `help:"Use the human-readable development logger."`
}

type cli struct {
	Globals

	Serve    serveCmd    `cmd:"" help:"Serve the dashboard over HTTP."`
	Snapshot snapshotCmd `cmd:"" help:"Render the dashboard once and write it out."`
	Validate validateCmd `cmd:"" help:"Check a dataset file without rendering it."`
}

// ChartFlags configures chart rendering for commands that draw charts.
type ChartFlags struct {
	ChartTheme string        `name:"chart-theme" default:"westeros" env:"PIPELINE_DASHBOARD_CHART_THEME" help:"ECharts theme name."`
	ChartCache time.Duration `name:"chart-cache" default:"5m" help:"How long rendered charts are cached."`
}

func (f ChartFlags) renderer() *dashboard.EChartsRenderer {
	return dashboard.NewEChartsRenderer(
		dashboard.WithChartTheme(f.ChartTheme),
		dashboard.WithChartCache(dashboard.NewChartCache(f.ChartCache)),
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var app cli
	kctx := kong.Parse(&app,
		kong.Name("pipelinectl"),
		kong.Description("Investment pipeline dashboard server and tooling."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(&app.Globals),
	)
	err := kctx.Run()
	kctx.FatalIfErrorf(err)
}

func (g *Globals) logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(g.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("pipelinectl: %w", err)
	}
	cfg := zap.NewProductionConfig()
	if g.Dev {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

func loadDataset(path string, validator *dashboard.JSONSchemaValidator) (dashboard.Dataset, error) {
	if path == "" {
		return dashboard.DefaultDataset(), nil
	}
	return dashboard.ReadDataset(path, validator)
}
