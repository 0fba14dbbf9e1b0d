package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pipeline-dashboard/components/dashboard"
)

type snapshotCmd struct {
	ChartFlags

	Dataset string `type:"existingfile" env:"PIPELINE_DASHBOARD_DATASET" help:"YAML or JSON dataset to load (defaults to the bundled sample)."`
	Metric  string `default:"count" help:"Funnel metric (count or value)."`
	Format  string `enum:"json,html,yaml" default:"json" help:"json writes the view model, html the page, yaml the dataset."`
	Out     string `short:"o" type:"path" help:"Output file (defaults to stdout)."`
}

func (cmd *snapshotCmd) Run(ctx context.Context, g *Globals) error {
	logger, err := g.logger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	data, err := loadDataset(cmd.Dataset, nil)
	if err != nil {
		return err
	}
	opts := dashboard.ControllerOptions{Charts: cmd.renderer(), Logger: logger}
	if cmd.Format == "html" {
		renderer, err := dashboard.NewTemplateRenderer("")
		if err != nil {
			return err
		}
		opts.Renderer = renderer
	}
	controller := dashboard.NewController(opts)
	defer controller.Close()
	if err := controller.Initialize(ctx, data); err != nil {
		return err
	}
	if err := controller.SelectMetric(ctx, cmd.Metric); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := writeSnapshot(ctx, &buf, controller, cmd.Format); err != nil {
		return err
	}
	if cmd.Out == "" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(cmd.Out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("pipelinectl: write snapshot: %w", err)
	}
	return nil
}

func writeSnapshot(ctx context.Context, out io.Writer, controller *dashboard.Controller, format string) error {
	switch format {
	case "html":
		return controller.RenderTemplate(ctx, out)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(controller.CurrentData())
	default:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(controller.View())
	}
}
