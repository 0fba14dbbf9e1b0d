package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-pipeline-dashboard/components/dashboard"
)

type validateCmd struct {
	Path string `arg:"" type:"existingfile" help:"Dataset file (YAML or JSON)."`
}

func (cmd *validateCmd) Run(_ context.Context) error {
	return validateDataset(os.Stdout, cmd.Path)
}

func validateDataset(out io.Writer, path string) error {
	data, err := dashboard.ReadDataset(path, nil)
	if err != nil {
		return err
	}
	for _, kind := range dashboard.FunnelKinds {
		if len(data.Funnel(kind)) == 0 {
			return &dashboard.EmptyInputError{Funnel: string(kind)}
		}
	}
	fmt.Fprintf(out, "✓ %s: %d inward stages, %d outward stages, %d investments\n",
		path, len(data.InwardFunnel), len(data.OutwardFunnel), len(data.InvestmentPerformance))
	return nil
}
