package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-pipeline-dashboard/components/dashboard"
)

// SeedDataInput selects the dataset to load on startup. An empty Path loads
// the built-in sample dataset.
type SeedDataInput struct {
	Path string
}

type initializer interface {
	Initialize(ctx context.Context, data dashboard.Dataset) error
}

// SeedDataCommand loads the initial dataset and renders every view.
type SeedDataCommand struct {
	controller initializer
	validator  *dashboard.JSONSchemaValidator
	telemetry  Telemetry
}

// NewSeedDataCommand wires dependencies.
func NewSeedDataCommand(controller initializer, validator *dashboard.JSONSchemaValidator, telemetry Telemetry) *SeedDataCommand {
	if validator == nil {
		validator = dashboard.NewJSONSchemaValidator()
	}
	return &SeedDataCommand{
		controller: controller,
		validator:  validator,
		telemetry:  normalizeTelemetry(telemetry),
	}
}

var _ gocommand.Commander[SeedDataInput] = (*SeedDataCommand)(nil)

// Execute reads the dataset and initializes the controller.
func (c *SeedDataCommand) Execute(ctx context.Context, msg SeedDataInput) error {
	if c.controller == nil {
		return errors.New("seed command requires controller")
	}
	data := dashboard.DefaultDataset()
	source := "builtin"
	if msg.Path != "" {
		loaded, err := dashboard.ReadDataset(msg.Path, c.validator)
		if err != nil {
			return err
		}
		data = loaded
		source = msg.Path
	}
	if err := c.controller.Initialize(ctx, data); err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventDataSeed, map[string]any{"source": source})
	return nil
}
