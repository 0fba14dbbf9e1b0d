package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-pipeline-dashboard/components/dashboard"
)

// UpdateDataInput carries a partial dataset.
type UpdateDataInput struct {
	Patch dashboard.DatasetPatch `json:"patch"`
}

type dataReplacer interface {
	ReplaceData(ctx context.Context, patch dashboard.DatasetPatch) error
}

// UpdateDataCommand merges a partial dataset and redraws every view.
type UpdateDataCommand struct {
	controller dataReplacer
	telemetry  Telemetry
}

// NewUpdateDataCommand creates the command.
func NewUpdateDataCommand(controller dataReplacer, telemetry Telemetry) *UpdateDataCommand {
	return &UpdateDataCommand{controller: controller, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateDataInput] = (*UpdateDataCommand)(nil)

// Execute applies the patch. Empty patches are rejected.
func (c *UpdateDataCommand) Execute(ctx context.Context, msg UpdateDataInput) error {
	if c.controller == nil {
		return errors.New("update command requires controller")
	}
	if msg.Patch.IsEmpty() {
		return errors.New("update command requires at least one section")
	}
	if err := c.controller.ReplaceData(ctx, msg.Patch); err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventDataUpdate, map[string]any{
		"sections": msg.Patch.Sections(),
	})
	return nil
}
