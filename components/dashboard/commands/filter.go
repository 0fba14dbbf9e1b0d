package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// ChangeFilterInput carries the time period and/or sector selections. Empty
// fields are ignored.
type ChangeFilterInput struct {
	TimePeriod string `json:"time_period"`
	Sector     string `json:"sector"`
}

type filterListener interface {
	OnTimePeriodChange(ctx context.Context, period string)
	OnSectorChange(ctx context.Context, sector string)
}

// ChangeFilterCommand forwards filter selections. Filters are recorded only;
// no view is narrowed by them.
type ChangeFilterCommand struct {
	controller filterListener
	telemetry  Telemetry
}

// NewChangeFilterCommand creates the command.
func NewChangeFilterCommand(controller filterListener, telemetry Telemetry) *ChangeFilterCommand {
	return &ChangeFilterCommand{controller: controller, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ChangeFilterInput] = (*ChangeFilterCommand)(nil)

// Execute notifies the controller of each non-empty selection.
func (c *ChangeFilterCommand) Execute(ctx context.Context, msg ChangeFilterInput) error {
	if c.controller == nil {
		return errors.New("filter command requires controller")
	}
	if msg.TimePeriod == "" && msg.Sector == "" {
		return errors.New("filter command requires time_period or sector")
	}
	if msg.TimePeriod != "" {
		c.controller.OnTimePeriodChange(ctx, msg.TimePeriod)
	}
	if msg.Sector != "" {
		c.controller.OnSectorChange(ctx, msg.Sector)
	}
	c.telemetry.Record(ctx, EventFilterChange, map[string]any{
		"time_period": msg.TimePeriod,
		"sector":      msg.Sector,
	})
	return nil
}
