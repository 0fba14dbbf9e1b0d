package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// SelectMetricInput carries the raw selector value ("count" or "value").
type SelectMetricInput struct {
	Metric string `json:"metric"`
}

type metricSelector interface {
	SelectMetric(ctx context.Context, value string) error
}

// SelectMetricCommand switches the funnel metric.
type SelectMetricCommand struct {
	controller metricSelector
	telemetry  Telemetry
}

// NewSelectMetricCommand creates the command.
func NewSelectMetricCommand(controller metricSelector, telemetry Telemetry) *SelectMetricCommand {
	return &SelectMetricCommand{controller: controller, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SelectMetricInput] = (*SelectMetricCommand)(nil)

// Execute delegates to the controller.
func (c *SelectMetricCommand) Execute(ctx context.Context, msg SelectMetricInput) error {
	if c.controller == nil {
		return errors.New("metric command requires controller")
	}
	if err := c.controller.SelectMetric(ctx, msg.Metric); err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventMetricSelect, map[string]any{"metric": msg.Metric})
	return nil
}
