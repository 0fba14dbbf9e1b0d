package commands

import (
	"context"

	dashboard "github.com/goliatone/go-pipeline-dashboard/components/dashboard"
)

// Telemetry is the dashboard event sink shared with the controller.
type Telemetry = dashboard.Telemetry

// Events recorded by the commands in this package.
const (
	EventDataUpdate   = "dashboard.data.update"
	EventDataSeed     = "dashboard.data.seed"
	EventMetricSelect = "dashboard.command.metric"
	EventFilterChange = "dashboard.command.filter"
	EventStageAction  = "dashboard.command.stage"
)

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
