package dashboard

import (
	"context"

	core "github.com/goliatone/go-pipeline-dashboard/components/dashboard"
)

// Dataset re-exports the dataset type.
type Dataset = core.Dataset

// DatasetPatch re-exports the partial dataset type.
type DatasetPatch = core.DatasetPatch

// Options re-export for convenience.
type Options = core.ControllerOptions

// Dashboard is the embedding API: load data once, then push partial updates.
type Dashboard struct {
	controller *core.Controller
}

// New builds a dashboard and renders data. A zero Dataset loads the bundled
// sample data.
func New(ctx context.Context, data Dataset, opts Options) (*Dashboard, error) {
	if isZero(data) {
		data = core.DefaultDataset()
	}
	controller := core.NewController(opts)
	if err := controller.Initialize(ctx, data); err != nil {
		return nil, err
	}
	return &Dashboard{controller: controller}, nil
}

// UpdateData shallow-merges partial into the current dataset and redraws every
// view. On error the dashboard keeps its previous data.
func (d *Dashboard) UpdateData(ctx context.Context, partial DatasetPatch) error {
	return d.controller.ReplaceData(ctx, partial)
}

// GetCurrentData returns a copy of the current dataset.
func (d *Dashboard) GetCurrentData() Dataset {
	return d.controller.CurrentData()
}

// Controller exposes the underlying controller for transports.
func (d *Dashboard) Controller() *core.Controller {
	return d.controller
}

func isZero(data Dataset) bool {
	return data.InwardFunnel == nil &&
		data.OutwardFunnel == nil &&
		data.SummaryStats == nil &&
		data.Sectors == nil &&
		data.CapitalTimeline == nil &&
		data.InvestmentPerformance == nil
}
