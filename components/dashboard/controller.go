package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

const (
	defaultTemplate   = "dashboard.html"
	defaultStreamPath = "/dashboard/ws"
)

var errMissingRenderer = errors.New("dashboard: template renderer not configured")

// ControllerOptions configures the dashboard Controller.
type ControllerOptions struct {
	Store      *DataStore
	Charts     ChartRenderer
	Palette    []string
	Renderer   Renderer
	Template   string
	StreamPath string
	Telemetry  Telemetry
	Logger     *zap.Logger
	RedrawHook RedrawHook
}

// Controller owns the current view and reacts to user events. Events are
// handled one at a time.
type Controller struct {
	mu        sync.Mutex
	opts      ControllerOptions
	store     *DataStore
	adapter   *ChartAdapter
	logger    *zap.Logger
	telemetry Telemetry
	hook      RedrawHook
	handles   map[ChartSlot]*ChartHandle
	tooltips  *TooltipManager
	metric    Metric
	view      View
	ready     bool
}

// NewController builds a controller with safe defaults for every collaborator.
func NewController(opts ControllerOptions) *Controller {
	if opts.Store == nil {
		opts.Store = NewDataStore(Dataset{})
	}
	if opts.Charts == nil {
		opts.Charts = NewEChartsRenderer()
	}
	if opts.Template == "" {
		opts.Template = defaultTemplate
	}
	if opts.StreamPath == "" {
		opts.StreamPath = defaultStreamPath
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.RedrawHook == nil {
		opts.RedrawHook = noopRedrawHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)

	c := &Controller{
		opts:      opts,
		store:     opts.Store,
		adapter:   NewChartAdapter(opts.Palette),
		logger:    opts.Logger.Named("dashboard"),
		telemetry: opts.Telemetry,
		hook:      opts.RedrawHook,
		handles:   make(map[ChartSlot]*ChartHandle, len(ChartSlots)),
		tooltips:  NewTooltipManager(),
		metric:    DefaultMetric,
	}
	for _, slot := range ChartSlots {
		c.handles[slot] = NewChartHandle(slot, opts.Charts, c.chartDisposed)
	}
	return c
}

// Initialize loads data and renders every view with the default metric.
func (c *Controller) Initialize(ctx context.Context, data Dataset) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.redrawAll(ctx, cloneDataset(data), DefaultMetric, "initialize")
}

// ReplaceData shallow-merges patch into the stored dataset and redraws every
// view. Nothing changes when the merged dataset cannot be rendered.
func (c *Controller) ReplaceData(ctx context.Context, patch DatasetPatch) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	merged := MergeDataset(c.store.Snapshot(), patch)
	if err := c.redrawAll(ctx, merged, c.metric, "replace"); err != nil {
		c.logger.Warn("data update rejected", zap.Strings("sections", patch.Sections()), zap.Error(err))
		return err
	}
	c.logger.Info("data updated", zap.Strings("sections", patch.Sections()))
	return nil
}

// OnMetricChange re-renders both funnels with metric. Charts, header and
// table are left untouched.
func (c *Controller) OnMetricChange(ctx context.Context, metric Metric) error {
	if metric != MetricCount && metric != MetricValue {
		return fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	funnels, err := renderFunnels(c.store.Snapshot(), metric)
	if err != nil {
		return err
	}
	c.metric = metric
	next := c.view
	next.Metric = metric
	next.Funnels = funnels
	c.view = next
	c.tooltips.Clear()

	c.logger.Debug("metric changed", zap.String("metric", string(metric)))
	c.recordTelemetry(ctx, "dashboard.metric.change", map[string]any{"metric": string(metric)})
	c.notify(ctx, RedrawEvent{
		Reason: "metric",
		Views:  funnelContainerIDs(),
		Metric: metric,
	})
	return nil
}

// SelectMetric parses a selector value and applies it.
func (c *Controller) SelectMetric(ctx context.Context, value string) error {
	metric, err := ParseMetric(value)
	if err != nil {
		return err
	}
	return c.OnMetricChange(ctx, metric)
}

// OnTimePeriodChange records the selection. It does not filter any view.
func (c *Controller) OnTimePeriodChange(ctx context.Context, period string) {
	c.logger.Info("time period changed", zap.String("period", period))
	c.recordTelemetry(ctx, "dashboard.filter.time_period", map[string]any{"period": period})
}

// OnSectorChange records the selection. It does not filter any view.
func (c *Controller) OnSectorChange(ctx context.Context, sector string) {
	c.logger.Info("sector changed", zap.String("sector", sector))
	c.recordTelemetry(ctx, "dashboard.filter.sector", map[string]any{"sector": sector})
}

// ClickStage resolves the stage at order in the given funnel.
func (c *Controller) ClickStage(ctx context.Context, kind FunnelKind, order int) (FunnelStage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stage, err := c.findStage(kind, order)
	if err != nil {
		return FunnelStage{}, err
	}
	c.logger.Info("stage clicked",
		zap.String("funnel", string(kind)),
		zap.String("stage", stage.Name),
		zap.Int("order", stage.Order),
	)
	c.recordTelemetry(ctx, "dashboard.stage.click", map[string]any{
		"funnel": string(kind),
		"stage":  stage.Name,
	})
	return stage, nil
}

// HoverStage shows the tooltip for a stage next to the pointer.
func (c *Controller) HoverStage(_ context.Context, kind FunnelKind, order, x, y int) (Tooltip, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stage, err := c.findStage(kind, order)
	if err != nil {
		return Tooltip{}, err
	}
	tip := NewStageTooltip(kind, stage, x, y)
	c.tooltips.Show(tip)
	return tip, nil
}

// LeaveStage hides the tooltip of a stage. Unknown funnels report false.
func (c *Controller) LeaveStage(kind FunnelKind, order int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := ParseFunnelKind(string(kind)); err != nil {
		return false
	}
	return c.tooltips.Hide(StageKey{Funnel: kind, Order: order})
}

// Tooltips lists the visible tooltips.
func (c *Controller) Tooltips() []Tooltip {
	return c.tooltips.Active()
}

// CurrentData returns a copy of the stored dataset.
func (c *Controller) CurrentData() Dataset {
	return c.store.Snapshot()
}

// Metric reports the selected funnel metric.
func (c *Controller) Metric() Metric {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.metric
}

// View returns the most recent render.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Ready reports whether Initialize succeeded at least once.
func (c *Controller) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// RenderTemplate renders the dashboard page into out.
func (c *Controller) RenderTemplate(ctx context.Context, out io.Writer) error {
	if c.opts.Renderer == nil {
		return errMissingRenderer
	}
	_, err := c.opts.Renderer.Render(c.opts.Template, c.ViewPayload(), out)
	if err != nil {
		return fmt.Errorf("dashboard: render template %s: %w", c.opts.Template, err)
	}
	c.recordTelemetry(ctx, "dashboard.page.render", map[string]any{"template": c.opts.Template})
	return nil
}

// ViewPayload exposes the current view to templates.
func (c *Controller) ViewPayload() map[string]any {
	view := c.View()
	return map[string]any{
		"metric":      string(view.Metric),
		"metrics":     metricOptions(view.Metric),
		"header":      view.Header,
		"funnels":     view.Funnels,
		"charts":      view.Charts,
		"table":       view.Table,
		"tooltips":    c.tooltips.Active(),
		"stream_path": c.opts.StreamPath,
	}
}

// Close disposes every chart instance.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, slot := range ChartSlots {
		c.handles[slot].Dispose()
	}
	c.view.Charts = nil
}

// redrawAll renders data completely before committing anything, so a failure
// leaves the store, charts and view as they were.
func (c *Controller) redrawAll(ctx context.Context, data Dataset, metric Metric, reason string) error {
	if err := ValidateDataset(data); err != nil {
		return err
	}
	funnels, err := renderFunnels(data, metric)
	if err != nil {
		return err
	}
	specs, err := c.adapter.Specs(data)
	if err != nil {
		return err
	}
	prepared := make(map[ChartSlot]ChartInstance, len(specs))
	for _, slot := range ChartSlots {
		spec, ok := specs[slot]
		if !ok {
			continue
		}
		instance, err := c.handles[slot].Prepare(spec)
		if err != nil {
			return fmt.Errorf("dashboard: render %s: %w", slot, err)
		}
		prepared[slot] = instance
	}

	c.store.Load(data)
	next := View{
		Metric:  metric,
		Header:  BuildHeader(data.SummaryStats),
		Funnels: funnels,
		Charts:  make([]ChartView, 0, len(prepared)),
		Table:   BuildTable(data.InvestmentPerformance),
	}
	for _, slot := range ChartSlots {
		instance, ok := prepared[slot]
		if !ok {
			continue
		}
		next.Charts = append(next.Charts, chartView(c.handles[slot].Activate(instance)))
	}
	c.metric = metric
	c.view = next
	c.ready = true
	c.tooltips.Clear()

	c.recordTelemetry(ctx, "dashboard.redraw", map[string]any{
		"reason": reason,
		"charts": len(next.Charts),
	})
	c.notify(ctx, RedrawEvent{Reason: reason, Views: allViewIDs(), Metric: metric})
	return nil
}

// findStage expects c.mu to be held.
func (c *Controller) findStage(kind FunnelKind, order int) (FunnelStage, error) {
	if _, err := ParseFunnelKind(string(kind)); err != nil {
		return FunnelStage{}, err
	}
	for _, stage := range c.store.Snapshot().Funnel(kind) {
		if stage.Order == order {
			return stage, nil
		}
	}
	return FunnelStage{}, fmt.Errorf("%w: %s stage %d", ErrUnknownStage, kind, order)
}

func (c *Controller) chartDisposed(instance ChartInstance) {
	c.recordTelemetry(context.Background(), "dashboard.chart.dispose", map[string]any{
		"slot":       string(instance.Slot),
		"id":         instance.ID,
		"generation": instance.Generation,
	})
}

// notify treats hook failures as non-fatal; the redraw has already happened.
func (c *Controller) notify(ctx context.Context, event RedrawEvent) {
	if err := c.hook.ViewRedrawn(ctx, event); err != nil {
		c.logger.Warn("redraw hook failed", zap.String("reason", event.Reason), zap.Error(err))
	}
}

func (c *Controller) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	c.telemetry.Record(ctx, event, payload)
}

func renderFunnels(data Dataset, metric Metric) ([]FunnelView, error) {
	out := make([]FunnelView, 0, len(FunnelKinds))
	for _, kind := range FunnelKinds {
		stages, err := RenderFunnel(data.Funnel(kind), metric, kind.UnitNoun())
		if err != nil {
			var empty *EmptyInputError
			if errors.As(err, &empty) {
				empty.Funnel = string(kind)
			}
			var bad *MalformedRecordError
			if errors.As(err, &bad) {
				bad.Section = string(kind) + "_funnel"
			}
			return nil, err
		}
		out = append(out, FunnelView{
			Kind:        kind,
			ContainerID: funnelContainerID(kind),
			Stages:      stages,
		})
	}
	return out, nil
}

func funnelContainerIDs() []string {
	out := make([]string, 0, len(FunnelKinds))
	for _, kind := range FunnelKinds {
		out = append(out, funnelContainerID(kind))
	}
	return out
}

func allViewIDs() []string {
	out := append(funnelContainerIDs(), "header")
	for _, slot := range ChartSlots {
		out = append(out, string(slot))
	}
	return append(out, "performanceTable")
}

type metricOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

func metricOptions(selected Metric) []metricOption {
	return []metricOption{
		{Value: string(MetricCount), Label: "Company Count", Selected: selected == MetricCount},
		{Value: string(MetricValue), Label: "Value ($M)", Selected: selected == MetricValue},
	}
}
