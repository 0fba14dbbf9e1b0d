package dashboard

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const (
	defaultChartHeight = "360px"
	// DefaultChartAssetsHost serves the ECharts runtime and themes.
	DefaultChartAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"
	// ChartAssetsEnv names the variable that points charts at another assets host.
	ChartAssetsEnv = "PIPELINE_DASHBOARD_ECHARTS_CDN"
)

// ChartRenderer turns chart specs into embeddable markup.
type ChartRenderer interface {
	RenderChart(spec ChartSpec) (string, error)
}

// EChartsRenderer renders server-side chart HTML with go-echarts.
type EChartsRenderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
	height     string
}

// EChartsRendererOption customizes renderer behavior.
type EChartsRendererOption func(*EChartsRenderer)

// WithChartCache injects a render cache. Nil disables caching.
func WithChartCache(cache RenderCache) EChartsRendererOption {
	return func(r *EChartsRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the echarts theme (defaults to Westeros).
func WithChartTheme(theme string) EChartsRendererOption {
	return func(r *EChartsRenderer) {
		if theme != "" {
			r.theme = theme
		}
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) EChartsRendererOption {
	return func(r *EChartsRenderer) {
		r.assetsHost = ensureTrailingSlash(host)
	}
}

// WithChartHeight overrides the chart canvas height.
func WithChartHeight(height string) EChartsRendererOption {
	return func(r *EChartsRenderer) {
		if height != "" {
			r.height = height
		}
	}
}

// NewEChartsRenderer builds a renderer with a five minute render cache.
func NewEChartsRenderer(opts ...EChartsRendererOption) *EChartsRenderer {
	r := &EChartsRenderer{
		cache:      NewChartCache(5 * time.Minute),
		theme:      types.ThemeWesteros,
		assetsHost: chartAssetsHost(),
		height:     defaultChartHeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderChart renders spec, reusing cached markup for identical specs.
func (r *EChartsRenderer) RenderChart(spec ChartSpec) (string, error) {
	renderFn := func() (string, error) {
		return r.render(spec)
	}
	if r.cache == nil {
		return renderFn()
	}
	key := ChartKey{Slot: spec.Slot, Theme: r.theme, Hash: specHash(spec)}
	return r.cache.GetOrRender(key, renderFn)
}

func (r *EChartsRenderer) render(spec ChartSpec) (string, error) {
	switch spec.Kind {
	case ChartLine:
		return r.renderLineChart(spec)
	case ChartScatter:
		return r.renderScatterChart(spec)
	case ChartDonut:
		return r.renderDonutChart(spec)
	default:
		return "", fmt.Errorf("dashboard: unsupported chart kind: %s", spec.Kind)
	}
}

func (r *EChartsRenderer) renderLineChart(spec ChartSpec) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(append(r.globalChartOptions(spec),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.YAxisName}),
	)...)
	line.SetXAxis(spec.Labels)
	for _, s := range spec.Series {
		line.AddSeries(s.Name, toLineData(s.Points),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color}),
		)
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChart(line)
}

func (r *EChartsRenderer) renderScatterChart(spec ChartSpec) (string, error) {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(append(r.globalChartOptions(spec),
		charts.WithXAxisOpts(opts.XAxis{Name: spec.XAxisName, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.YAxisName, Type: "value"}),
	)...)
	for _, s := range spec.Series {
		scatter.AddSeries(s.Name, toScatterData(s.Points),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
		)
	}
	return renderChart(scatter)
}

func (r *EChartsRenderer) renderDonutChart(spec ChartSpec) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(r.globalChartOptions(spec)...)
	for _, s := range spec.Series {
		pie.AddSeries(s.Name, toPieData(s.Points),
			charts.WithPieChartOpts(opts.PieChart{Radius: []string{"40%", "70%"}}),
		)
	}
	return renderChart(pie)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *EChartsRenderer) globalChartOptions(spec ChartSpec) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:   r.theme,
		Width:   "100%",
		Height:  r.height,
		ChartID: string(spec.Slot),
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(spec.Kind != ChartScatter)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func toLineData(points []ChartPoint) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{
			Name:  point.Label,
			Value: point.Value,
		}
	}
	return data
}

func toPieData(points []ChartPoint) []opts.PieData {
	data := make([]opts.PieData, len(points))
	for i, point := range points {
		name := point.Label
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{
			Name:  name,
			Value: point.Value,
		}
		if point.Color != "" {
			data[i].ItemStyle = &opts.ItemStyle{Color: point.Color}
		}
	}
	return data
}

// toScatterData maps bubble radius to the echarts symbol diameter.
func toScatterData(points []ChartPoint) []opts.ScatterData {
	data := make([]opts.ScatterData, len(points))
	for i, point := range points {
		value := []float64{float64(i + 1), point.Value}
		if len(point.Pair) >= 2 {
			value = point.Pair[:2]
		}
		data[i] = opts.ScatterData{
			Name:       point.Label,
			Value:      value,
			SymbolSize: int(math.Round(point.Size * 2)),
		}
	}
	return data
}

func chartAssetsHost() string {
	if host := strings.TrimSpace(os.Getenv(ChartAssetsEnv)); host != "" {
		return ensureTrailingSlash(host)
	}
	return DefaultChartAssetsHost
}

func ensureTrailingSlash(value string) string {
	if value == "" || strings.HasSuffix(value, "/") {
		return value
	}
	return value + "/"
}
