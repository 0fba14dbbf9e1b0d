package dashboard

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ettle/strcase"
)

// View is everything the presentation layer needs for one render.
type View struct {
	Metric  Metric       `json:"metric"`
	Header  HeaderView   `json:"header"`
	Funnels []FunnelView `json:"funnels"`
	Charts  []ChartView  `json:"charts"`
	Table   []TableRow   `json:"table"`
}

// Funnel returns the rendered funnel of the given kind.
func (v View) Funnel(kind FunnelKind) (FunnelView, bool) {
	for _, f := range v.Funnels {
		if f.Kind == kind {
			return f, true
		}
	}
	return FunnelView{}, false
}

// Chart returns the chart mounted in slot.
func (v View) Chart(slot ChartSlot) (ChartView, bool) {
	for _, c := range v.Charts {
		if c.Slot == slot {
			return c, true
		}
	}
	return ChartView{}, false
}

// HeaderView holds the summary header fields.
type HeaderView struct {
	Stats        []HeaderStat `json:"stats"`
	TotalCapital string       `json:"total_capital"`
	CenterValue  string       `json:"center_value"`
}

// HeaderStat is one summary stat card.
type HeaderStat struct {
	Key     string `json:"key"`
	MountID string `json:"mount_id"`
	Label   string `json:"label"`
	Display string `json:"display"`
}

// FunnelView is a rendered funnel container.
type FunnelView struct {
	Kind        FunnelKind  `json:"kind"`
	ContainerID string      `json:"container_id"`
	Stages      []StageView `json:"stages"`
}

// ChartView is the chart mounted in a slot.
type ChartView struct {
	Slot       ChartSlot `json:"slot"`
	InstanceID string    `json:"instance_id"`
	Generation int       `json:"generation"`
	Title      string    `json:"title"`
	HTML       string    `json:"html"`
}

func chartView(instance ChartInstance) ChartView {
	return ChartView{
		Slot:       instance.Slot,
		InstanceID: instance.ID,
		Generation: instance.Generation,
		Title:      instance.Spec.Title,
		HTML:       instance.HTML,
	}
}

var headerStatOrder = []string{
	StatTotalGamesAnalyzed,
	StatCompaniesInPipeline,
	StatActiveInvestments,
	StatTotalCapitalDeployed,
	StatTotalCapitalCommitted,
	StatAverageRevenueGrowth,
	StatAverageEBITDAGrowth,
	StatPipelineConversionRate,
}

var headerStatLabels = map[string]string{
	StatTotalGamesAnalyzed:     "Games Analyzed",
	StatCompaniesInPipeline:    "Active Pipeline",
	StatActiveInvestments:      "Active Investments",
	StatTotalCapitalDeployed:   "Capital Deployed",
	StatTotalCapitalCommitted:  "Capital Committed",
	StatAverageRevenueGrowth:   "Avg Revenue Growth",
	StatAverageEBITDAGrowth:    "Avg EBITDA Growth",
	StatPipelineConversionRate: "Conversion Rate",
}

// BuildHeader formats summary stats. Known stats come first in a fixed order,
// any others follow alphabetically.
func BuildHeader(stats SummaryStats) HeaderView {
	keys := make([]string, 0, len(stats))
	known := make(map[string]struct{}, len(headerStatOrder))
	for _, key := range headerStatOrder {
		known[key] = struct{}{}
		if _, ok := stats[key]; ok {
			keys = append(keys, key)
		}
	}
	var extra []string
	for key := range stats {
		if _, ok := known[key]; !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	keys = append(keys, extra...)

	header := HeaderView{Stats: make([]HeaderStat, 0, len(keys))}
	for _, key := range keys {
		header.Stats = append(header.Stats, HeaderStat{
			Key:     key,
			MountID: strcase.ToCamel(key),
			Label:   statLabel(key),
			Display: formatStat(key, stats[key]),
		})
	}
	total := FormatCurrency(stats[StatTotalCapitalDeployed])
	header.TotalCapital = total
	header.CenterValue = total
	return header
}

func statLabel(key string) string {
	if label, ok := headerStatLabels[key]; ok {
		return label
	}
	return strcase.ToCase(key, strcase.TitleCase, ' ')
}

func formatStat(key string, value float64) string {
	switch {
	case strings.Contains(key, "capital"):
		return FormatCurrency(value)
	case strings.Contains(key, "growth"), strings.Contains(key, "rate"):
		return FormatPercent(value)
	default:
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
}

func funnelContainerID(kind FunnelKind) string {
	return strcase.ToCamel(string(kind) + "_funnel")
}
