package dashboard

import (
	"context"
	"fmt"
	"strings"
)

// Metric selects the basis used to scale and label funnel stages.
type Metric string

const (
	// MetricCount scales stages by the number of companies/initiatives.
	MetricCount Metric = "count"
	// MetricValue scales stages by their monetary value in millions.
	MetricValue Metric = "value_mm"
)

// DefaultMetric is the selection active on first load.
const DefaultMetric = MetricCount

// ParseMetric converts a selector value into a Metric.
func ParseMetric(value string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "count":
		return MetricCount, nil
	case "value", "value_mm", "valuemm":
		return MetricValue, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, value)
	}
}

// FunnelKind identifies one of the two pipeline funnels.
type FunnelKind string

const (
	FunnelInward  FunnelKind = "inward"
	FunnelOutward FunnelKind = "outward"
)

// FunnelKinds lists funnels in display order.
var FunnelKinds = []FunnelKind{FunnelInward, FunnelOutward}

// ParseFunnelKind converts a funnel name into a FunnelKind. Unknown names
// wrap ErrUnknownStage.
func ParseFunnelKind(value string) (FunnelKind, error) {
	for _, kind := range FunnelKinds {
		if string(kind) == value {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: unknown funnel %q", ErrUnknownStage, value)
}

// UnitNoun is the noun used when a stage count is shown as a secondary label.
func (k FunnelKind) UnitNoun() string {
	if k == FunnelOutward {
		return "initiatives"
	}
	return "companies"
}

// Caption describes the kind of stage in tooltips.
func (k FunnelKind) Caption() string {
	if k == FunnelOutward {
		return "Value Creation Stage"
	}
	return "Pipeline Stage"
}

// FunnelStage is one step of a funnel.
type FunnelStage struct {
	Name    string  `json:"stage" yaml:"stage"`
	Count   int     `json:"count" yaml:"count"`
	ValueMM float64 `json:"value_mm" yaml:"value_mm"`
	Order   int     `json:"stage_order" yaml:"stage_order"`
}

// Value returns the stage magnitude under the given metric.
func (s FunnelStage) Value(metric Metric) float64 {
	if metric == MetricCount {
		return float64(s.Count)
	}
	return s.ValueMM
}

// SectorSlice is a sector's share of the pipeline.
type SectorSlice struct {
	Name    string  `json:"name" yaml:"name"`
	Count   int     `json:"count" yaml:"count"`
	ValueMM float64 `json:"value_mm" yaml:"value_mm"`
}

// TimelinePoint is a monthly capital snapshot. Period uses the YYYY-MM layout.
type TimelinePoint struct {
	Period    string  `json:"period" yaml:"period"`
	Deployed  float64 `json:"deployed" yaml:"deployed"`
	Committed float64 `json:"committed" yaml:"committed"`
	Available float64 `json:"available" yaml:"available"`
}

// PerformanceRecord tracks growth metrics for a closed investment.
type PerformanceRecord struct {
	ID                int     `json:"investment_id" yaml:"investment_id"`
	CompanyName       string  `json:"company_name" yaml:"company_name"`
	InitialInvestment float64 `json:"initial_investment" yaml:"initial_investment"`
	RevenueGrowth     float64 `json:"revenue_growth" yaml:"revenue_growth"`
	EBITDAGrowth      float64 `json:"ebitda_growth" yaml:"ebitda_growth"`
	MultipleExpansion float64 `json:"multiple_expansion" yaml:"multiple_expansion"`
}

// SummaryStats holds precomputed aggregate metrics keyed by name.
type SummaryStats map[string]float64

// Summary stat keys rendered in the header.
const (
	StatTotalGamesAnalyzed     = "total_games_analyzed"
	StatCompaniesInPipeline    = "companies_in_pipeline"
	StatActiveInvestments      = "active_investments"
	StatTotalCapitalDeployed   = "total_capital_deployed"
	StatTotalCapitalCommitted  = "total_capital_committed"
	StatAverageRevenueGrowth   = "average_revenue_growth"
	StatAverageEBITDAGrowth    = "average_ebitda_growth"
	StatPipelineConversionRate = "pipeline_conversion_rate"
)

// Dataset is the full in-memory dashboard dataset.
type Dataset struct {
	InwardFunnel          []FunnelStage       `json:"inward_funnel" yaml:"inward_funnel"`
	OutwardFunnel         []FunnelStage       `json:"outward_funnel" yaml:"outward_funnel"`
	SummaryStats          SummaryStats        `json:"summary_stats" yaml:"summary_stats"`
	Sectors               []SectorSlice       `json:"sectors" yaml:"sectors"`
	CapitalTimeline       []TimelinePoint     `json:"capital_timeline" yaml:"capital_timeline"`
	InvestmentPerformance []PerformanceRecord `json:"investment_performance" yaml:"investment_performance"`
}

// Funnel returns the stages for the requested funnel.
func (d Dataset) Funnel(kind FunnelKind) []FunnelStage {
	switch kind {
	case FunnelInward:
		return d.InwardFunnel
	case FunnelOutward:
		return d.OutwardFunnel
	default:
		return nil
	}
}

// DatasetPatch carries a partial dataset. A non-nil section replaces the
// stored section wholesale; nil sections are left untouched.
type DatasetPatch struct {
	InwardFunnel          *[]FunnelStage       `json:"inward_funnel,omitempty"`
	OutwardFunnel         *[]FunnelStage       `json:"outward_funnel,omitempty"`
	SummaryStats          *SummaryStats        `json:"summary_stats,omitempty"`
	Sectors               *[]SectorSlice       `json:"sectors,omitempty"`
	CapitalTimeline       *[]TimelinePoint     `json:"capital_timeline,omitempty"`
	InvestmentPerformance *[]PerformanceRecord `json:"investment_performance,omitempty"`
}

// IsEmpty reports whether the patch carries no sections.
func (p DatasetPatch) IsEmpty() bool {
	return p.InwardFunnel == nil &&
		p.OutwardFunnel == nil &&
		p.SummaryStats == nil &&
		p.Sectors == nil &&
		p.CapitalTimeline == nil &&
		p.InvestmentPerformance == nil
}

// Sections lists the section keys present in the patch.
func (p DatasetPatch) Sections() []string {
	var out []string
	if p.InwardFunnel != nil {
		out = append(out, "inward_funnel")
	}
	if p.OutwardFunnel != nil {
		out = append(out, "outward_funnel")
	}
	if p.SummaryStats != nil {
		out = append(out, "summary_stats")
	}
	if p.Sectors != nil {
		out = append(out, "sectors")
	}
	if p.CapitalTimeline != nil {
		out = append(out, "capital_timeline")
	}
	if p.InvestmentPerformance != nil {
		out = append(out, "investment_performance")
	}
	return out
}

// PatchFrom builds a patch that replaces every section with the dataset's.
func PatchFrom(data Dataset) DatasetPatch {
	cloned := cloneDataset(data)
	return DatasetPatch{
		InwardFunnel:          &cloned.InwardFunnel,
		OutwardFunnel:         &cloned.OutwardFunnel,
		SummaryStats:          &cloned.SummaryStats,
		Sectors:               &cloned.Sectors,
		CapitalTimeline:       &cloned.CapitalTimeline,
		InvestmentPerformance: &cloned.InvestmentPerformance,
	}
}

// RedrawHook notifies transports (WebSocket/SSE) that views were redrawn.
type RedrawHook interface {
	ViewRedrawn(ctx context.Context, event RedrawEvent) error
}

// RedrawEvent describes which views changed and why.
type RedrawEvent struct {
	Reason string   `json:"reason"`
	Views  []string `json:"views"`
	Metric Metric   `json:"metric"`
}

type noopRedrawHook struct{}

func (noopRedrawHook) ViewRedrawn(context.Context, RedrawEvent) error { return nil }
