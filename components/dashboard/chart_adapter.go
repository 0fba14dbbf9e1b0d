package dashboard

import (
	"fmt"
	"time"
)

// ChartSlot names one of the dashboard's chart mount points.
type ChartSlot string

const (
	SlotCapitalTimeline ChartSlot = "capitalTimelineChart"
	SlotPerformance     ChartSlot = "performanceChart"
	SlotSectors         ChartSlot = "sectorChart"
)

// ChartSlots lists chart slots in display order.
var ChartSlots = []ChartSlot{SlotCapitalTimeline, SlotPerformance, SlotSectors}

// ChartKind selects the chart family used for a spec.
type ChartKind string

const (
	ChartLine    ChartKind = "line"
	ChartScatter ChartKind = "scatter"
	ChartDonut   ChartKind = "donut"
)

// ChartSpec is a library-neutral description of a chart.
type ChartSpec struct {
	Slot      ChartSlot     `json:"slot"`
	Kind      ChartKind     `json:"kind"`
	Title     string        `json:"title"`
	XAxisName string        `json:"x_axis_name,omitempty"`
	YAxisName string        `json:"y_axis_name,omitempty"`
	Labels    []string      `json:"labels,omitempty"`
	Series    []ChartSeries `json:"series"`
}

// ChartSeries represents a set of values plotted for a given legend entry.
type ChartSeries struct {
	Name   string       `json:"name"`
	Color  string       `json:"color,omitempty"`
	Points []ChartPoint `json:"points"`
}

// ChartPoint represents an individual value. Scatter points carry X/Y in Pair
// and their bubble radius in Size.
type ChartPoint struct {
	Label  string    `json:"label,omitempty"`
	Value  float64   `json:"value"`
	Pair   []float64 `json:"pair,omitempty"`
	Size   float64   `json:"size,omitempty"`
	Color  string    `json:"color,omitempty"`
	Detail string    `json:"detail,omitempty"`
}

// ChartAdapter converts dataset slices into chart specs.
type ChartAdapter struct {
	palette []string
}

// NewChartAdapter builds an adapter; an empty palette falls back to DefaultPalette.
func NewChartAdapter(palette []string) *ChartAdapter {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return &ChartAdapter{palette: append([]string(nil), palette...)}
}

// Color returns the palette entry for index i, cycling past the end.
func (a *ChartAdapter) Color(i int) string {
	return a.palette[i%len(a.palette)]
}

// Specs builds a ChartSpec for every slot.
func (a *ChartAdapter) Specs(data Dataset) (map[ChartSlot]ChartSpec, error) {
	timeline, err := a.Timeline(data.CapitalTimeline)
	if err != nil {
		return nil, err
	}
	return map[ChartSlot]ChartSpec{
		SlotCapitalTimeline: timeline,
		SlotPerformance:     a.Performance(data.InvestmentPerformance),
		SlotSectors:         a.Sectors(data.Sectors),
	}, nil
}

// Timeline builds the three-series capital line chart.
func (a *ChartAdapter) Timeline(points []TimelinePoint) (ChartSpec, error) {
	labels := make([]string, len(points))
	deployed := make([]ChartPoint, len(points))
	committed := make([]ChartPoint, len(points))
	available := make([]ChartPoint, len(points))
	for i, point := range points {
		period, err := time.Parse(timelinePeriodLayout, point.Period)
		if err != nil {
			return ChartSpec{}, &MalformedRecordError{Section: "capital_timeline", Index: i, Field: "period", Reason: "expected YYYY-MM", Err: err}
		}
		labels[i] = period.Format("Jan 2006")
		deployed[i] = ChartPoint{Label: labels[i], Value: point.Deployed}
		committed[i] = ChartPoint{Label: labels[i], Value: point.Committed}
		available[i] = ChartPoint{Label: labels[i], Value: point.Available}
	}
	return ChartSpec{
		Slot:      SlotCapitalTimeline,
		Kind:      ChartLine,
		Title:     "Capital Timeline",
		YAxisName: "Capital ($M)",
		Labels:    labels,
		Series: []ChartSeries{
			{Name: "Deployed Capital", Color: a.Color(0), Points: deployed},
			{Name: "Committed Capital", Color: a.Color(1), Points: committed},
			{Name: "Available Capital", Color: a.Color(2), Points: available},
		},
	}, nil
}

// Performance builds the revenue vs EBITDA growth bubble chart.
func (a *ChartAdapter) Performance(records []PerformanceRecord) ChartSpec {
	points := make([]ChartPoint, len(records))
	for i, record := range records {
		points[i] = ChartPoint{
			Label: record.CompanyName,
			Pair:  []float64{record.RevenueGrowth, record.EBITDAGrowth},
			Size:  record.InitialInvestment / 5,
			Detail: fmt.Sprintf("%s: Revenue %s, EBITDA %s",
				record.CompanyName, FormatPercent(record.RevenueGrowth), FormatPercent(record.EBITDAGrowth)),
		}
	}
	return ChartSpec{
		Slot:      SlotPerformance,
		Kind:      ChartScatter,
		Title:     "Investment Performance",
		XAxisName: "Revenue Growth (%)",
		YAxisName: "EBITDA Growth (%)",
		Series: []ChartSeries{
			{Name: "Investment Performance", Color: a.Color(0), Points: points},
		},
	}
}

// Sectors builds the sector donut keyed by sector name.
func (a *ChartAdapter) Sectors(sectors []SectorSlice) ChartSpec {
	points := make([]ChartPoint, len(sectors))
	labels := make([]string, len(sectors))
	for i, sector := range sectors {
		labels[i] = sector.Name
		points[i] = ChartPoint{
			Label:  sector.Name,
			Value:  sector.ValueMM,
			Color:  a.Color(i),
			Detail: fmt.Sprintf("%s: %s (%d companies)", sector.Name, FormatMillions(sector.ValueMM), sector.Count),
		}
	}
	return ChartSpec{
		Slot:   SlotSectors,
		Kind:   ChartDonut,
		Title:  "Sector Allocation",
		Labels: labels,
		Series: []ChartSeries{{Name: "Sectors", Points: points}},
	}
}
