package dashboard

import (
	"fmt"
	"strconv"
)

const (
	minStageWidth = 10.0
	maxStageWidth = 100.0
)

// StageView is the renderable form of a funnel stage.
type StageView struct {
	Name           string  `json:"name"`
	Order          int     `json:"order"`
	PrimaryLabel   string  `json:"primary_label"`
	SecondaryLabel string  `json:"secondary_label"`
	WidthPercent   float64 `json:"width_percent"`
}

// RenderFunnel scales stages against the largest value under metric. Every
// stage keeps at least minStageWidth so it stays clickable. noun labels the
// count when it is shown as the secondary metric.
func RenderFunnel(stages []FunnelStage, metric Metric, noun string) ([]StageView, error) {
	if len(stages) == 0 {
		return nil, &EmptyInputError{}
	}
	maxValue := 0.0
	for i, stage := range stages {
		value := stage.Value(metric)
		if !isFinite(value) || value < 0 {
			return nil, malformed("funnel", i, string(metric), fmt.Sprintf("invalid value %v", value))
		}
		if value > maxValue {
			maxValue = value
		}
	}

	views := make([]StageView, len(stages))
	for i, stage := range stages {
		views[i] = StageView{
			Name:           stage.Name,
			Order:          stage.Order,
			PrimaryLabel:   primaryLabel(stage, metric),
			SecondaryLabel: secondaryLabel(stage, metric, noun),
			WidthPercent:   stageWidth(stage.Value(metric), maxValue),
		}
	}
	return views, nil
}

func stageWidth(value, maxValue float64) float64 {
	// all-zero funnels tie for the maximum
	if maxValue == 0 {
		return maxStageWidth
	}
	width := value / maxValue * 100
	if width < minStageWidth {
		return minStageWidth
	}
	return width
}

func primaryLabel(stage FunnelStage, metric Metric) string {
	if metric == MetricCount {
		return strconv.Itoa(stage.Count)
	}
	return FormatCurrency(stage.ValueMM)
}

// secondaryLabel shows the metric that is not selected.
func secondaryLabel(stage FunnelStage, metric Metric, noun string) string {
	if metric == MetricCount {
		return FormatCurrency(stage.ValueMM)
	}
	return fmt.Sprintf("%d %s", stage.Count, noun)
}
