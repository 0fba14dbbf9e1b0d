package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStageTooltip(t *testing.T) {
	stage := FunnelStage{Name: "Due Diligence", Count: 125, ValueMM: 5560, Order: 4}
	tip := NewStageTooltip(FunnelInward, stage, 100, 200)

	assert.Equal(t, StageKey{Funnel: FunnelInward, Order: 4}, tip.Key)
	assert.Equal(t, "Due Diligence", tip.Title)
	assert.Equal(t, []string{"Count: 125", "Value: $5.6B"}, tip.Lines)
	assert.Equal(t, "Pipeline Stage", tip.Caption)
	assert.Equal(t, 110, tip.X)
	assert.Equal(t, 190, tip.Y)

	outward := NewStageTooltip(FunnelOutward, stage, 0, 0)
	assert.Equal(t, "Value Creation Stage", outward.Caption)
}

func TestTooltipManagerKeepsOnePerStage(t *testing.T) {
	m := NewTooltipManager()
	stage := FunnelStage{Name: "LOI Stage", Count: 47, ValueMM: 2476.62, Order: 5}
	m.Show(NewStageTooltip(FunnelInward, stage, 1, 1))
	m.Show(NewStageTooltip(FunnelInward, stage, 50, 60))
	m.Show(NewStageTooltip(FunnelOutward, FunnelStage{Name: "Value Creation", Order: 6}, 0, 0))

	active := m.Active()
	if assert.Len(t, active, 2) {
		assert.Equal(t, FunnelInward, active[0].Key.Funnel)
		assert.Equal(t, 60, active[0].X)
	}

	assert.True(t, m.Hide(StageKey{Funnel: FunnelInward, Order: 5}))
	assert.False(t, m.Hide(StageKey{Funnel: FunnelInward, Order: 5}))
	assert.False(t, m.Hide(StageKey{Funnel: FunnelOutward, Order: 42}))
	assert.Len(t, m.Active(), 1)

	m.Clear()
	assert.Empty(t, m.Active())
}

func TestStageKeyString(t *testing.T) {
	assert.Equal(t, "outward:3", StageKey{Funnel: FunnelOutward, Order: 3}.String())
}
