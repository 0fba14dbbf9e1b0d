package dashboard

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFunnelByCount(t *testing.T) {
	stages := DefaultDataset().InwardFunnel
	views, err := RenderFunnel(stages, MetricCount, "companies")
	require.NoError(t, err)
	require.Len(t, views, len(stages))

	for i, view := range views {
		assert.Equal(t, stages[i].Name, view.Name)
		assert.Equal(t, stages[i].Order, view.Order)
		assert.GreaterOrEqual(t, view.WidthPercent, minStageWidth)
		assert.LessOrEqual(t, view.WidthPercent, maxStageWidth)
	}
	// Companies Identified (200) is the widest stage.
	assert.Equal(t, 100.0, views[1].WidthPercent)
	assert.Equal(t, 25.0, views[0].WidthPercent)
	assert.Equal(t, "200", views[1].PrimaryLabel)
	assert.Equal(t, "$8.2B", views[1].SecondaryLabel)
	// 10/200 = 5% is clamped to the minimum width.
	assert.Equal(t, minStageWidth, views[6].WidthPercent)
}

func TestRenderFunnelByValue(t *testing.T) {
	stages := DefaultDataset().OutwardFunnel
	views, err := RenderFunnel(stages, MetricValue, "initiatives")
	require.NoError(t, err)

	assert.Equal(t, 100.0, views[5].WidthPercent)
	assert.Equal(t, "$1.6B", views[5].PrimaryLabel)
	assert.Equal(t, "45 initiatives", views[5].SecondaryLabel)
	assert.Equal(t, "$589.5M", views[1].PrimaryLabel)
}

func TestRenderFunnelIsIdempotent(t *testing.T) {
	stages := DefaultDataset().InwardFunnel
	first, err := RenderFunnel(stages, MetricValue, "companies")
	require.NoError(t, err)
	second, err := RenderFunnel(stages, MetricValue, "companies")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderFunnelAllZero(t *testing.T) {
	stages := []FunnelStage{
		{Name: "A", Order: 1},
		{Name: "B", Order: 2},
	}
	views, err := RenderFunnel(stages, MetricCount, "companies")
	require.NoError(t, err)
	for _, view := range views {
		assert.Equal(t, maxStageWidth, view.WidthPercent)
	}
}

func TestRenderFunnelErrors(t *testing.T) {
	_, err := RenderFunnel(nil, MetricCount, "companies")
	var empty *EmptyInputError
	require.True(t, errors.As(err, &empty))
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = RenderFunnel([]FunnelStage{{Name: "A", ValueMM: math.NaN(), Order: 1}}, MetricValue, "companies")
	assert.ErrorIs(t, err, ErrMalformedRecord)

	_, err = RenderFunnel([]FunnelStage{{Name: "A", Count: -1, Order: 1}}, MetricCount, "companies")
	var bad *MalformedRecordError
	require.True(t, errors.As(err, &bad))
	assert.Equal(t, 0, bad.Index)
}
