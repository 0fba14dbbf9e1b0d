package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEChartsRendererRendersEveryKind(t *testing.T) {
	t.Parallel()
	renderer := NewEChartsRenderer(WithChartCache(nil))
	specs, err := NewChartAdapter(nil).Specs(DefaultDataset())
	require.NoError(t, err)

	for _, slot := range ChartSlots {
		html, err := renderer.RenderChart(specs[slot])
		require.NoError(t, err, "slot %s", slot)
		assert.Contains(t, html, "echarts")
		assert.Contains(t, html, string(slot))
	}
}

func TestEChartsRendererUsesCache(t *testing.T) {
	t.Parallel()
	cache := NewChartCache(time.Minute)
	renderer := NewEChartsRenderer(WithChartCache(cache))
	spec := NewChartAdapter(nil).Sectors(DefaultDataset().Sectors)

	first, err := renderer.RenderChart(spec)
	require.NoError(t, err)
	second, err := renderer.RenderChart(spec)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Len())
}

func TestEChartsRendererRejectsUnknownKind(t *testing.T) {
	t.Parallel()
	_, err := NewEChartsRenderer().RenderChart(ChartSpec{Kind: "radar"})
	assert.Error(t, err)
}

func TestChartAssetsHost(t *testing.T) {
	t.Setenv(ChartAssetsEnv, "")
	assert.Equal(t, DefaultChartAssetsHost, chartAssetsHost())

	t.Setenv(ChartAssetsEnv, "https://cdn.example.com/echarts")
	assert.Equal(t, "https://cdn.example.com/echarts/", chartAssetsHost())

	html, err := NewEChartsRenderer(WithChartCache(nil)).RenderChart(NewChartAdapter(nil).Sectors(DefaultDataset().Sectors))
	require.NoError(t, err)
	assert.Contains(t, html, "https://cdn.example.com/echarts/")
}
