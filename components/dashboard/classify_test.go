package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyThresholds(t *testing.T) {
	cases := []struct {
		ebitda float64
		want   StatusCategory
		label  string
		badge  string
	}{
		{25.4, StatusHighGrowth, "High Growth", "active"},
		{20.01, StatusHighGrowth, "High Growth", "active"},
		{20, StatusGrowing, "Growing", "growing"},
		{18.3, StatusGrowing, "Growing", "growing"},
		{15, StatusStable, "Stable", "mature"},
		{-4, StatusStable, "Stable", "mature"},
	}
	for _, tc := range cases {
		got := Classify(PerformanceRecord{EBITDAGrowth: tc.ebitda})
		assert.Equal(t, tc.want, got.Category, "ebitda %v", tc.ebitda)
		assert.Equal(t, tc.label, got.Label)
		assert.Equal(t, tc.badge, got.Badge)
	}
}

func TestClassifyIgnoresRevenueGrowth(t *testing.T) {
	got := Classify(PerformanceRecord{RevenueGrowth: 90, EBITDAGrowth: 1})
	assert.Equal(t, StatusStable, got.Category)
}

func TestBuildTable(t *testing.T) {
	rows := BuildTable(DefaultDataset().InvestmentPerformance)
	if assert.Len(t, rows, 5) {
		assert.Equal(t, "Company_1", rows[0].Company)
		assert.Equal(t, "$45.2M", rows[0].InitialInvestment)
		assert.Equal(t, "12.5%", rows[0].RevenueGrowth)
		assert.Equal(t, "18.3%", rows[0].EBITDAGrowth)
		assert.Equal(t, "1.4x", rows[0].MultipleExpansion)
		assert.Equal(t, StatusGrowing, rows[0].Status.Category)
		assert.Equal(t, StatusHighGrowth, rows[2].Status.Category)
		assert.Equal(t, StatusStable, rows[3].Status.Category)
	}
	assert.Empty(t, BuildTable(nil))
}
