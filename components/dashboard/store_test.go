package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeDatasetReplacesSectionsWholesale(t *testing.T) {
	base := DefaultDataset()
	stats := SummaryStats{StatActiveInvestments: 31}
	merged := MergeDataset(base, DatasetPatch{SummaryStats: &stats})

	assert.Equal(t, SummaryStats{StatActiveInvestments: 31}, merged.SummaryStats)
	assert.Equal(t, base.InwardFunnel, merged.InwardFunnel)
	assert.Equal(t, base.Sectors, merged.Sectors)
}

func TestMergeDatasetEmptyPatchIsIdentity(t *testing.T) {
	base := DefaultDataset()
	assert.Equal(t, base, MergeDataset(base, DatasetPatch{}))
}

func TestMergeDatasetDoesNotAliasInputs(t *testing.T) {
	base := DefaultDataset()
	stages := []FunnelStage{{Name: "Only", Count: 1, Order: 1}}
	merged := MergeDataset(base, DatasetPatch{InwardFunnel: &stages})

	stages[0].Count = 99
	merged.OutwardFunnel[0].Count = 99
	assert.Equal(t, 1, merged.InwardFunnel[0].Count)
	assert.Equal(t, 30, base.OutwardFunnel[0].Count)
}

func TestDataStoreSnapshotIsCopy(t *testing.T) {
	store := NewDataStore(DefaultDataset())
	snap := store.Snapshot()
	snap.SummaryStats[StatActiveInvestments] = 0
	snap.InvestmentPerformance[0].CompanyName = "changed"

	again := store.Snapshot()
	assert.Equal(t, 30.0, again.SummaryStats[StatActiveInvestments])
	assert.Equal(t, "Company_1", again.InvestmentPerformance[0].CompanyName)
}

func TestPatchFromCoversEverySection(t *testing.T) {
	data := DefaultDataset()
	patch := PatchFrom(data)
	assert.Len(t, patch.Sections(), 6)
	assert.False(t, patch.IsEmpty())
	assert.Equal(t, data, MergeDataset(Dataset{}, patch))
	assert.True(t, DatasetPatch{}.IsEmpty())
}
