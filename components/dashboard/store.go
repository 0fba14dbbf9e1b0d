package dashboard

import (
	"maps"
	"slices"
	"sync"
)

// DataStore owns the dashboard dataset. Readers receive deep copies; writers
// replace whole sections.
type DataStore struct {
	mu   sync.RWMutex
	data Dataset
}

// NewDataStore builds a store seeded with data.
func NewDataStore(data Dataset) *DataStore {
	return &DataStore{data: cloneDataset(data)}
}

// Snapshot returns a deep copy of the current dataset.
func (s *DataStore) Snapshot() Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDataset(s.data)
}

// Load replaces the whole dataset.
func (s *DataStore) Load(data Dataset) {
	cloned := cloneDataset(data)
	s.mu.Lock()
	s.data = cloned
	s.mu.Unlock()
}

// MergeDataset returns a copy of base with every section present in patch
// replaced wholesale. Nested values such as summary stats are not merged.
func MergeDataset(base Dataset, patch DatasetPatch) Dataset {
	out := cloneDataset(base)
	if patch.InwardFunnel != nil {
		out.InwardFunnel = slices.Clone(*patch.InwardFunnel)
	}
	if patch.OutwardFunnel != nil {
		out.OutwardFunnel = slices.Clone(*patch.OutwardFunnel)
	}
	if patch.SummaryStats != nil {
		out.SummaryStats = maps.Clone(*patch.SummaryStats)
	}
	if patch.Sectors != nil {
		out.Sectors = slices.Clone(*patch.Sectors)
	}
	if patch.CapitalTimeline != nil {
		out.CapitalTimeline = slices.Clone(*patch.CapitalTimeline)
	}
	if patch.InvestmentPerformance != nil {
		out.InvestmentPerformance = slices.Clone(*patch.InvestmentPerformance)
	}
	return out
}

func cloneDataset(data Dataset) Dataset {
	return Dataset{
		InwardFunnel:          slices.Clone(data.InwardFunnel),
		OutwardFunnel:         slices.Clone(data.OutwardFunnel),
		SummaryStats:          maps.Clone(data.SummaryStats),
		Sectors:               slices.Clone(data.Sectors),
		CapitalTimeline:       slices.Clone(data.CapitalTimeline),
		InvestmentPerformance: slices.Clone(data.InvestmentPerformance),
	}
}
