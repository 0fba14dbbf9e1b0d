package dashboard

// StatusCategory buckets investments by EBITDA growth.
type StatusCategory string

const (
	StatusHighGrowth StatusCategory = "high_growth"
	StatusGrowing    StatusCategory = "growing"
	StatusStable     StatusCategory = "stable"
)

const (
	highGrowthThreshold = 20
	growingThreshold    = 15
)

// Classification is the derived status of a performance record.
type Classification struct {
	Category StatusCategory `json:"category"`
	Label    string         `json:"label"`
	// Badge is the status badge modifier used by the table markup.
	Badge string `json:"badge"`
}

// Classify maps a record to its status. Thresholds are strict, so 20 is
// Growing and 15 is Stable.
func Classify(record PerformanceRecord) Classification {
	switch growth := record.EBITDAGrowth; {
	case growth > highGrowthThreshold:
		return Classification{Category: StatusHighGrowth, Label: "High Growth", Badge: "active"}
	case growth > growingThreshold:
		return Classification{Category: StatusGrowing, Label: "Growing", Badge: "growing"}
	default:
		return Classification{Category: StatusStable, Label: "Stable", Badge: "mature"}
	}
}
