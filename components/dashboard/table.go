package dashboard

// TableRow is one rendered row of the performance table.
type TableRow struct {
	ID                int            `json:"id"`
	Company           string         `json:"company"`
	InitialInvestment string         `json:"initial_investment"`
	RevenueGrowth     string         `json:"revenue_growth"`
	EBITDAGrowth      string         `json:"ebitda_growth"`
	MultipleExpansion string         `json:"multiple_expansion"`
	Status            Classification `json:"status"`
}

// BuildTable produces one row per record, preserving input order.
func BuildTable(records []PerformanceRecord) []TableRow {
	rows := make([]TableRow, len(records))
	for i, record := range records {
		rows[i] = TableRow{
			ID:                record.ID,
			Company:           record.CompanyName,
			InitialInvestment: FormatMillions(record.InitialInvestment),
			RevenueGrowth:     FormatPercent(record.RevenueGrowth),
			EBITDAGrowth:      FormatPercent(record.EBITDAGrowth),
			MultipleExpansion: FormatMultiple(record.MultipleExpansion),
			Status:            Classify(record),
		}
	}
	return rows
}
