package dashboard

// DefaultPalette is the chart palette, reused cyclically when a chart has more
// categories than colors.
var DefaultPalette = []string{
	"#1FB8CD", "#FFC185", "#B4413C", "#ECEBD5", "#5D878F",
	"#DB4545", "#D2BA4C", "#964325", "#944454", "#13343B",
}

// DefaultDataset returns the bundled demo dataset.
func DefaultDataset() Dataset {
	return Dataset{
		InwardFunnel: []FunnelStage{
			{Name: "Games Analyzed", Count: 50, ValueMM: 1232.31, Order: 1},
			{Name: "Companies Identified", Count: 200, ValueMM: 8221.35, Order: 2},
			{Name: "Initial Screening", Count: 182, ValueMM: 7452.85, Order: 3},
			{Name: "Due Diligence", Count: 125, ValueMM: 5560.00, Order: 4},
			{Name: "LOI Stage", Count: 47, ValueMM: 2476.62, Order: 5},
			{Name: "Negotiations", Count: 35, ValueMM: 1891.23, Order: 6},
			{Name: "Investments Closed", Count: 10, ValueMM: 1069.31, Order: 7},
		},
		OutwardFunnel: []FunnelStage{
			{Name: "Initial Investment", Count: 30, ValueMM: 1069.31, Order: 1},
			{Name: "Operational Improvements", Count: 120, ValueMM: 589.45, Order: 2},
			{Name: "Revenue Growth", Count: 108, ValueMM: 1190.33, Order: 3},
			{Name: "EBITDA Growth", Count: 110, ValueMM: 1241.01, Order: 4},
			{Name: "Multiple Expansion", Count: 71, ValueMM: 1198.11, Order: 5},
			{Name: "Value Creation", Count: 45, ValueMM: 1587.46, Order: 6},
		},
		SummaryStats: SummaryStats{
			StatTotalGamesAnalyzed:     50,
			StatCompaniesInPipeline:    182,
			StatActiveInvestments:      30,
			StatTotalCapitalDeployed:   14153.79,
			StatTotalCapitalCommitted:  25586.49,
			StatAverageRevenueGrowth:   11.32,
			StatAverageEBITDAGrowth:    16.06,
			StatPipelineConversionRate: 15.0,
		},
		Sectors: []SectorSlice{
			{Name: "Healthcare Tech", Count: 12, ValueMM: 450.2},
			{Name: "FinTech", Count: 8, ValueMM: 320.5},
			{Name: "EdTech", Count: 6, ValueMM: 180.3},
			{Name: "PropTech", Count: 4, ValueMM: 290.1},
			{Name: "Other", Count: 170, ValueMM: 6980.25},
		},
		CapitalTimeline: []TimelinePoint{
			{Period: "2023-01", Deployed: 45.2, Committed: 120.5, Available: 75.3},
			{Period: "2023-02", Deployed: 67.8, Committed: 140.2, Available: 72.4},
			{Period: "2023-03", Deployed: 89.1, Committed: 165.8, Available: 76.7},
			{Period: "2023-04", Deployed: 112.3, Committed: 185.6, Available: 73.3},
			{Period: "2023-05", Deployed: 134.7, Committed: 210.4, Available: 75.7},
			{Period: "2023-06", Deployed: 156.9, Committed: 235.1, Available: 78.2},
		},
		InvestmentPerformance: []PerformanceRecord{
			{ID: 1, CompanyName: "Company_1", InitialInvestment: 45.2, RevenueGrowth: 12.5, EBITDAGrowth: 18.3, MultipleExpansion: 1.4},
			{ID: 2, CompanyName: "Company_2", InitialInvestment: 67.8, RevenueGrowth: 8.9, EBITDAGrowth: 14.2, MultipleExpansion: 1.2},
			{ID: 3, CompanyName: "Company_3", InitialInvestment: 89.4, RevenueGrowth: 15.6, EBITDAGrowth: 22.1, MultipleExpansion: 1.6},
			{ID: 4, CompanyName: "Company_4", InitialInvestment: 34.7, RevenueGrowth: 6.3, EBITDAGrowth: 11.8, MultipleExpansion: 1.1},
			{ID: 5, CompanyName: "Company_5", InitialInvestment: 78.9, RevenueGrowth: 19.2, EBITDAGrowth: 25.4, MultipleExpansion: 1.8},
		},
	}
}
