package report

import "time"

// Entry is one ranked actor in the final report.
type Entry struct {
	Rank           int     `json:"rank"`
	ActorID        string  `json:"actorId"`
	DisplayName    string  `json:"displayName"`
	Profit         float64 `json:"profit"`
	TradeCount     int     `json:"tradeCount"`
	ProfitPerTrade float64 `json:"profitPerTrade"`

	TotalPositions      int     `json:"totalPositions"`
	ProfitablePositions int     `json:"profitablePositions"`
	LosingPositions     int     `json:"losingPositions"`
	BiggestWin          float64 `json:"biggestWin"`
	BiggestLoss         float64 `json:"biggestLoss"`

	EnrichmentFailed bool `json:"enrichmentFailed,omitempty"`
}

// Stats aggregates the qualifying entries.
type Stats struct {
	Qualifying    int     `json:"qualifying"`
	TotalProfit   float64 `json:"totalProfit"`
	AverageProfit float64 `json:"averageProfit"`
	MaxProfit     float64 `json:"maxProfit"`
	MinProfit     float64 `json:"minProfit"`
}

// Distribution buckets every scanned actor by trade count, qualifying
// or not.
type Distribution struct {
	Heavy    int `json:"heavy"`    // 10 or more trades
	Moderate int `json:"moderate"` // 3 to 9 trades
	Light    int `json:"light"`    // fewer than 3 trades

	AvgTrades float64 `json:"avgTrades"`
	MaxTrades int     `json:"maxTrades"`
}

// Report is the final output of one scan-and-enrich run.
type Report struct {
	RunID       string    `json:"runId"`
	GeneratedAt time.Time `json:"generatedAt"`
	WindowStart int64     `json:"windowStart"`
	Threshold   float64   `json:"threshold"`
	StopReason  string    `json:"stopReason"`

	ActorsScanned     int `json:"actorsScanned"`
	ActorsEnriched    int `json:"actorsEnriched"`
	FailedEnrichments int `json:"failedEnrichments"`
	RecordsScanned    int `json:"recordsScanned"`

	Stats        Stats        `json:"stats"`
	Entries      []Entry      `json:"entries"`
	Distribution Distribution `json:"distribution"`
}
