package types

// TradeRecord is a single trade from the Data API /trades feed.
// Pages are ordered newest-first and contain up to 500 records.
type TradeRecord struct {
	Timestamp   int64      `json:"timestamp"` // unix seconds
	ProxyWallet string     `json:"proxyWallet"`
	Side        string     `json:"side"` // "BUY" or "SELL"
	Size        LooseFloat `json:"size"`
	Price       LooseFloat `json:"price"`
	ConditionID string     `json:"conditionId"`
	Title       string     `json:"title"`
	Name        string     `json:"name"`
	Pseudonym   string     `json:"pseudonym"`
}

// ActivityRecord is a single event from the Data API /activity endpoint.
type ActivityRecord struct {
	ProxyWallet string     `json:"proxyWallet"`
	Timestamp   int64      `json:"timestamp"`
	Type        string     `json:"type"` // "TRADE", "SPLIT", "MERGE", ...
	Side        string     `json:"side"`
	Size        LooseFloat `json:"size"`
	USDCSize    LooseFloat `json:"usdcSize"`
	Price       LooseFloat `json:"price"`
	Title       string     `json:"title"`
}
