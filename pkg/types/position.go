package types

// PositionRecord is a single position from the Data API /positions endpoint.
// The P&L and value fields are LooseFloat because the API serializes them
// inconsistently (number, numeric string, null, or absent).
type PositionRecord struct {
	ProxyWallet  string     `json:"proxyWallet"`
	ConditionID  string     `json:"conditionId"`
	CashPnl      LooseFloat `json:"cashPnl"`
	PercentPnl   LooseFloat `json:"percentPnl"`
	InitialValue LooseFloat `json:"initialValue"`
	CurrentValue LooseFloat `json:"currentValue"`
	Size         LooseFloat `json:"size"`
	AvgPrice     LooseFloat `json:"avgPrice"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Outcome      string     `json:"outcome"`
}
