package types

import "github.com/ethereum/go-ethereum/common"

// AnonymousName is the display name assigned to actors whose trades carry
// neither a profile name nor a pseudonym.
const AnonymousName = "Anonymous"

// ActorActivity tracks one actor discovered during a trade-feed scan.
// DisplayName is fixed at first sighting and never overwritten, even if
// later trades carry a different name for the same wallet.
type ActorActivity struct {
	ActorID     string `json:"actorId"`
	DisplayName string `json:"displayName"`
	TradeCount  int    `json:"tradeCount"`
}

// ProfitSummary is the fold of an actor's full position list.
// Positions with exactly zero cash P&L count toward neither the profitable
// nor the losing bucket, so ProfitablePositions + LosingPositions is at most
// TotalPositions.
type ProfitSummary struct {
	ActorID             string  `json:"actorId"`
	TotalCashPnl        float64 `json:"totalCashPnl"`
	TotalPercentPnl     float64 `json:"totalPercentPnl"`
	TotalPositions      int     `json:"totalPositions"`
	ProfitablePositions int     `json:"profitablePositions"`
	LosingPositions     int     `json:"losingPositions"`
	BiggestWin          float64 `json:"biggestWin"`  // always >= 0
	BiggestLoss         float64 `json:"biggestLoss"` // always <= 0
	TotalInitialValue   float64 `json:"totalInitialValue"`
	TotalCurrentValue   float64 `json:"totalCurrentValue"`

	// EnrichmentFailed marks actors whose positions could not be fetched
	// after retries. Their profit reads as zero, not as missing.
	EnrichmentFailed bool `json:"enrichmentFailed"`
}

// NormalizeActorID canonicalizes a wallet identifier so that case-variant
// representations of the same address dedupe to one actor. Identifiers that
// are not hex addresses pass through verbatim.
func NormalizeActorID(id string) string {
	if common.IsHexAddress(id) {
		return common.HexToAddress(id).Hex()
	}
	return id
}

// DisplayNameFor picks a display name from a trade's identity fields using
// the name -> pseudonym -> "Anonymous" fallback chain.
func DisplayNameFor(name, pseudonym string) string {
	if name != "" {
		return name
	}
	if pseudonym != "" {
		return pseudonym
	}
	return AnonymousName
}
