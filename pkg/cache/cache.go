package cache

import (
	"time"

	"github.com/polyscan/polyscan/pkg/types"
)

// Cache holds per-actor profit summaries between scan cycles so that serve
// mode does not re-fetch positions for actors enriched recently.
type Cache interface {
	// Get retrieves the cached summary for an actor.
	// Returns (summary, true) if found, (nil, false) if not found.
	Get(actorID string) (*types.ProfitSummary, bool)

	// Set stores an actor's summary with a TTL.
	Set(actorID string, summary *types.ProfitSummary, ttl time.Duration) bool

	// Delete removes an actor's summary.
	Delete(actorID string)

	// Clear removes all cached summaries.
	Clear()

	// Close closes the cache and releases resources.
	Close()
}
