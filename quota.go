package client

import "sync"

// quotaGuard tracks server-reported usage limits so a submission that is
// certain to be rejected can fail locally without a network round trip.
// The local state is stale by design between server updates; the
// server's own rejection stays authoritative. Unknown kinds pass the
// pre-check (fail-open).
type quotaGuard struct {
	mu     sync.Mutex
	limits map[LimitKind]LimitUsage
}

func newQuotaGuard() *quotaGuard {
	return &quotaGuard{limits: make(map[LimitKind]LimitUsage)}
}

// checkBeforeSubmit rejects a document submission when a tracked limit
// is already known to be exhausted: characters against the document's
// length, document and team-document counts against an increment of 1.
func (g *quotaGuard) checkBeforeSubmit(characters int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if usage, ok := g.limits[LimitCharacters]; ok && usage.Max > 0 && usage.Used+characters > usage.Max {
		return &QuotaExceededError{Kind: LimitCharacters}
	}
	for _, kind := range []LimitKind{LimitDocuments, LimitTeamDocuments} {
		if usage, ok := g.limits[kind]; ok && usage.Exhausted() {
			return &QuotaExceededError{Kind: kind}
		}
	}
	return nil
}

// updateFromServer overwrites the tracked state for one kind. The
// server is ground truth, so no merging with local state.
func (g *quotaGuard) updateFromServer(kind LimitKind, used, max int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.limits[kind] = LimitUsage{Used: used, Max: max}
}

// consume advances local usage after the server billed a completed
// submission. Only kinds with a known limit are tracked; usage never
// decreases locally.
func (g *quotaGuard) consume(kind LimitKind, amount int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	usage, ok := g.limits[kind]
	if !ok || amount <= 0 {
		return
	}
	usage.Used += amount
	g.limits[kind] = usage
}
