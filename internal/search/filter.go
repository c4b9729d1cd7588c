package search

import (
	"sort"
	"time"

	"github.com/iliyamo/eventscout/internal/model"
)

// Filter removes sold-out and already-past events, collapses duplicate
// ids (first occurrence wins) and sorts the rest by local start time,
// ties broken by id so the order is deterministic.  It is pure and
// idempotent.
//
// The past-event check is applied even when the request already carried a
// server-side date window; local time and API time can disagree.
func Filter(events []model.EventRecord, now time.Time) []model.EventRecord {
	out := make([]model.EventRecord, 0, len(events))
	seen := make(map[string]struct{}, len(events))
	for _, ev := range events {
		if ev.IsSoldOut() {
			continue
		}
		if !ev.StartLocal.IsZero() && ev.StartLocal.Before(now) {
			continue
		}
		if _, dup := seen[ev.ID]; dup {
			continue
		}
		seen[ev.ID] = struct{}{}
		out = append(out, ev)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartLocal.Equal(out[j].StartLocal) {
			return out[i].StartLocal.Before(out[j].StartLocal)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
