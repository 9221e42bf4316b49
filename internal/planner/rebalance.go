package planner

import (
	"time"

	"github.com/mariakotova/atelier/internal/domain"
)

// MinSplitMinutes is the smallest per-day allocation the rebalancer will
// split further. Anything at or below stays put even on an overflowing day.
const MinSplitMinutes = 30

// NormalizeSequence re-ranks every row on a day to a dense 0-based
// OrderInDay, keeping the existing (rank, created time) ordering. This
// clears the gaps and duplicates manual reordering leaves behind.
// Returns the rows in their new order.
func NormalizeSequence(rows []*domain.Order, now time.Time) []*domain.Order {
	SortRows(rows)
	for i, row := range rows {
		rank := i
		row.OrderInDay = &rank
		row.UpdatedAt = now
	}
	return rows
}

// PickSplitCandidate selects the order the rebalancer should re-split on an
// overflowing day: the largest-by-allocation main part above the split
// threshold. Returns nil when no row qualifies; ties keep the earliest
// created row.
func PickSplitCandidate(rows []*domain.Order, minSplitMin int) *domain.Order {
	var best *domain.Order
	for _, row := range rows {
		if !row.IsMainPart || row.PlannedMinutes <= minSplitMin {
			continue
		}
		if best == nil || row.PlannedMinutes > best.PlannedMinutes ||
			(row.PlannedMinutes == best.PlannedMinutes && row.CreatedAt.Before(best.CreatedAt)) {
			best = row
		}
	}
	return best
}
