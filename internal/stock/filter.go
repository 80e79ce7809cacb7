package stock

import (
	"sort"
	"time"

	"github.com/brandazine/stock-nudge/internal/model"
)

// Eligibility thresholds for the high-demand filter chain.
const (
	maxIdleStockCount = 1
	minViewCount      = 20
	minLikeCount      = 15
	minLookPostRate   = 40.0
)

// Cutoffs holds the time boundaries the predicates compare against,
// computed once per run from a single reference time.
type Cutoffs struct {
	// TrysetActiveSince: rows need tryset activity after this (now - 1 month).
	TrysetActiveSince time.Time
	// ColdStartBefore: rows first stocked at or before this (now - 3 months)
	// must clear the look-post rate bar.
	ColdStartBefore time.Time
	// GraceBefore: rows first stocked before this (now - 1 week) but after
	// ColdStartBefore qualify regardless of post rate.
	GraceBefore time.Time
}

func NewCutoffs(now time.Time) Cutoffs {
	return Cutoffs{
		TrysetActiveSince: now.AddDate(0, -1, 0),
		ColdStartBefore:   now.AddDate(0, -3, 0),
		GraceBefore:       now.AddDate(0, 0, -7),
	}
}

// Predicate decides whether a candidate stays in the eligible set.
type Predicate func(model.Candidate) bool

// idleStock: at most maxIdleStockCount units sitting idle.
func idleStock(c model.Candidate) bool {
	return c.CurrentInStockCount <= maxIdleStockCount
}

// viewCount: more than minViewCount views in the trailing week.
func viewCount(c model.Candidate) bool {
	return c.ViewCount > minViewCount
}

// likeCount: more than minLikeCount accumulated likes.
func likeCount(c model.Candidate) bool {
	return c.AccumulativeLikeCount > minLikeCount
}

// recentTrysetActivity: last tryset use within the activity window.
// Rows that never had tryset activity fail.
func recentTrysetActivity(cut Cutoffs) Predicate {
	return func(c model.Candidate) bool {
		if c.LatestTrysetItemCreatedAt == nil {
			return false
		}
		return c.LatestTrysetItemCreatedAt.After(cut.TrysetActiveSince)
	}
}

// understock: the assigned tier exceeds what is currently counted as stock.
func understock(c model.Candidate) bool {
	return c.AdequateStockCount > c.StockCount
}

// lookUploadMaturity: items stocked 3+ months ago need a look-post rate over
// minLookPostRate; items stocked between 1 week and 3 months ago qualify
// regardless (grace period); items stocked within the last week never
// qualify here. A row with no first-in-stock time fails outright.
func lookUploadMaturity(cut Cutoffs) Predicate {
	return func(c model.Candidate) bool {
		if c.FirstInStockAt == nil {
			return false
		}
		first := *c.FirstInStockAt
		matured := c.LookPostRate > minLookPostRate && !first.After(cut.ColdStartBefore)
		inGrace := first.After(cut.ColdStartBefore) && first.Before(cut.GraceBefore)
		return matured || inGrace
	}
}

// Predicates returns the eligibility chain in application order.
func Predicates(cut Cutoffs) []Predicate {
	return []Predicate{
		idleStock,
		viewCount,
		likeCount,
		recentTrysetActivity(cut),
		understock,
		lookUploadMaturity(cut),
	}
}

// FilterHighDemand applies the chain to a snapshot and returns a new slice
// sorted by view count descending. Equal view counts keep their input order;
// the input slice is never mutated.
func FilterHighDemand(rows []model.Candidate, cut Cutoffs) []model.Candidate {
	survivors := make([]model.Candidate, 0, len(rows))

	predicates := Predicates(cut)
next:
	for _, row := range rows {
		for _, keep := range predicates {
			if !keep(row) {
				continue next
			}
		}
		survivors = append(survivors, row)
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].ViewCount > survivors[j].ViewCount
	})
	return survivors
}
