package stock

import (
	"errors"
	"fmt"

	"github.com/brandazine/stock-nudge/internal/model"
)

// ErrZeroTrysetCount marks a row whose look-post rate denominator is zero.
// Such rows are dropped as ineligible instead of carrying Inf/NaN downstream.
var ErrZeroTrysetCount = errors.New("tryset item count is zero")

// Adequate stock tiers and the demand thresholds that select them.
const (
	TierHigh = 15
	TierMid  = 10
	TierLow  = 5

	tierHighMinViewCount = 100
	tierMidMinViewCount  = 50
	tierMidMinLikeCount  = 20
)

// ProductSet is a snapshot of product IDs, loaded once at run start.
type ProductSet map[int64]struct{}

func NewProductSet(ids []int64) ProductSet {
	set := make(ProductSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s ProductSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

// BrandSet is a snapshot of brand IDs, loaded once at run start.
type BrandSet map[int64]struct{}

func NewBrandSet(ids []int64) BrandSet {
	set := make(BrandSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s BrandSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

// AdequateStockCount assigns the target replenishment tier. First matching
// rule wins:
//
//	15: weekly view count over 100
//	10: weekly view count over 50 and accumulated likes over 20
//	 5: everything else
func AdequateStockCount(viewCount, likeCount int) int {
	switch {
	case viewCount > tierHighMinViewCount:
		return TierHigh
	case viewCount > tierMidMinViewCount && likeCount > tierMidMinLikeCount:
		return TierMid
	default:
		return TierLow
	}
}

// LookPostRate returns looks per tryset item as a percentage.
func LookPostRate(lookCount, trysetItemCount int) (float64, error) {
	if trysetItemCount == 0 {
		return 0, ErrZeroTrysetCount
	}
	return float64(lookCount) / float64(trysetItemCount) * 100, nil
}

// Classify enriches a candidate with its adequate stock tier, look-post rate
// and all-time requested flag. requested is the all-time outreach snapshot;
// recency windows are applied later by the dedup step, not here.
func Classify(c model.Candidate, requested ProductSet) (model.Candidate, error) {
	rate, err := LookPostRate(c.LookCount, c.TrysetItemCount)
	if err != nil {
		return model.Candidate{}, fmt.Errorf("product %d: %w", c.ProductID, err)
	}

	c.AdequateStockCount = AdequateStockCount(c.ViewCount, c.AccumulativeLikeCount)
	c.LookPostRate = rate
	c.AlreadyRequested = requested.Contains(c.ProductID)
	return c, nil
}
