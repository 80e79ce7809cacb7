package stock

import (
	"sort"

	"github.com/brandazine/stock-nudge/internal/model"
)

// BrandBatches maps a brand to its send-ready products, in the order the
// rows arrived from the upstream sort.
type BrandBatches map[int64][]model.Candidate

// BrandIDs returns the batch keys in ascending order for deterministic
// processing.
func (b BrandBatches) BrandIDs() []int64 {
	ids := make([]int64, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DedupeByOutreach drops brands and products already covered by recent
// outreach and groups what is left by brand.
//
// recentBrands is the snapshot of brands with an outreach record inside the
// cycle window; ENTERPRISE brands are excluded from that snapshot at query
// time, so they bypass the cycle rule here. recentProducts is the snapshot
// of products requested inside the same window: a surviving brand can start
// a new wave while its recently requested products sit it out.
//
// Brands whose batch ends up empty are omitted.
func DedupeByOutreach(rows []model.Candidate, recentBrands BrandSet, recentProducts ProductSet) BrandBatches {
	batches := make(BrandBatches)
	for _, row := range rows {
		if recentBrands.Contains(row.BrandID) {
			continue
		}
		if recentProducts.Contains(row.ProductID) {
			continue
		}
		batches[row.BrandID] = append(batches[row.BrandID], row)
	}
	return batches
}
