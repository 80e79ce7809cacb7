package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandazine/stock-nudge/internal/model"
)

func candidateFor(brandID, productID int64) model.Candidate {
	c := passingCandidate(productID)
	c.BrandID = brandID
	return c
}

func TestDedupeExcludesRecentlyNotifiedBrands(t *testing.T) {
	rows := []model.Candidate{
		candidateFor(1, 10),
		candidateFor(2, 20),
	}

	batches := DedupeByOutreach(rows, NewBrandSet([]int64{1}), NewProductSet(nil))

	assert.NotContains(t, batches, int64(1))
	require.Contains(t, batches, int64(2))
	assert.Len(t, batches[2], 1)
}

func TestDedupeEnterpriseBypassesCycle(t *testing.T) {
	// ENTERPRISE brands never enter the recent-brand snapshot (excluded at
	// query time), so their batch survives even with a record from yesterday.
	// Product-level recency still applies within the brand.
	rows := []model.Candidate{
		candidateFor(3, 30),
		candidateFor(3, 31),
	}

	batches := DedupeByOutreach(rows, NewBrandSet(nil), NewProductSet([]int64{30}))

	require.Contains(t, batches, int64(3))
	require.Len(t, batches[3], 1)
	assert.Equal(t, int64(31), batches[3][0].ProductID)
}

func TestDedupeOmitsEmptiedBrands(t *testing.T) {
	rows := []model.Candidate{
		candidateFor(1, 10),
		candidateFor(1, 11),
	}

	batches := DedupeByOutreach(rows, NewBrandSet(nil), NewProductSet([]int64{10, 11}))
	assert.Empty(t, batches)
}

func TestDedupeKeepsProductOutsideWindow(t *testing.T) {
	// A product requested five weeks ago is absent from the recent snapshot
	// and stays eligible, even though its all-time flag is set.
	row := candidateFor(1, 10)
	row.AlreadyRequested = true

	batches := DedupeByOutreach([]model.Candidate{row}, NewBrandSet(nil), NewProductSet(nil))

	require.Contains(t, batches, int64(1))
	assert.True(t, batches[1][0].AlreadyRequested)
}

func TestDedupePreservesRowOrder(t *testing.T) {
	rows := []model.Candidate{
		candidateFor(1, 10),
		candidateFor(2, 20),
		candidateFor(1, 11),
		candidateFor(1, 12),
	}

	batches := DedupeByOutreach(rows, NewBrandSet(nil), NewProductSet(nil))

	require.Len(t, batches[1], 3)
	assert.Equal(t, int64(10), batches[1][0].ProductID)
	assert.Equal(t, int64(11), batches[1][1].ProductID)
	assert.Equal(t, int64(12), batches[1][2].ProductID)
}

func TestBrandIDsSorted(t *testing.T) {
	batches := BrandBatches{
		9: nil,
		2: nil,
		5: nil,
	}
	assert.Equal(t, []int64{2, 5, 9}, batches.BrandIDs())
}
