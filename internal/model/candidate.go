package model

import (
	"time"
)

// Candidate is one product's metric snapshot from the analytics warehouse.
// Raw fields come straight from the query result CSV; derived fields are
// filled in by the classifier before any filtering runs.
type Candidate struct {
	ProductID      int64
	ProductName    string
	BrandID        int64
	BrandName      string
	ManagerPageURL string

	CurrentInStockCount int
	CurrentInUseCount   int
	// StockCount is the quantity currently counted as stock, distinct from
	// CurrentInStockCount (units sitting idle in the warehouse).
	StockCount int

	ViewCount             int // trailing week
	AccumulativeLikeCount int
	LookCount             int
	TrysetItemCount       int

	LatestTrysetItemCreatedAt *time.Time
	FirstInStockAt            *time.Time

	// Derived by the classifier.
	AdequateStockCount int
	LookPostRate       float64
	AlreadyRequested   bool
}
