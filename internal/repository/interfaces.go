package repository

import (
	"context"
	"time"

	"github.com/brandazine/stock-nudge/internal/model"
)

// All repository interfaces in one file
type (
	// BrandRepository reads notification targets.
	BrandRepository interface {
		// ListForMailing returns the brands among ids whose subscription
		// tier is in tiers, with their admin contact emails attached.
		ListForMailing(ctx context.Context, ids []int64, tiers []model.SubscriptionType) ([]*model.Brand, error)
	}

	// OutreachRepository reads and writes the outreach audit trail.
	OutreachRepository interface {
		// DistinctRequestedProductIDs returns every product ever requested,
		// with no time bound.
		DistinctRequestedProductIDs(ctx context.Context) ([]int64, error)
		// RecentlyRequestedProductIDs returns products with a request at or
		// after since.
		RecentlyRequestedProductIDs(ctx context.Context, since time.Time) ([]int64, error)
		// RecentlyNotifiedBrandIDs returns brands with a request at or after
		// since, excluding ENTERPRISE brands (they are cycle-exempt).
		RecentlyNotifiedBrandIDs(ctx context.Context, since time.Time) ([]int64, error)
		// CreateBatch persists one brand's records in a single transaction.
		CreateBatch(ctx context.Context, requests []*model.OutreachRequest) error
	}
)
