package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/brandazine/stock-nudge/internal/model"
)

const (
	queryDistinctRequestedProducts = `
		SELECT DISTINCT product_id
		FROM stock_extra_in_stock_requests
	`

	// The recency comparisons are inclusive: a record stamped exactly at
	// the cutoff counts as within the cycle.
	queryRecentlyRequestedProducts = `
		SELECT DISTINCT product_id
		FROM stock_extra_in_stock_requests
		WHERE requested_time >= $1
	`

	// ENTERPRISE brands bypass the cycle rule, so they never enter
	// the exclusion snapshot.
	queryRecentlyNotifiedBrands = `
		SELECT DISTINCT p.brand_id
		FROM stock_extra_in_stock_requests r
		JOIN products p ON p.id = r.product_id
		JOIN brands b ON b.id = p.brand_id
		WHERE r.requested_time >= $1
		AND b.subscription_type <> $2
	`

	queryInsertOutreachRequest = `
		INSERT INTO stock_extra_in_stock_requests (
			id, product_id, round, requested_time, request_amount
		) VALUES ($1, $2, $3, $4, $5)
	`
)

func (r *outreachRepository) DistinctRequestedProductIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, queryDistinctRequestedProducts); err != nil {
		return nil, fmt.Errorf("failed to list requested products: %w", err)
	}
	return ids, nil
}

func (r *outreachRepository) RecentlyRequestedProductIDs(ctx context.Context, since time.Time) ([]int64, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, queryRecentlyRequestedProducts, since); err != nil {
		return nil, fmt.Errorf("failed to list recently requested products: %w", err)
	}
	return ids, nil
}

func (r *outreachRepository) RecentlyNotifiedBrandIDs(ctx context.Context, since time.Time) ([]int64, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, queryRecentlyNotifiedBrands, since, string(model.SubscriptionEnterprise)); err != nil {
		return nil, fmt.Errorf("failed to list recently notified brands: %w", err)
	}
	return ids, nil
}

func (r *outreachRepository) CreateBatch(ctx context.Context, requests []*model.OutreachRequest) error {
	if len(requests) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, req := range requests {
		if _, err := tx.ExecContext(ctx, queryInsertOutreachRequest,
			req.ID,
			req.ProductID,
			req.Round,
			req.RequestedAt,
			req.RequestAmount,
		); err != nil {
			return fmt.Errorf("failed to create outreach request: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit outreach requests: %w", err)
	}
	return nil
}
