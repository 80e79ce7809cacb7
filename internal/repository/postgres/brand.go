package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/brandazine/stock-nudge/internal/model"
)

type brandRow struct {
	ID               int64          `db:"id"`
	Name             string         `db:"name"`
	BusinessEmail    *string        `db:"business_email"`
	SubscriptionType string         `db:"subscription_type"`
	AdminEmails      pq.StringArray `db:"admin_emails"`
}

func (r *brandRepository) ListForMailing(ctx context.Context, ids []int64, tiers []model.SubscriptionType) ([]*model.Brand, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT b.id, b.name, b.business_email, b.subscription_type,
		       COALESCE(array_agg(a.email) FILTER (WHERE a.email IS NOT NULL), '{}') AS admin_emails
		FROM brands b
		LEFT JOIN brand_admins a ON a.brand_id = b.id
		WHERE b.id = ANY($1)
		AND b.subscription_type = ANY($2)
		GROUP BY b.id, b.name, b.business_email, b.subscription_type
		ORDER BY b.id
	`

	tierNames := make([]string, 0, len(tiers))
	for _, t := range tiers {
		tierNames = append(tierNames, string(t))
	}

	var rows []brandRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids), pq.Array(tierNames)); err != nil {
		return nil, fmt.Errorf("failed to list brands for mailing: %w", err)
	}

	brands := make([]*model.Brand, 0, len(rows))
	for _, row := range rows {
		brand := &model.Brand{
			ID:               row.ID,
			Name:             row.Name,
			SubscriptionType: model.SubscriptionType(row.SubscriptionType),
			AdminEmails:      row.AdminEmails,
		}
		if row.BusinessEmail != nil {
			brand.BusinessEmail = *row.BusinessEmail
		}
		brands = append(brands, brand)
	}
	return brands, nil
}
