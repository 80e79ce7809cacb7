package model

import (
	"time"

	"github.com/google/uuid"
)

// OutreachRequest records that a brand was asked to restock one product.
// Rows are created only after a successful delivery and are never updated
// or deleted; the dedup queries read them back on later runs.
type OutreachRequest struct {
	ID            uuid.UUID `db:"id"`
	ProductID     int64     `db:"product_id"`
	Round         int       `db:"round"`
	RequestedAt   time.Time `db:"requested_time"`
	RequestAmount int       `db:"request_amount"`
}
