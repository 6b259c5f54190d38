package models

import (
	"time"

	"github.com/google/uuid"
)

// Purchase lifecycle states. Only pending and completed are exercised by the
// checkout flow; failed and refunded exist for operational tooling.
const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusCompleted = "completed"
	PurchaseStatusFailed    = "failed"
	PurchaseStatusRefunded  = "refunded"
)

type Purchase struct {
	ID        uuid.UUID `json:"id"`
	BuyerID   uuid.UUID `json:"buyer_id"`
	DatasetID uuid.UUID `json:"dataset_id"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Sale is a purchase joined with the sold dataset's title, as shown on the
// seller dashboard.
type Sale struct {
	Purchase
	DatasetTitle string `json:"dataset_title"`
}
