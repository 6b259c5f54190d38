package dto

import (
	"time"

	"github.com/google/uuid"
)

type InitiatePurchaseRequest struct {
	DatasetID uuid.UUID `json:"dataset_id"`
}

// InitiatePurchaseResponse carries the purchase id and the continuation URL
// the client follows to finalize checkout. AlreadyPurchased marks the
// duplicate-initiate case, which is a success with a notice rather than an
// error.
type InitiatePurchaseResponse struct {
	ID               uuid.UUID `json:"id"`
	URL              string    `json:"url"`
	Status           string    `json:"status"`
	AlreadyPurchased bool      `json:"already_purchased,omitempty"`
}

type PurchaseResponse struct {
	ID        uuid.UUID `json:"id"`
	BuyerID   uuid.UUID `json:"buyer_id"`
	DatasetID uuid.UUID `json:"dataset_id"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type SaleResponse struct {
	PurchaseResponse
	DatasetTitle string `json:"dataset_title"`
}
