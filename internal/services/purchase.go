package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/database"
	"github.com/inspire-dataserver/data-share-hub/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrAlreadyPurchased = errors.New("dataset already purchased by this buyer")
	ErrPurchaseNotFound = errors.New("purchase not found")
	ErrPurchaseFailed   = errors.New("purchase failed")
)

type PurchaseService struct {
	db *database.DB
}

func NewPurchaseService(db *database.DB) *PurchaseService {
	return &PurchaseService{db: db}
}

// Initiate creates a pending purchase for the buyer. The
// UNIQUE(buyer_id, dataset_id) constraint is the only duplicate guard:
// a rejected insert surfaces as ErrAlreadyPurchased so the caller can
// recover the existing row instead of failing.
func (s *PurchaseService) Initiate(ctx context.Context, buyerID, datasetID uuid.UUID, amount float64) (*models.Purchase, error) {
	var purchase models.Purchase
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO purchases (buyer_id, dataset_id, amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, buyer_id, dataset_id, amount, status, created_at
	`, buyerID, datasetID, amount, models.PurchaseStatusPending).Scan(
		&purchase.ID, &purchase.BuyerID, &purchase.DatasetID,
		&purchase.Amount, &purchase.Status, &purchase.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAlreadyPurchased
		}
		return nil, fmt.Errorf("%w: %v", ErrPurchaseFailed, err)
	}
	return &purchase, nil
}

// Complete marks the purchase completed. Re-invoking on an already-completed
// purchase is a no-op success; the status never transitions backward.
func (s *PurchaseService) Complete(ctx context.Context, purchaseID uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE purchases SET status = $1 WHERE id = $2
	`, models.PurchaseStatusCompleted, purchaseID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrPurchaseNotFound
	}
	return nil
}

func (s *PurchaseService) GetByID(ctx context.Context, purchaseID uuid.UUID) (*models.Purchase, error) {
	var purchase models.Purchase
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, buyer_id, dataset_id, amount, status, created_at
		FROM purchases WHERE id = $1
	`, purchaseID).Scan(
		&purchase.ID, &purchase.BuyerID, &purchase.DatasetID,
		&purchase.Amount, &purchase.Status, &purchase.CreatedAt,
	)
	if err != nil {
		return nil, ErrPurchaseNotFound
	}
	return &purchase, nil
}

// GetByBuyerAndDataset recovers the existing purchase after a duplicate
// initiate attempt.
func (s *PurchaseService) GetByBuyerAndDataset(ctx context.Context, buyerID, datasetID uuid.UUID) (*models.Purchase, error) {
	var purchase models.Purchase
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, buyer_id, dataset_id, amount, status, created_at
		FROM purchases WHERE buyer_id = $1 AND dataset_id = $2
	`, buyerID, datasetID).Scan(
		&purchase.ID, &purchase.BuyerID, &purchase.DatasetID,
		&purchase.Amount, &purchase.Status, &purchase.CreatedAt,
	)
	if err != nil {
		return nil, ErrPurchaseNotFound
	}
	return &purchase, nil
}

// HasAccess reports whether the buyer holds a completed purchase for the
// dataset. It always re-derives the answer from the store; download access
// is never cached server-side.
func (s *PurchaseService) HasAccess(ctx context.Context, buyerID, datasetID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM purchases
			WHERE buyer_id = $1 AND dataset_id = $2 AND status = $3
		)
	`, buyerID, datasetID, models.PurchaseStatusCompleted).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *PurchaseService) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]models.Purchase, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, buyer_id, dataset_id, amount, status, created_at
		FROM purchases
		WHERE buyer_id = $1
		ORDER BY created_at DESC
	`, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []models.Purchase
	for rows.Next() {
		var p models.Purchase
		if err := rows.Scan(&p.ID, &p.BuyerID, &p.DatasetID, &p.Amount, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

// ListSales returns the purchases made against the seller's datasets, newest
// first, for the seller dashboard.
func (s *PurchaseService) ListSales(ctx context.Context, sellerID uuid.UUID) ([]models.Sale, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT p.id, p.buyer_id, p.dataset_id, p.amount, p.status, p.created_at, d.title
		FROM purchases p
		JOIN datasets d ON p.dataset_id = d.id
		WHERE d.seller_id = $1
		ORDER BY p.created_at DESC
	`, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []models.Sale
	for rows.Next() {
		var sale models.Sale
		if err := rows.Scan(
			&sale.ID, &sale.BuyerID, &sale.DatasetID,
			&sale.Amount, &sale.Status, &sale.CreatedAt, &sale.DatasetTitle,
		); err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}
