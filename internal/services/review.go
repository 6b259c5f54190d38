package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/database"
	"github.com/inspire-dataserver/data-share-hub/internal/models"
)

type ReviewService struct {
	db *database.DB
}

func NewReviewService(db *database.DB) *ReviewService {
	return &ReviewService{db: db}
}

func (s *ReviewService) ListForDataset(ctx context.Context, datasetID uuid.UUID) ([]models.Review, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, dataset_id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE dataset_id = $1
		ORDER BY created_at DESC
	`, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.DatasetID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// AverageRating returns the mean rating and review count for a dataset.
// A dataset with no reviews averages zero.
func (s *ReviewService) AverageRating(ctx context.Context, datasetID uuid.UUID) (float64, int, error) {
	var avg *float64
	var count int
	err := s.db.Pool.QueryRow(ctx, `
		SELECT AVG(rating), COUNT(*) FROM reviews WHERE dataset_id = $1
	`, datasetID).Scan(&avg, &count)
	if err != nil {
		return 0, 0, err
	}
	if avg == nil {
		return 0, 0, nil
	}
	return *avg, count, nil
}
