package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/database"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupReviewService(t *testing.T) (*ReviewService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewReviewService(db), mock
}

func TestReviewService_ListForDataset(t *testing.T) {
	svc, mock := setupReviewService(t)
	ctx := context.Background()
	datasetID := uuid.New()
	now := time.Now()
	comment := "Great coverage"

	rows := pgxmock.NewRows([]string{"id", "dataset_id", "user_id", "rating", "comment", "created_at", "updated_at"}).
		AddRow(uuid.New(), datasetID, uuid.New(), 5, &comment, now, now).
		AddRow(uuid.New(), datasetID, uuid.New(), 3, nil, now, now)

	mock.ExpectQuery(`SELECT .+ FROM reviews`).
		WithArgs(datasetID).
		WillReturnRows(rows)

	reviews, err := svc.ListForDataset(ctx, datasetID)

	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Nil(t, reviews[1].Comment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewService_AverageRating(t *testing.T) {
	svc, mock := setupReviewService(t)
	ctx := context.Background()
	datasetID := uuid.New()
	avg := 4.5

	mock.ExpectQuery(`SELECT AVG\(rating\), COUNT`).
		WithArgs(datasetID).
		WillReturnRows(pgxmock.NewRows([]string{"avg", "count"}).AddRow(&avg, 2))

	result, count, err := svc.AverageRating(ctx, datasetID)

	require.NoError(t, err)
	assert.Equal(t, 4.5, result)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewService_AverageRating_NoReviews(t *testing.T) {
	svc, mock := setupReviewService(t)
	ctx := context.Background()
	datasetID := uuid.New()

	mock.ExpectQuery(`SELECT AVG\(rating\), COUNT`).
		WithArgs(datasetID).
		WillReturnRows(pgxmock.NewRows([]string{"avg", "count"}).AddRow(nil, 0))

	result, count, err := svc.AverageRating(ctx, datasetID)

	require.NoError(t, err)
	assert.Equal(t, 0.0, result)
	assert.Equal(t, 0, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
