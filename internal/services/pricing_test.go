package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/inspire-dataserver/data-share-hub/internal/database"
	"github.com/inspire-dataserver/data-share-hub/internal/models"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPricingService(t *testing.T) (*PricingService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewPricingService(db), mock
}

func expectAverages(mock pgxmock.PgxPoolIface, format string, categoryID uuid.UUID, formatAvg, categoryAvg *float64) {
	mock.ExpectQuery(`SELECT AVG\(price\) FROM datasets WHERE format`).
		WithArgs(format).
		WillReturnRows(pgxmock.NewRows([]string{"avg"}).AddRow(formatAvg))
	mock.ExpectQuery(`SELECT AVG\(price\) FROM datasets WHERE category_id`).
		WithArgs(categoryID).
		WillReturnRows(pgxmock.NewRows([]string{"avg"}).AddRow(categoryAvg))
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestPricingService_Suggest_NoComparables(t *testing.T) {
	svc, mock := setupPricingService(t)
	ctx := context.Background()
	categoryID := uuid.New()

	expectAverages(mock, models.FormatCSV, categoryID, nil, nil)

	suggestion, err := svc.Suggest(ctx, "Short", "dataset", models.FormatCSV, categoryID)

	require.NoError(t, err)
	assert.Equal(t, 9.99, suggestion.SuggestedPrice)
	assert.Equal(t, models.FormatCSV, suggestion.FormatFactor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPricingService_Suggest_FormatAverage(t *testing.T) {
	svc, mock := setupPricingService(t)
	ctx := context.Background()
	categoryID := uuid.New()

	// (9.99 + 20) / 2 = 14.995, rounds up to 15.00
	expectAverages(mock, models.FormatCSV, categoryID, floatPtr(20.0), nil)

	suggestion, err := svc.Suggest(ctx, "Short", "dataset", models.FormatCSV, categoryID)

	require.NoError(t, err)
	assert.Equal(t, 15.00, suggestion.SuggestedPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPricingService_Suggest_FormatAndCategoryAverage(t *testing.T) {
	svc, mock := setupPricingService(t)
	ctx := context.Background()
	categoryID := uuid.New()

	// ((9.99 + 20) / 2 + 30) / 2 = 22.4975, rounds to 22.50
	expectAverages(mock, models.FormatJSON, categoryID, floatPtr(20.0), floatPtr(30.0))

	suggestion, err := svc.Suggest(ctx, "Short", "dataset", models.FormatJSON, categoryID)

	require.NoError(t, err)
	assert.Equal(t, 22.5, suggestion.SuggestedPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPricingService_Suggest_LongContentMultiplier(t *testing.T) {
	svc, mock := setupPricingService(t)
	ctx := context.Background()
	categoryID := uuid.New()
	description := strings.Repeat("x", 520)

	// 9.99 * 1.2 = 11.988, rounds to 11.99
	expectAverages(mock, models.FormatCSV, categoryID, nil, nil)

	suggestion, err := svc.Suggest(ctx, "Title", description, models.FormatCSV, categoryID)

	require.NoError(t, err)
	assert.Equal(t, 11.99, suggestion.SuggestedPrice)
	assert.Equal(t, len("Title")+len(description), suggestion.ContentLength)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPricingService_Suggest_MediumContentMultiplier(t *testing.T) {
	svc, mock := setupPricingService(t)
	ctx := context.Background()
	categoryID := uuid.New()
	description := strings.Repeat("x", 250)

	// 9.99 * 1.1 = 10.989, rounds to 10.99
	expectAverages(mock, models.FormatCSV, categoryID, nil, nil)

	suggestion, err := svc.Suggest(ctx, "Title", description, models.FormatCSV, categoryID)

	require.NoError(t, err)
	assert.Equal(t, 10.99, suggestion.SuggestedPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPricingService_Suggest_MultiplierAfterAveraging(t *testing.T) {
	svc, mock := setupPricingService(t)
	ctx := context.Background()
	categoryID := uuid.New()
	description := strings.Repeat("x", 520)

	// The multiplier scales the averaged estimate, not the base price:
	// (9.99 + 20) / 2 * 1.2 = 17.994, rounds to 17.99.
	expectAverages(mock, models.FormatCSV, categoryID, floatPtr(20.0), nil)

	suggestion, err := svc.Suggest(ctx, "Title", description, models.FormatCSV, categoryID)

	require.NoError(t, err)
	assert.Equal(t, 17.99, suggestion.SuggestedPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPricingService_Suggest_MissingInput(t *testing.T) {
	svc, mock := setupPricingService(t)
	ctx := context.Background()

	_, err := svc.Suggest(ctx, "Title", "desc", "", uuid.New())
	assert.ErrorIs(t, err, ErrInsufficientInput)

	_, err = svc.Suggest(ctx, "Title", "desc", models.FormatCSV, uuid.Nil)
	assert.ErrorIs(t, err, ErrInsufficientInput)

	// No queries should have been issued for rejected input.
	assert.NoError(t, mock.ExpectationsWereMet())
}
