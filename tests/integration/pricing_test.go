package integration

import (
	"context"
	"testing"

	"github.com/inspire-dataserver/data-share-hub/internal/services"
	"github.com/inspire-dataserver/data-share-hub/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingService_Integration_Suggest(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewPricingService(tdb.DB)
	ctx := context.Background()

	seller := fixtures.CreateUser(t)
	category := fixtures.CreateCategory(t, "Finance")
	other := fixtures.CreateCategory(t, "Weather")

	// Two csv datasets in the target category, mean price 30
	fixtures.CreateDataset(t, seller, testutil.WithFormat("csv"), testutil.WithCategory(category), testutil.WithPrice(20))
	fixtures.CreateDataset(t, seller, testutil.WithFormat("csv"), testutil.WithCategory(category), testutil.WithPrice(40))
	// Different format and category, must not influence the estimate
	fixtures.CreateDataset(t, seller, testutil.WithFormat("json"), testutil.WithCategory(other), testutil.WithPrice(500))

	suggestion, err := svc.Suggest(ctx, "Stock prices", "Daily close", "csv", category.ID)
	require.NoError(t, err)

	// (9.99+30)/2 = 19.995, then (19.995+30)/2 = 24.9975, rounded to 25.00
	assert.Equal(t, 25.00, suggestion.SuggestedPrice)
	assert.Equal(t, "csv", suggestion.FormatFactor)
	assert.Equal(t, category.ID.String(), suggestion.CategoryFactor)
}

func TestPricingService_Integration_Suggest_EmptyStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewPricingService(tdb.DB)

	category := fixtures.CreateCategory(t, "Empty")

	suggestion, err := svc.Suggest(context.Background(), "Anything", "short", "xml", category.ID)
	require.NoError(t, err)
	assert.Equal(t, services.BasePrice, suggestion.SuggestedPrice)
}
