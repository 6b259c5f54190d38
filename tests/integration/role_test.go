package integration

import (
	"context"
	"sync"
	"testing"

	"github.com/inspire-dataserver/data-share-hub/internal/models"
	"github.com/inspire-dataserver/data-share-hub/internal/services"
	"github.com/inspire-dataserver/data-share-hub/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleService_Integration_BecomeSeller(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewRoleService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)

	grant, already, err := svc.BecomeSeller(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, already)
	assert.Equal(t, models.RoleSeller, grant.Role)

	grant, already, err = svc.BecomeSeller(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, already)
	assert.Nil(t, grant)

	hasRole, err := svc.HasRole(ctx, user.ID, models.RoleSeller)
	require.NoError(t, err)
	assert.True(t, hasRole)
}

func TestRoleService_Integration_ConcurrentBecomeSeller(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewRoleService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)

	const workers = 10
	results := make(chan bool, workers)
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, already, err := svc.BecomeSeller(ctx, user.ID)
			if err != nil {
				errs <- err
				return
			}
			results <- already
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("unexpected error from concurrent grant: %v", err)
	}

	// Exactly one caller wins the insert, the rest observe the existing grant
	granted := 0
	for already := range results {
		if !already {
			granted++
		}
	}
	assert.Equal(t, 1, granted)

	roles, err := svc.ListRoles(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{models.RoleSeller}, roles)
}
