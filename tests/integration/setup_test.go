package integration

import (
	"testing"

	"github.com/inspire-dataserver/data-share-hub/tests/testutil"
)

// setupTest provisions a fresh migrated database for one test so tests
// never share state. Callers skip under -short before reaching here.
func setupTest(t *testing.T) *testutil.TestDB {
	t.Helper()
	return testutil.SetupTestDB(t)
}
