package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inspire-dataserver/data-share-hub/internal/config"
)

func newTestStore(t *testing.T, publicURL string) *MinioStorage {
	t.Helper()
	store, err := NewMinioStorage(config.StorageConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "datasets",
		PublicURL: publicURL,
	})
	require.NoError(t, err)
	return store
}

// With no public URL configured the store derives its base from the
// endpoint; KeyFor must recognize URLs minted against that derived base.
func TestMinioStorage_KeyFor_DerivedBase(t *testing.T) {
	store := newTestStore(t, "")

	key, ok := store.KeyFor("http://localhost:9000/datasets/user/abc123.csv")
	assert.True(t, ok)
	assert.Equal(t, "user/abc123.csv", key)
}

func TestMinioStorage_KeyFor_ConfiguredPublicURL(t *testing.T) {
	store := newTestStore(t, "https://files.example.com")

	key, ok := store.KeyFor("https://files.example.com/datasets/user/abc123.csv")
	assert.True(t, ok)
	assert.Equal(t, "user/abc123.csv", key)
}

func TestMinioStorage_KeyFor_ForeignURL(t *testing.T) {
	store := newTestStore(t, "")

	_, ok := store.KeyFor("https://cdn.example.com/datasets/user/abc123.csv")
	assert.False(t, ok)
}
