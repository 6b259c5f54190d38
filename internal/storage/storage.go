package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"
)

// ObjectStorage is the black-box file capability the marketplace consumes:
// upload bytes under a key and get back a public URL, or mint a short-lived
// download URL for an existing key.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	DownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	// KeyFor recovers the object key from a public URL this store minted,
	// or false for a URL issued elsewhere.
	KeyFor(fileURL string) (string, bool)
	Delete(ctx context.Context, key string) error
}

// ObjectKey builds the canonical storage key for a user's file:
// {userId}/{randomName}.{ext}.
func ObjectKey(userID, ext string) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s.%s", userID, hex.EncodeToString(b), ext), nil
}

// KeyFromPublicURL recovers the object key from a public URL minted by
// Upload. Returns false when the URL was not issued by this store.
func KeyFromPublicURL(publicURL, bucket, fileURL string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s/", strings.TrimSuffix(publicURL, "/"), bucket)
	if !strings.HasPrefix(fileURL, prefix) {
		return "", false
	}
	return strings.TrimPrefix(fileURL, prefix), true
}
