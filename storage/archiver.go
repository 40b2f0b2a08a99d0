package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"trustlens/types"
)

// ObjectStore is the slice of S3 the archiver uses, mockable in tests.
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, bucket, key string) (bool, error)
}

// Archiver persists unified results as JSON objects keyed by request ID.
type Archiver struct {
	store  ObjectStore
	bucket string
	prefix string
}

// NewArchiver creates an archiver over a store. The prefix gets a trailing
// slash if it lacks one.
func NewArchiver(store ObjectStore, bucket, prefix string) *Archiver {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix = prefix + "/"
	}
	return &Archiver{store: store, bucket: bucket, prefix: prefix}
}

// NewArchiverFromEnv builds the production archiver from RESULTS_BUCKET and
// RESULTS_PREFIX. Returns nil when no bucket is configured; callers treat a
// nil archiver as archiving disabled.
func NewArchiverFromEnv(ctx context.Context) *Archiver {
	bucket := os.Getenv("RESULTS_BUCKET")
	if bucket == "" {
		return nil
	}

	store, err := NewS3(ctx, S3Config{Region: os.Getenv("AWS_REGION")})
	if err != nil {
		log.Printf("Warning: result archiving disabled, S3 unavailable: %v", err)
		return nil
	}
	log.Printf("✓ Result archiver writing to s3://%s/%s", bucket, os.Getenv("RESULTS_PREFIX"))
	return NewArchiver(store, bucket, os.Getenv("RESULTS_PREFIX"))
}

func (a *Archiver) key(requestID string) string {
	return a.prefix + requestID + ".json"
}

// Archive stores one result. Re-archiving the same request ID overwrites.
func (a *Archiver) Archive(ctx context.Context, result types.UnifiedResult) error {
	if result.RequestID == "" {
		return fmt.Errorf("result has no request ID")
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if err := a.store.Put(ctx, a.bucket, a.key(result.RequestID), bytes.NewReader(data), "application/json"); err != nil {
		return fmt.Errorf("failed to upload result: %w", err)
	}
	return nil
}

// Load fetches an archived result by request ID.
func (a *Archiver) Load(ctx context.Context, requestID string) (types.UnifiedResult, error) {
	var result types.UnifiedResult

	body, err := a.store.Get(ctx, a.bucket, a.key(requestID))
	if err != nil {
		return result, fmt.Errorf("failed to fetch result %s: %w", requestID, err)
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return result, fmt.Errorf("failed to decode result %s: %w", requestID, err)
	}
	return result, nil
}

// Archived reports whether a result for the request ID already exists.
func (a *Archiver) Archived(ctx context.Context, requestID string) (bool, error) {
	return a.store.Exists(ctx, a.bucket, a.key(requestID))
}
