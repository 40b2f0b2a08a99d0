package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"trustlens/types"
)

type memStore struct {
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (m *memStore) Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.objects[bucket+"/"+key] = data
	return nil
}

func (m *memStore) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	data, ok := m.objects[bucket+"/"+key]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStore) Exists(ctx context.Context, bucket, key string) (bool, error) {
	_, ok := m.objects[bucket+"/"+key]
	return ok, nil
}

func sampleResult() types.UnifiedResult {
	return types.UnifiedResult{
		RequestID:          "abc123",
		ContentType:        types.ContentText,
		Label:              types.RiskYellow,
		OneLineDescription: "Mixed verification results.",
		Summary:            "Some claims could not be confirmed.",
		Scores:             types.TrustScores{SourceIntegrity: 60, ContentAuthenticity: 80, TrustExplainability: 66},
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	store := newMemStore()
	a := NewArchiver(store, "results", "trust")

	if err := a.Archive(context.Background(), sampleResult()); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	if _, ok := store.objects["results/trust/abc123.json"]; !ok {
		t.Fatalf("object not stored under prefixed key; have %v", keys(store))
	}

	got, err := a.Load(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Label != types.RiskYellow || got.Scores.SourceIntegrity != 60 {
		t.Errorf("loaded result = %+v", got)
	}

	exists, err := a.Archived(context.Background(), "abc123")
	if err != nil || !exists {
		t.Errorf("Archived = (%v, %v), want (true, nil)", exists, err)
	}
}

func TestArchiveRejectsMissingRequestID(t *testing.T) {
	a := NewArchiver(newMemStore(), "results", "")
	result := sampleResult()
	result.RequestID = ""

	if err := a.Archive(context.Background(), result); err == nil {
		t.Fatal("expected error for result without request ID")
	}
}

func keys(m *memStore) []string {
	var out []string
	for k := range m.objects {
		out = append(out, k)
	}
	return out
}
