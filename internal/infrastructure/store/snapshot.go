package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/greenlens/backend/internal/domain"
)

// SnapshotKey is where the current page snapshot is kept
const SnapshotKey = "greenlens:snapshot:current"

// SnapshotStore keeps the latest page snapshot in a key-value cache
type SnapshotStore struct {
	cache domain.CacheRepository
	ttl   time.Duration
}

// NewSnapshotStore creates a snapshot store. A ttl <= 0 keeps the snapshot until overwritten.
func NewSnapshotStore(cache domain.CacheRepository, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{
		cache: cache,
		ttl:   ttl,
	}
}

// Save overwrites the current snapshot
func (s *SnapshotStore) Save(ctx context.Context, snapshot *domain.PageSnapshot) error {
	if snapshot == nil {
		return domain.ErrInvalidRequest
	}
	if err := s.cache.Set(ctx, SnapshotKey, snapshot, s.ttl); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}

// Latest returns the current snapshot, or domain.ErrSnapshotNotFound
func (s *SnapshotStore) Latest(ctx context.Context) (*domain.PageSnapshot, error) {
	value, err := s.cache.Get(ctx, SnapshotKey)
	if errors.Is(err, domain.ErrCacheMiss) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}

	return decodeSnapshot(value)
}

// decodeSnapshot converts a cached value back to a PageSnapshot.
// Caches hand back either the original pointer or its JSON round-trip.
func decodeSnapshot(value interface{}) (*domain.PageSnapshot, error) {
	switch v := value.(type) {
	case *domain.PageSnapshot:
		return v, nil
	case domain.PageSnapshot:
		return &v, nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode snapshot: %w", err)
	}

	var snapshot domain.PageSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snapshot.CurrentURL == "" {
		return nil, domain.ErrSnapshotNotFound
	}
	return &snapshot, nil
}
