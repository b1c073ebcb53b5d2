package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for key-value operations with expiry
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// SnapshotStore persists the most recent page classification
type SnapshotStore interface {
	Save(ctx context.Context, snapshot *PageSnapshot) error
	Latest(ctx context.Context) (*PageSnapshot, error)
}

// Messenger delivers messages to the extension.
// Contexts without a message channel get a no-op implementation.
type Messenger interface {
	Send(ctx context.Context, msg Message) error
}

// CatalogRepository provides the fixed alternative and reward catalogs
type CatalogRepository interface {
	Alternatives() []AlternativeProduct
	Rewards() []RewardOffer
}
