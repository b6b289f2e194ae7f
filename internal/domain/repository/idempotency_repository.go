package repository

import (
	"context"

	"github.com/sangkips/produce-store-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// Reserve atomically claims key for endpoint. If the key is already held
	// the existing entry is returned with reserved false.
	Reserve(ctx context.Context, key, scope, endpoint string) (existing *entity.IdempotencyKey, reserved bool, err error)
	// Release drops an in-flight reservation so the key can be retried
	Release(ctx context.Context, key, scope string) error
	// Create stores the completed response for a key
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes expired idempotency keys (for cleanup)
	DeleteExpired(ctx context.Context) error
}
