package repository

import (
	"context"
	"sync"
	"time"

	"github.com/sangkips/produce-store-api/internal/domain/entity"
	domainRepo "github.com/sangkips/produce-store-api/internal/domain/repository"
)

// reservationTTL bounds how long an abandoned in-flight key blocks retries
const reservationTTL = 5 * time.Minute

type idempotencyRepository struct {
	mu   sync.RWMutex
	keys map[string]entity.IdempotencyKey
}

// NewIdempotencyRepository creates a new in-memory idempotency key store
func NewIdempotencyRepository() domainRepo.IdempotencyRepository {
	return &idempotencyRepository{keys: make(map[string]entity.IdempotencyKey)}
}

func idempotencyMapKey(key, scope string) string {
	return scope + "\x00" + key
}

// Reserve claims key for endpoint with an in-flight marker. When the key is
// already held, live, the stored entry is returned instead and reserved is false.
func (r *idempotencyRepository) Reserve(ctx context.Context, key, scope, endpoint string) (*entity.IdempotencyKey, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	mk := idempotencyMapKey(key, scope)
	if existing, ok := r.keys[mk]; ok && !existing.IsExpired() {
		existing.ResponseBody = append([]byte(nil), existing.ResponseBody...)
		return &existing, false, nil
	}

	now := time.Now()
	r.keys[mk] = entity.IdempotencyKey{
		Key:       key,
		Scope:     scope,
		Endpoint:  endpoint,
		CreatedAt: now,
		ExpiresAt: now.Add(reservationTTL),
	}
	return nil, true, nil
}

// Release drops an in-flight reservation. Completed keys are left alone.
func (r *idempotencyRepository) Release(ctx context.Context, key, scope string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	mk := idempotencyMapKey(key, scope)
	if existing, ok := r.keys[mk]; ok && existing.InFlight() {
		delete(r.keys, mk)
	}
	return nil
}

func (r *idempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stored := *ikey
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	stored.ResponseBody = append([]byte(nil), ikey.ResponseBody...)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.keys[idempotencyMapKey(ikey.Key, ikey.Scope)] = stored
	return nil
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for k, v := range r.keys {
		if v.IsExpired() {
			delete(r.keys, k)
		}
	}
	return nil
}
