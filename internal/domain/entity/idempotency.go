package entity

import "time"

// IdempotencyKey stores the response of a processed request so a retry can be replayed
type IdempotencyKey struct {
	Key          string // The idempotency key from client
	Scope        string // Caller the key belongs to (client IP)
	Endpoint     string // API endpoint (e.g., "POST /api/v1/boletas")
	ResponseCode int // zero while the request is still in flight
	ResponseBody []byte
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

// InFlight reports whether the request holding this key has not finished yet
func (i *IdempotencyKey) InFlight() bool {
	return i.ResponseCode == 0
}
