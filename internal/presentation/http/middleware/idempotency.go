package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/produce-store-api/internal/domain/entity"
	"github.com/sangkips/produce-store-api/internal/domain/repository"
	"github.com/sangkips/produce-store-api/internal/presentation/http/dto/response"
	"github.com/sangkips/produce-store-api/pkg/apperror"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the key store
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	TTL  time.Duration
	Log  *zap.Logger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a client repeats a POST, PUT
// or PATCH with the same Idempotency-Key. Keys are scoped to the client IP
// and bound to the request path. A duplicate that arrives while the first
// request is still running gets 409. Only 2xx responses are stored so a
// rejected request can be corrected and retried under the same key.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	ttl := config.TTL
	if ttl <= 0 {
		ttl = IdempotencyKeyTTL
	}
	log := config.Log
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		scope := c.ClientIP()
		endpoint := c.Request.Method + " " + c.Request.URL.Path

		existing, reserved, err := config.Repo.Reserve(c.Request.Context(), key, scope, endpoint)
		if err != nil {
			log.Warn("idempotency reservation failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		if !reserved {
			switch {
			case existing.Endpoint != endpoint:
				response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used for a different request")
			case existing.InFlight():
				response.Error(c, apperror.NewConflictError("A request with this Idempotency-Key is still in progress"))
			default:
				c.Header(IdempotencyReplayedHeader, "true")
				c.Data(existing.ResponseCode, "application/json; charset=utf-8", existing.ResponseBody)
			}
			c.Abort()
			return
		}

		// the reservation outlives a cancelled request so a retry is not blocked
		storeCtx := context.WithoutCancel(c.Request.Context())
		stored := false
		defer func() {
			if stored {
				return
			}
			if err := config.Repo.Release(storeCtx, key, scope); err != nil {
				log.Warn("idempotency release failed", zap.String("key", key), zap.Error(err))
			}
		}()

		blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		now := time.Now()
		ikey := &entity.IdempotencyKey{
			Key:          key,
			Scope:        scope,
			Endpoint:     endpoint,
			ResponseCode: status,
			ResponseBody: blw.body.Bytes(),
			CreatedAt:    now,
			ExpiresAt:    now.Add(ttl),
		}
		if err := config.Repo.Create(storeCtx, ikey); err != nil {
			log.Warn("idempotency store failed", zap.String("key", key), zap.Error(err))
			return
		}
		stored = true
	}
}

// PurgeExpiredKeys deletes expired idempotency keys every interval until ctx is done
func PurgeExpiredKeys(ctx context.Context, repo repository.IdempotencyRepository, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil && ctx.Err() == nil {
				log.Warn("purging idempotency keys failed", zap.Error(err))
			}
		}
	}
}
