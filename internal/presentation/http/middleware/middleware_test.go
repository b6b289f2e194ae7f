package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/produce-store-api/internal/config"
	"github.com/sangkips/produce-store-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoggerMiddlewareRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(LoggerMiddleware(zap.New(core)))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping?x=1", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := serve(r, req)

	assert.Equal(t, "req-123", w.Body.String())
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0].ContextMap()
	assert.Equal(t, "/ping?x=1", entry["path"])
	assert.EqualValues(t, http.StatusOK, entry["status"])

	w = serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestLoggerMiddlewareLevels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := gin.New()
	r.Use(LoggerMiddleware(zap.New(core)))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/broken", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/broken", nil))

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, zap.WarnLevel, logs.All()[0].Level)
	assert.Equal(t, zap.ErrorLevel, logs.All()[1].Level)
}

func TestCORSAllowsIdempotencyKey(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(&config.CORSConfig{
		AllowedOrigins: []string{"http://shop.local"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.POST("/boletas", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodOptions, "/boletas", nil)
	req.Header.Set("Origin", "http://shop.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", IdempotencyKeyHeader)
	w := serve(r, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://shop.local", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), IdempotencyKeyHeader)
}

func TestClientRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewClientRateLimiter(ctx, RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 1})
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5000"
	assert.Equal(t, http.StatusOK, serve(r, req).Code)

	w := serve(r, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.2:5000"
	assert.Equal(t, http.StatusOK, serve(r, other).Code)
	assert.Equal(t, 2, rl.Clients())

	rl.cleanup(time.Now().Add(time.Minute))
	assert.Equal(t, 0, rl.Clients())
}

func TestIdempotency(t *testing.T) {
	repo := repository.NewIdempotencyRepository()
	calls := 0

	r := gin.New()
	mw := Idempotency(IdempotencyConfig{Repo: repo})
	r.POST("/boletas", mw, func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})
	r.POST("/drafts/:id/commit", mw, func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})

	post := func(path, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		return serve(r, req)
	}

	first := post("/boletas", "k1")
	second := post("/boletas", "k1")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(IdempotencyReplayedHeader))
	assert.Equal(t, 1, calls)

	post("/boletas", "")
	post("/boletas", "")
	assert.Equal(t, 3, calls)

	w := post("/drafts/abc/commit", "k1")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 3, calls)
}

func TestIdempotencySkipsFailedResponses(t *testing.T) {
	repo := repository.NewIdempotencyRepository()
	fail := true

	r := gin.New()
	r.POST("/boletas", Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		if fail {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})

	req := func() *httptest.ResponseRecorder {
		rq := httptest.NewRequest(http.MethodPost, "/boletas", nil)
		rq.Header.Set(IdempotencyKeyHeader, "retry-me")
		return serve(r, rq)
	}

	assert.Equal(t, http.StatusUnprocessableEntity, req().Code)
	fail = false
	w := req()
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Header().Get(IdempotencyReplayedHeader))
}

func TestIdempotencyKeyBoundToPath(t *testing.T) {
	repo := repository.NewIdempotencyRepository()
	calls := 0

	r := gin.New()
	r.POST("/drafts/:id/commit", Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"draft": c.Param("id")})
	})

	commit := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/drafts/"+id+"/commit", nil)
		req.Header.Set(IdempotencyKeyHeader, "shared")
		return serve(r, req)
	}

	assert.Equal(t, http.StatusCreated, commit("a").Code)
	w := commit("b")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.NotContains(t, w.Body.String(), `"draft":"a"`)
	assert.Equal(t, 1, calls)

	replay := commit("a")
	assert.Equal(t, "true", replay.Header().Get(IdempotencyReplayedHeader))
	assert.Equal(t, 1, calls)
}

func TestIdempotencyConcurrentDuplicates(t *testing.T) {
	repo := repository.NewIdempotencyRepository()
	var calls atomic.Int32

	r := gin.New()
	r.POST("/boletas", Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		c.JSON(http.StatusCreated, gin.H{"id": "B001"})
	})

	const n = 5
	codes := make([]int, n)
	replayed := make([]bool, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/boletas", nil)
			req.Header.Set(IdempotencyKeyHeader, "same-key")
			w := serve(r, req)
			codes[i] = w.Code
			replayed[i] = w.Header().Get(IdempotencyReplayedHeader) == "true"
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
	executed := 0
	for i, code := range codes {
		switch {
		case code == http.StatusConflict:
		case code == http.StatusCreated && replayed[i]:
		case code == http.StatusCreated:
			executed++
		default:
			t.Errorf("unexpected status %d", code)
		}
	}
	assert.Equal(t, 1, executed)
}

func TestIdempotencyReleasesAfterPanic(t *testing.T) {
	repo := repository.NewIdempotencyRepository()
	boom := true

	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/boletas", Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		if boom {
			panic("printer on fire")
		}
		c.JSON(http.StatusCreated, gin.H{"id": "B001"})
	})

	req := func() *httptest.ResponseRecorder {
		rq := httptest.NewRequest(http.MethodPost, "/boletas", nil)
		rq.Header.Set(IdempotencyKeyHeader, "after-panic")
		return serve(r, rq)
	}

	assert.Equal(t, http.StatusInternalServerError, req().Code)
	boom = false
	assert.Equal(t, http.StatusCreated, req().Code)
}

func TestPurgeExpiredKeysStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		PurgeExpiredKeys(ctx, repository.NewIdempotencyRepository(), time.Millisecond, zap.NewNop())
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("purge loop did not stop")
	}
}
