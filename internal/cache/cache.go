package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ZanzyTHEbar/function-o-meter/internal/monitoring"
)

const (
	defaultSize = 1024
	defaultTTL  = 15 * time.Minute
)

// entry is a cached payload with the time it was stored.
type entry struct {
	data     []byte
	storedAt time.Time
}

// Cache is a size-bounded LRU whose entries expire after ttl. Expired
// entries are dropped lazily on read.
type Cache struct {
	lru *lru.Cache[string, entry]
	ttl time.Duration
	now func() time.Time
}

// NewCache creates a cache holding at most size entries for ttl each.
// Non-positive values fall back to 1024 entries and 15 minutes.
func NewCache(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = defaultSize
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	// lru.New only errors on a non-positive size, guarded above.
	l, _ := lru.New[string, entry](size)
	return &Cache{lru: l, ttl: ttl, now: time.Now}
}

// KeyFunc derives the cache key of a request body. ok=false bypasses the
// cache for that request.
type KeyFunc func(body []byte) (key string, ok bool)

// RawBody keys on the body bytes with surrounding whitespace trimmed.
func RawBody(body []byte) (string, bool) {
	return Key(strings.TrimSpace(string(body))), true
}

// Key hashes parts into a stable cache key.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		_, _ = io.WriteString(h, p)
		_, _ = h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves an item from the cache
func (c *Cache) Get(key string) ([]byte, bool) {
	e, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		c.lru.Remove(key)
		return nil, false
	}
	return e.data, true
}

// Set stores a copy of data.
func (c *Cache) Set(key string, data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)
	c.lru.Add(key, entry{data: cp, storedAt: c.now()})
}

// Delete removes an item from the cache
func (c *Cache) Delete(key string) {
	c.lru.Remove(key)
}

// Clear removes all items from the cache
func (c *Cache) Clear() {
	c.lru.Purge()
}

// Size returns the number of items in the cache, expired ones included
func (c *Cache) Size() int {
	return c.lru.Len()
}

// Stats returns cache statistics
func (c *Cache) Stats() map[string]interface{} {
	now := c.now()
	expired := 0
	for _, key := range c.lru.Keys() {
		if e, ok := c.lru.Peek(key); ok && now.Sub(e.storedAt) >= c.ttl {
			expired++
		}
	}
	total := c.lru.Len()

	return map[string]interface{}{
		"total_items":   total,
		"expired_items": expired,
		"active_items":  total - expired,
		"ttl_seconds":   c.ttl.Seconds(),
	}
}

// Middleware caches successful POST responses for the routes in keys, each
// keyed by route and the key its KeyFunc derives from the body. Only
// handlers whose output is a pure function of that key belong here.
func (c *Cache) Middleware(metrics *monitoring.Metrics, logger *monitoring.Logger, keys map[string]KeyFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		route := ctx.FullPath()
		keyFn, cacheable := keys[route]
		if ctx.Request.Method != http.MethodPost || !cacheable {
			ctx.Next()
			return
		}

		body, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			ctx.Next()
			return
		}
		ctx.Request.Body = io.NopCloser(bytes.NewReader(body))

		bodyKey, ok := keyFn(body)
		if !ok {
			ctx.Next()
			return
		}
		key := Key(route, bodyKey)

		if cached, found := c.Get(key); found {
			metrics.IncrementCacheHit()
			logger.CacheLogger("get", key, true, c.Size())
			ctx.Header("X-Cache", "HIT")
			ctx.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			ctx.Abort()
			return
		}

		metrics.IncrementCacheMiss()
		logger.CacheLogger("get", key, false, c.Size())
		ctx.Header("X-Cache", "MISS")

		wrapper := &responseWriter{ResponseWriter: ctx.Writer, body: &bytes.Buffer{}}
		ctx.Writer = wrapper
		ctx.Next()

		// errors are rendered after this middleware returns
		if len(ctx.Errors) == 0 && wrapper.Status() == http.StatusOK && wrapper.body.Len() > 0 {
			c.Set(key, wrapper.body.Bytes())
		}
	}
}

// responseWriter wraps gin.ResponseWriter to capture response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
