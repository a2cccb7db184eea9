package httpapi

import (
	"bytes"
	"net/http"
	"sync"
	"time"
)

// responseCache memoizes successful GET responses for a short TTL, keyed by
// method and full URL (query included). It is bounded: once maxEntries is
// reached, the oldest entry is evicted. This replaces ad-hoc global caching
// with an explicit, time-expiring store.
type responseCache struct {
	ttl        time.Duration
	maxEntries int

	mu      sync.Mutex
	entries map[string]*cacheEntry
	keys    []string // insertion order, for eviction
}

type cacheEntry struct {
	status    int
	header    http.Header
	body      []byte
	expiresAt time.Time
}

func newResponseCache(ttl time.Duration, maxEntries int) *responseCache {
	return &responseCache{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]*cacheEntry),
	}
}

// Middleware serves cached responses when fresh and records cache misses.
// Only 200 responses to GET requests are stored.
func (c *responseCache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Method + " " + r.URL.String()
		if entry := c.get(key); entry != nil {
			for k, vs := range entry.header {
				for _, v := range vs {
					w.Header().Add(k, v)
				}
			}
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(entry.status)
			_, _ = w.Write(entry.body)
			return
		}

		rec := &recordingWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status == http.StatusOK {
			c.put(key, &cacheEntry{
				status:    rec.status,
				header:    w.Header().Clone(),
				body:      rec.buf.Bytes(),
				expiresAt: time.Now().Add(c.ttl),
			})
		}
	})
}

func (c *responseCache) get(key string) *cacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil
	}
	return entry
}

func (c *responseCache) put(key string, entry *cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		for len(c.entries) >= c.maxEntries && len(c.keys) > 0 {
			oldest := c.keys[0]
			c.keys = c.keys[1:]
			delete(c.entries, oldest)
		}
		c.keys = append(c.keys, key)
	}
	c.entries[key] = entry
}

// recordingWriter tees the response body so it can be cached after the
// handler returns.
type recordingWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *recordingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	return w.ResponseWriter.Write(p)
}
