package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func countingHandler(hits *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"n":1}`))
	})
}

func TestCacheServesRepeatGETs(t *testing.T) {
	hits := 0
	c := newResponseCache(time.Minute, 8)
	h := c.Middleware(countingHandler(&hits))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products?category=shoes", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"n":1}`, rec.Body.String())
		if i > 0 {
			require.Equal(t, "HIT", rec.Header().Get("X-Cache"))
		}
	}

	require.Equal(t, 1, hits)
}

func TestCacheKeyIncludesQuery(t *testing.T) {
	hits := 0
	c := newResponseCache(time.Minute, 8)
	h := c.Middleware(countingHandler(&hits))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/products?category=shoes", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/products?category=dresses", nil))

	require.Equal(t, 2, hits)
}

func TestCacheExpires(t *testing.T) {
	hits := 0
	c := newResponseCache(10*time.Millisecond, 8)
	h := c.Middleware(countingHandler(&hits))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/products", nil))
	time.Sleep(20 * time.Millisecond)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/products", nil))

	require.Equal(t, 2, hits)
}

func TestCacheIgnoresNonGET(t *testing.T) {
	hits := 0
	c := newResponseCache(time.Minute, 8)
	h := c.Middleware(countingHandler(&hits))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/products", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/products", nil))

	require.Equal(t, 2, hits)
}

func TestCacheSkipsErrors(t *testing.T) {
	hits := 0
	c := newResponseCache(time.Minute, 8)
	h := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/products", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/products", nil))

	require.Equal(t, 2, hits)
}

func TestCacheIsBounded(t *testing.T) {
	hits := 0
	c := newResponseCache(time.Minute, 1)
	h := c.Middleware(countingHandler(&hits))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/a", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/b", nil)) // evicts /a
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/a", nil))

	require.Equal(t, 3, hits)
}
