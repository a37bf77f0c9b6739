package ports_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bennysakos/searchlight/internal/ports"
)

func newTestSuffixes(t *testing.T) *ports.DomainSuffixes {
	t.Helper()
	suffixes, err := ports.NewDomainSuffixes("searchlight-stats.com", "searchlight-web.pages.dev")
	require.NoError(t, err)
	return suffixes
}

func TestDomainSuffixes(t *testing.T) {
	t.Parallel()

	t.Run("rejects bad suffixes", func(t *testing.T) {
		t.Parallel()

		_, err := ports.NewDomainSuffixes(".searchlight-stats.com")
		require.Error(t, err)

		_, err = ports.NewDomainSuffixes("https://searchlight-stats.com")
		require.Error(t, err)
	})

	t.Run("matching", func(t *testing.T) {
		t.Parallel()

		suffixes := newTestSuffixes(t)

		allowed := []string{
			"https://searchlight-stats.com",
			"https://www.searchlight-stats.com",
			"https://searchlight-web.pages.dev",
			"https://53bcd591.searchlight-web.pages.dev",
			"https://new-api.searchlight-web.pages.dev",
		}
		for _, origin := range allowed {
			assert.True(t, suffixes.AnyMatch(origin), "expected %q to be allowed", origin)
		}

		denied := []string{
			"",
			"searchlight",
			"example.com",
			"stats.com",
			"pages.dev",
			// Scheme required, and only https
			"searchlight-stats.com",
			"http://searchlight-stats.com",
			// Unrelated domains
			"https://example.com",
			"https://www.google.com",
			"https://ratings.ranked-rtanks.online",
			// Similar-looking domains
			"https://search-light-stats.com",
			"https://mysearchlight-stats.com",
			"https://www.mysearchlight-stats.com",
			"https://supersearchlight-web.pages.dev",
			"https://something.othersearchlight-web.pages.dev",
		}
		for _, origin := range denied {
			assert.False(t, suffixes.AnyMatch(origin), "expected %q to be denied", origin)
		}
	})
}

func TestCORSMiddleware(t *testing.T) {
	t.Parallel()

	do := func(t *testing.T, handler http.HandlerFunc, method, origin string) *http.Response {
		t.Helper()
		req := httptest.NewRequest(method, "https://api.searchlight-stats.com/v1/player", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		handler(w, req)
		return w.Result()
	}

	newHandler := func(t *testing.T) http.HandlerFunc {
		t.Helper()
		return ports.BuildCORSMiddleware(newTestSuffixes(t))(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("Hello, world!"))
		})
	}

	t.Run("allowed origins get the allow header", func(t *testing.T) {
		t.Parallel()

		resp := do(t, newHandler(t), http.MethodGet, "https://www.searchlight-stats.com")

		require.Equal(t, "https://www.searchlight-stats.com", resp.Header.Get("Access-Control-Allow-Origin"))
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", string(body))
	})

	t.Run("preflight is answered without calling the handler", func(t *testing.T) {
		t.Parallel()

		resp := do(t, newHandler(t), http.MethodOptions, "https://www.searchlight-stats.com")

		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		require.Equal(t, "https://www.searchlight-stats.com", resp.Header.Get("Access-Control-Allow-Origin"))
		require.Equal(t, "GET", resp.Header.Get("Access-Control-Allow-Methods"))
		require.Equal(t, "Content-Type", resp.Header.Get("Access-Control-Allow-Headers"))
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Empty(t, body)
	})

	t.Run("denied origins get no cors headers", func(t *testing.T) {
		t.Parallel()

		resp := do(t, newHandler(t), http.MethodGet, "https://example.com")

		require.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
		require.Empty(t, resp.Header.Get("Access-Control-Allow-Methods"))
		require.Empty(t, resp.Header.Get("Access-Control-Allow-Headers"))
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", string(body))
	})

	t.Run("denied preflight falls through to the handler", func(t *testing.T) {
		t.Parallel()

		resp := do(t, newHandler(t), http.MethodOptions, "https://example.com")

		require.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", string(body))
	})
}

func TestCORSHandler(t *testing.T) {
	t.Parallel()

	handler := ports.BuildCORSHandler(newTestSuffixes(t))

	t.Run("allowed preflight", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodOptions, "https://api.searchlight-stats.com/v1/player", nil)
		req.Header.Set("Origin", "https://searchlight-stats.com")
		w := httptest.NewRecorder()
		handler(w, req)

		resp := w.Result()
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		require.Equal(t, "https://searchlight-stats.com", resp.Header.Get("Access-Control-Allow-Origin"))
		require.Equal(t, "GET", resp.Header.Get("Access-Control-Allow-Methods"))
	})

	t.Run("denied origin still gets a response", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodOptions, "https://api.searchlight-stats.com/v1/player", nil)
		req.Header.Set("Origin", "https://example.com")
		w := httptest.NewRecorder()
		handler(w, req)

		resp := w.Result()
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		require.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	})
}
