package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postingServer(status int, hits *atomic.Int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`<html><body><main><p>Senior Go engineer, PostgreSQL and Kafka.</p></main></body></html>`))
	}))
}

func localFetcherConfig() FetcherConfig {
	cfg := DefaultFetcherConfig()
	cfg.Options = localOptions()
	return cfg
}

func TestFetcher_CachesPostings(t *testing.T) {
	var hits atomic.Int32
	server := postingServer(http.StatusOK, &hits)
	defer server.Close()

	f := NewFetcher(localFetcherConfig())
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		text, err := f.JobPostingText(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Contains(t, text, "Senior Go engineer")
	}
	assert.EqualValues(t, 1, hits.Load())

	now = now.Add(time.Hour)
	_, err := f.JobPostingText(context.Background(), server.URL)
	require.NoError(t, err)
	assert.EqualValues(t, 2, hits.Load(), "expired entries are refetched")
}

func TestFetcher_OpensBreakerOnServerErrors(t *testing.T) {
	var hits atomic.Int32
	server := postingServer(http.StatusBadGateway, &hits)
	defer server.Close()

	cfg := localFetcherConfig()
	cfg.BreakerMinRequests = 3
	cfg.BreakerFailureRatio = 0.5
	f := NewFetcher(cfg)

	for i := 0; i < 3; i++ {
		_, err := f.JobPostingText(context.Background(), server.URL)
		require.Error(t, err)
		assert.False(t, IsCircuitOpen(err))
	}

	_, err := f.JobPostingText(context.Background(), server.URL+"/another")
	require.Error(t, err)
	assert.True(t, IsCircuitOpen(err), "breaker is per host")
	assert.EqualValues(t, 3, hits.Load())
}

func TestFetcher_ClientErrorsDoNotTrip(t *testing.T) {
	var hits atomic.Int32
	server := postingServer(http.StatusNotFound, &hits)
	defer server.Close()

	cfg := localFetcherConfig()
	cfg.BreakerMinRequests = 2
	f := NewFetcher(cfg)

	for i := 0; i < 5; i++ {
		_, err := f.JobPostingText(context.Background(), server.URL)
		require.Error(t, err)
		assert.False(t, IsCircuitOpen(err))
	}
	assert.EqualValues(t, 5, hits.Load())
}

func TestIsHostHealthy(t *testing.T) {
	assert.True(t, isHostHealthy(nil))
	assert.True(t, isHostHealthy(&Error{Message: "invalid URL"}))
	assert.True(t, isHostHealthy(&Error{StatusCode: 404}))
	assert.True(t, isHostHealthy(&Error{Message: "empty page", Cause: ErrNoContent}))
	assert.False(t, isHostHealthy(&Error{StatusCode: 503}))
	assert.False(t, isHostHealthy(&Error{Message: "HTTP request failed", Cause: context.DeadlineExceeded}))
}

func TestHostOf(t *testing.T) {
	assert.Equal(t, "jobs.lever.co", hostOf("https://JOBS.lever.co/acme/1"))
	assert.Equal(t, "invalid", hostOf("nope"))
	assert.True(t, strings.HasPrefix(hostOf("http://127.0.0.1:8080/x"), "127.0.0.1"))
}

func TestFetcher_PostingCacheIsBounded(t *testing.T) {
	var hits atomic.Int32
	server := postingServer(http.StatusOK, &hits)
	defer server.Close()

	cfg := localFetcherConfig()
	cfg.CacheTTL = time.Minute
	cfg.MaxCachedPostings = 50
	f := NewFetcher(cfg)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return now }

	for i := 0; i < 200; i++ {
		_, err := f.JobPostingText(context.Background(), fmt.Sprintf("%s/?q=%d", server.URL, i))
		require.NoError(t, err)
		assert.LessOrEqual(t, len(f.cache), 50)
	}

	now = now.Add(24 * time.Hour)
	_, err := f.JobPostingText(context.Background(), server.URL+"/?q=fresh")
	require.NoError(t, err)
	assert.Len(t, f.cache, 1, "expired postings are swept")
}

func TestFetcher_BreakerMapIsBounded(t *testing.T) {
	cfg := DefaultFetcherConfig()
	cfg.MaxBreakers = 10
	cfg.BreakerIdleTTL = time.Minute
	f := NewFetcher(cfg)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		f.circuitBreaker(fmt.Sprintf("host-%d.example.com", i))
		now = now.Add(time.Second)
		assert.LessOrEqual(t, len(f.breakers), 10)
	}
	_, recent := f.breakers["host-99.example.com"]
	assert.True(t, recent)

	now = now.Add(time.Hour)
	f.circuitBreaker("late.example.com")
	assert.Len(t, f.breakers, 1, "idle breakers are dropped")
}

func TestFetcher_ReusesBreakerPerHost(t *testing.T) {
	f := NewFetcher(DefaultFetcherConfig())
	first := f.circuitBreaker("jobs.example.com")
	assert.Same(t, first, f.circuitBreaker("jobs.example.com"))
}
