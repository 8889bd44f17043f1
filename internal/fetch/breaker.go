package fetch

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// FetcherConfig tunes a Fetcher.
type FetcherConfig struct {
	Options  *Options
	CacheTTL time.Duration

	// MaxCachedPostings caps the posting cache. Expired entries are swept
	// first, then the oldest are dropped.
	MaxCachedPostings int

	// MaxBreakers caps the per-host breaker map. Breakers idle longer than
	// BreakerIdleTTL are dropped first, then the least recently used.
	MaxBreakers    int
	BreakerIdleTTL time.Duration

	BreakerMinRequests      uint32
	BreakerFailureRatio     float64
	BreakerOpenTimeout      time.Duration
	BreakerHalfOpenMaxCalls uint32
}

// DefaultFetcherConfig returns sensible defaults.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		Options:                 DefaultOptions(),
		CacheTTL:                15 * time.Minute,
		MaxCachedPostings:       512,
		MaxBreakers:             256,
		BreakerIdleTTL:          30 * time.Minute,
		BreakerMinRequests:      5,
		BreakerFailureRatio:     0.6,
		BreakerOpenTimeout:      time.Minute,
		BreakerHalfOpenMaxCalls: 1,
	}
}

func (c FetcherConfig) normalize() FetcherConfig {
	def := DefaultFetcherConfig()
	if c.Options == nil {
		c.Options = def.Options
	}
	if c.MaxCachedPostings <= 0 {
		c.MaxCachedPostings = def.MaxCachedPostings
	}
	if c.MaxBreakers <= 0 {
		c.MaxBreakers = def.MaxBreakers
	}
	if c.BreakerIdleTTL <= 0 {
		c.BreakerIdleTTL = def.BreakerIdleTTL
	}
	if c.BreakerMinRequests == 0 {
		c.BreakerMinRequests = def.BreakerMinRequests
	}
	if c.BreakerFailureRatio <= 0 || c.BreakerFailureRatio > 1 {
		c.BreakerFailureRatio = def.BreakerFailureRatio
	}
	if c.BreakerOpenTimeout <= 0 {
		c.BreakerOpenTimeout = def.BreakerOpenTimeout
	}
	if c.BreakerHalfOpenMaxCalls == 0 {
		c.BreakerHalfOpenMaxCalls = def.BreakerHalfOpenMaxCalls
	}
	return c
}

type cachedPosting struct {
	text    string
	fetched time.Time
}

type hostBreaker struct {
	cb       *gobreaker.CircuitBreaker[string]
	lastUsed time.Time
}

// Fetcher retrieves job posting text behind a per-host circuit breaker and a
// short-lived in-memory cache. It is safe for concurrent use.
type Fetcher struct {
	cfg    FetcherConfig
	render renderFunc
	now    func() time.Time

	mu       sync.Mutex
	breakers map[string]*hostBreaker
	cache    map[string]cachedPosting
}

// NewFetcher creates a Fetcher. A zero CacheTTL disables caching.
func NewFetcher(cfg FetcherConfig) *Fetcher {
	return &Fetcher{
		cfg:      cfg.normalize(),
		render:   WithBrowser,
		now:      time.Now,
		breakers: make(map[string]*hostBreaker),
		cache:    make(map[string]cachedPosting),
	}
}

// JobPostingText is JobPostingText guarded by the host's circuit breaker.
func (f *Fetcher) JobPostingText(ctx context.Context, urlStr string) (string, error) {
	if text, ok := f.cached(urlStr); ok {
		return text, nil
	}

	breaker := f.circuitBreaker(hostOf(urlStr))
	text, err := breaker.Execute(func() (string, error) {
		return jobPostingText(ctx, urlStr, f.cfg.Options, f.render)
	})
	if err != nil {
		return "", err
	}

	f.store(urlStr, text)
	return text, nil
}

// IsCircuitOpen reports whether err was returned because a host's breaker is open.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func (f *Fetcher) circuitBreaker(host string) *gobreaker.CircuitBreaker[string] {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	if breaker, ok := f.breakers[host]; ok {
		breaker.lastUsed = now
		return breaker.cb
	}
	if len(f.breakers) >= f.cfg.MaxBreakers {
		f.evictBreakers(now)
	}

	settings := gobreaker.Settings{
		Name:        host,
		MaxRequests: f.cfg.BreakerHalfOpenMaxCalls,
		Timeout:     f.cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < f.cfg.BreakerMinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= f.cfg.BreakerFailureRatio
		},
		IsSuccessful: isHostHealthy,
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit_breaker_state_change", "host", name, "from", from.String(), "to", to.String())
		},
	}

	breaker := gobreaker.NewCircuitBreaker[string](settings)
	f.breakers[host] = &hostBreaker{cb: breaker, lastUsed: now}
	return breaker
}

// evictBreakers drops idle breakers and, if the map is still full, the least
// recently used one. An open breaker that is evicted simply starts closed
// again on the host's next request. Callers hold f.mu.
func (f *Fetcher) evictBreakers(now time.Time) {
	for host, breaker := range f.breakers {
		if now.Sub(breaker.lastUsed) > f.cfg.BreakerIdleTTL {
			delete(f.breakers, host)
		}
	}
	if len(f.breakers) < f.cfg.MaxBreakers {
		return
	}

	var oldestHost string
	var oldest time.Time
	for host, breaker := range f.breakers {
		if oldestHost == "" || breaker.lastUsed.Before(oldest) {
			oldestHost, oldest = host, breaker.lastUsed
		}
	}
	delete(f.breakers, oldestHost)
}

// isHostHealthy counts transport failures and 5xx responses against the host.
// Client-side problems (bad URL, blocked address, 404, empty page, caller
// cancellation) do not.
func isHostHealthy(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrNoContent) || errors.Is(err, ErrBlockedAddress) {
		return true
	}
	var fetchErr *Error
	if errors.As(err, &fetchErr) {
		if fetchErr.StatusCode != 0 {
			return fetchErr.StatusCode < 500
		}
		return fetchErr.Message == "invalid URL"
	}
	return false
}

func (f *Fetcher) cached(urlStr string) (string, bool) {
	if f.cfg.CacheTTL <= 0 {
		return "", false
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.cache[urlStr]
	if !ok {
		return "", false
	}
	if f.now().Sub(entry.fetched) > f.cfg.CacheTTL {
		delete(f.cache, urlStr)
		return "", false
	}
	return entry.text, true
}

func (f *Fetcher) store(urlStr, text string) {
	if f.cfg.CacheTTL <= 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	if _, ok := f.cache[urlStr]; !ok && len(f.cache) >= f.cfg.MaxCachedPostings {
		f.evictPostings(now)
	}
	f.cache[urlStr] = cachedPosting{text: text, fetched: now}
}

// evictPostings sweeps expired postings and, if the cache is still full, the
// oldest one. Callers hold f.mu.
func (f *Fetcher) evictPostings(now time.Time) {
	var oldestURL string
	var oldest time.Time
	for u, entry := range f.cache {
		if now.Sub(entry.fetched) > f.cfg.CacheTTL {
			delete(f.cache, u)
			continue
		}
		if oldestURL == "" || entry.fetched.Before(oldest) {
			oldestURL, oldest = u, entry.fetched
		}
	}
	if len(f.cache) >= f.cfg.MaxCachedPostings {
		delete(f.cache, oldestURL)
	}
}

func hostOf(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Host == "" {
		return "invalid"
	}
	return strings.ToLower(parsed.Host)
}
