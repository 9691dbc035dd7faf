// Package gateway is an offline-capable caching front for the API and
// the application shell.
//
// API responses are served network-first: connectivity always wins so
// that financial data reflects the latest server state, and a short
// TTL on the cached fallback bounds how far offline views can drift.
// Shell assets are served cache-first since they only change with a
// deployment.
package gateway

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// StaticStoreName and APIStoreName are the current cache store
	// names. Activate garbage-collects every store with another name.
	StaticStoreName = "static-v1"
	APIStoreName    = "api-v1"

	// TimestampHeader is stamped onto cached API responses and holds
	// the epoch millisecond time the response was stored.
	TimestampHeader = "sw-cache-timestamp"

	// DefaultAPITTL is how long a cached API response may be served
	// after the network becomes unavailable.
	DefaultAPITTL = 5 * time.Minute
)

// DefaultPrecacheManifest is the application shell cached during
// Install.
var DefaultPrecacheManifest = []string{
	"/",
	"/assets/index.js",
	"/assets/index.css",
	"/manifest.webmanifest",
}

// Options configures a Gateway.
type Options struct {
	// Upstream is the origin requests are forwarded to. Mandatory.
	Upstream *url.URL

	// Host is the host the gateway serves. Requests for other hosts
	// bypass the cache. Optional.
	Host string

	// BypassPatterns are path globs that are never cached.
	BypassPatterns []string

	// PrecacheManifest overrides DefaultPrecacheManifest.
	PrecacheManifest []string

	// Client overrides the HTTP client used for upstream requests.
	Client *http.Client

	// Now overrides the clock, used in tests.
	Now func() time.Time

	// APITTL overrides DefaultAPITTL.
	APITTL time.Duration
}

// Gateway intercepts requests and applies a per-class caching
// strategy. It implements http.Handler.
type Gateway struct {
	upstream *url.URL
	host     string
	bypass   []string
	manifest []string
	client   *http.Client
	now      func() time.Time
	ttl      time.Duration

	storage *Storage
	static  *Store
	api     *Store
}

// New returns a Gateway with its two cache stores opened.
func New(opts Options) *Gateway {
	g := &Gateway{
		upstream: opts.Upstream,
		host:     opts.Host,
		bypass:   opts.BypassPatterns,
		manifest: opts.PrecacheManifest,
		client:   opts.Client,
		now:      opts.Now,
		ttl:      opts.APITTL,
		storage:  NewStorage(),
	}

	if g.manifest == nil {
		g.manifest = DefaultPrecacheManifest
	}

	if g.client == nil {
		g.client = &http.Client{Timeout: 30 * time.Second}
	}

	if g.now == nil {
		g.now = time.Now
	}

	if g.ttl == 0 {
		g.ttl = DefaultAPITTL
	}

	g.static = g.storage.Open(StaticStoreName)
	g.api = g.storage.Open(APIStoreName)

	return g
}

// Storage exposes the store registry. Used by tests and by Activate.
func (g *Gateway) Storage() *Storage {
	return g.storage
}

// Install pre-populates the static store with the application shell.
//
// A failing asset is logged and skipped, installation proceeds
// regardless: a partial shell cache is better than none.
func (g *Gateway) Install(ctx context.Context) error {
	for _, path := range g.manifest {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.upstream.JoinPath(path).String(), nil)
		if err != nil {
			return err
		}

		resp, err := g.client.Do(req)
		if err != nil {
			log.Warn().Str("asset", path).Err(err).Msg("precache fetch failed")
			continue
		}

		entry, err := newEntry(resp, g.now())
		if err != nil || entry.Status != http.StatusOK {
			log.Warn().Str("asset", path).Int("status", resp.StatusCode).Msg("precache skipped")
			continue
		}

		g.static.Put(path, entry)
	}

	log.Info().Int("assets", g.static.Len()).Msg("gateway installed")
	return nil
}

// Activate deletes every cache store whose name is neither the
// current static nor API store name.
func (g *Gateway) Activate() {
	for _, name := range g.storage.Names() {
		if name != StaticStoreName && name != APIStoreName {
			g.storage.Delete(name)
			log.Info().Str("store", name).Msg("stale cache store deleted")
		}
	}
}

// ServeHTTP dispatches the request to the strategy for its class.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch Classify(r, g.host, g.bypass) {
	case ClassBypass:
		g.passThrough(w, r)
	case ClassNavigate:
		g.serveNavigation(w, r)
	case ClassAPI:
		g.serveAPI(w, r)
	default:
		g.serveStatic(w, r)
	}
}

// passThrough forwards the request without touching any cache.
func (g *Gateway) passThrough(w http.ResponseWriter, r *http.Request) {
	resp, err := g.forward(r)
	if err != nil {
		http.Error(w, "Bad gateway", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	copyHeader(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

// serveNavigation is network-first with the cached application shell
// as offline fallback.
func (g *Gateway) serveNavigation(w http.ResponseWriter, r *http.Request) {
	resp, err := g.forward(r)
	if err == nil {
		defer resp.Body.Close()
		copyHeader(w.Header(), resp.Header)
		w.WriteHeader(resp.StatusCode)
		_, _ = io.Copy(w, resp.Body)
		return
	}

	if entry, ok := g.static.Get("/"); ok {
		writeEntry(w, entry)
		return
	}

	http.Error(w, "Network unavailable", http.StatusServiceUnavailable)
}

// serveAPI is network-first. Successful GET responses are stored with
// a timestamp, without blocking the live response. On network failure
// a cached response is served while it is fresher than the TTL.
func (g *Gateway) serveAPI(w http.ResponseWriter, r *http.Request) {
	key := r.URL.RequestURI()

	resp, err := g.forward(r)
	if err == nil {
		defer resp.Body.Close()

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			http.Error(w, "Bad gateway", http.StatusBadGateway)
			return
		}

		if r.Method == http.MethodGet && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			entry := &Entry{
				Status:   resp.StatusCode,
				Header:   resp.Header.Clone(),
				Body:     body,
				StoredAt: g.now(),
			}
			entry.Header.Set(TimestampHeader, strconv.FormatInt(entry.StoredAt.UnixMilli(), 10))

			// Caching must not add latency to the live response. A
			// near-simultaneous request may still miss the cache, which
			// is acceptable within the staleness tolerance.
			go g.api.Put(key, entry)
		}

		copyHeader(w.Header(), resp.Header)
		w.WriteHeader(resp.StatusCode)
		_, _ = w.Write(body)
		return
	}

	entry, ok := g.api.Get(key)
	if ok && g.fresh(entry) {
		writeEntry(w, entry)
		return
	}

	http.Error(w, "Network unavailable", http.StatusServiceUnavailable)
}

// serveStatic is cache-first. Missing assets are fetched and cached
// when the upstream responds with 200.
func (g *Gateway) serveStatic(w http.ResponseWriter, r *http.Request) {
	key := r.URL.RequestURI()

	if entry, ok := g.static.Get(key); ok {
		writeEntry(w, entry)
		return
	}

	resp, err := g.forward(r)
	if err != nil {
		if isDocument(r) {
			if entry, ok := g.static.Get("/"); ok {
				writeEntry(w, entry)
				return
			}
		}

		http.Error(w, "Asset unavailable", http.StatusNotFound)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		http.Error(w, "Bad gateway", http.StatusBadGateway)
		return
	}

	if resp.StatusCode == http.StatusOK {
		g.static.Put(key, &Entry{
			Status:   resp.StatusCode,
			Header:   resp.Header.Clone(),
			Body:     body,
			StoredAt: g.now(),
		})
	}

	copyHeader(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(body)
}

// fresh reports whether a cached API entry is within the TTL. The
// stamped header is authoritative, StoredAt is the fallback.
func (g *Gateway) fresh(entry *Entry) bool {
	storedAt := entry.StoredAt

	if stamp := entry.Header.Get(TimestampHeader); stamp != "" {
		if millis, err := strconv.ParseInt(stamp, 10, 64); err == nil {
			storedAt = time.UnixMilli(millis)
		}
	}

	return g.now().Sub(storedAt) <= g.ttl
}

// forward sends the request to the upstream origin.
func (g *Gateway) forward(r *http.Request) (*http.Response, error) {
	target := g.upstream.JoinPath(r.URL.Path)
	target.RawQuery = r.URL.RawQuery

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target.String(), r.Body)
	if err != nil {
		return nil, err
	}
	copyHeader(req.Header, r.Header)

	return g.client.Do(req)
}

func newEntry(resp *http.Response, now time.Time) (*Entry, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Entry{
		Status:   resp.StatusCode,
		Header:   resp.Header.Clone(),
		Body:     body,
		StoredAt: now,
	}, nil
}

func writeEntry(w http.ResponseWriter, entry *Entry) {
	copyHeader(w.Header(), entry.Header)
	w.WriteHeader(entry.Status)
	_, _ = w.Write(entry.Body)
}

func copyHeader(dst, src http.Header) {
	for key, values := range src {
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}
