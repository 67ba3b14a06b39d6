// Package offline keeps the app shell reachable with no network. It is the
// service-worker analog: a caching layer in front of the upstream origin
// that pre-caches a fixed asset manifest at install, serves network-first
// with cache fallback, and keeps exactly one cache generation live. The
// cache layer runs as its own process beside the app and shares nothing
// with it but the wire.
package offline

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Bump the version to force a full re-download of all precached assets.
// Old generations are purged on the next activation, never eagerly.
const CacheVersion = "v2"

const cachePrefix = "trip-"

// DefaultAssets is the app shell: every page and static asset needed to
// render the itinerary with no network.
var DefaultAssets = []string{
	"/",
	"/planner",
	"/emergency",
	"/manifest.json",
	// Day pages (11 days: 12/30, 12/31, 1/1-1/9)
	"/day/12%2F30",
	"/day/12%2F31",
	"/day/1%2F1",
	"/day/1%2F2",
	"/day/1%2F3",
	"/day/1%2F4",
	"/day/1%2F5",
	"/day/1%2F6",
	"/day/1%2F7",
	"/day/1%2F8",
	"/day/1%2F9",
	// Images
	"/images/hobbiton-bkg.jpg",
	// Icons
	"/icons/icon-192.svg",
	"/icons/icon-512.svg",
}

type State int

const (
	StateInstalling State = iota
	StateWaiting
	StateActivating
	StateActive
)

// Message mirrors the page-to-worker control channel.
type Message struct {
	Type string `json:"type"`
}

const MessageSkipWaiting = "SKIP_WAITING"

// cachedResponse is the on-disk snapshot of one upstream response.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        string `json:"body"` // base64
}

// Worker is one cache generation's lifecycle plus the request handler.
type Worker struct {
	version string
	root    string
	origin  string
	assets  []string
	http    *http.Client

	mu    sync.Mutex
	state State
}

func NewWorker(root, origin, version string, assets []string, httpClient *http.Client) *Worker {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if assets == nil {
		assets = DefaultAssets
	}
	return &Worker{
		version: version,
		root:    root,
		origin:  strings.TrimSuffix(origin, "/"),
		assets:  assets,
		http:    httpClient,
		state:   StateInstalling,
	}
}

func (w *Worker) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Worker) generationDir() string {
	return filepath.Join(w.root, cachePrefix+w.version)
}

// Install pre-caches the asset manifest. Any single failure fails the whole
// install and removes the partial generation, leaving the previous one live.
func (w *Worker) Install() error {
	dir := w.generationDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache generation: %w", err)
	}

	log.Printf("[offline] Pre-caching %d assets for offline use", len(w.assets))
	for _, asset := range w.assets {
		if err := w.precache(asset); err != nil {
			_ = os.RemoveAll(dir)
			return fmt.Errorf("precache %s: %w", asset, err)
		}
	}

	w.mu.Lock()
	w.state = StateWaiting
	w.mu.Unlock()
	return nil
}

func (w *Worker) precache(asset string) error {
	resp, err := w.http.Get(w.origin + asset)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return w.put(asset, resp.StatusCode, resp.Header.Get("Content-Type"), body)
}

// HandleMessage processes a control message from the page.
func (w *Worker) HandleMessage(msg Message) {
	if msg.Type == MessageSkipWaiting {
		w.SkipWaiting()
	}
}

// SkipWaiting activates a waiting worker immediately.
func (w *Worker) SkipWaiting() {
	if w.State() == StateWaiting {
		w.Activate()
	}
}

// Activate deletes every generation whose name does not match the current
// version, then starts handling requests.
func (w *Worker) Activate() {
	w.mu.Lock()
	w.state = StateActivating
	w.mu.Unlock()

	entries, err := os.ReadDir(w.root)
	if err == nil {
		current := cachePrefix + w.version
		for _, e := range entries {
			name := e.Name()
			if strings.HasPrefix(name, cachePrefix) && name != current {
				log.Printf("[offline] Deleting old cache: %s", name)
				_ = os.RemoveAll(filepath.Join(w.root, name))
			}
		}
	}

	w.mu.Lock()
	w.state = StateActive
	w.mu.Unlock()
}

// ServeHTTP is network-first with cache fallback. Non-GET requests and
// non-http(s) targets bypass the cache entirely.
func (w *Worker) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	if w.State() != StateActive || req.Method != http.MethodGet || !w.cacheableScheme(req) {
		w.passthrough(rw, req)
		return
	}

	key := requestKey(req)

	resp, err := w.fetchUpstream(req)
	if err == nil {
		defer resp.Body.Close()
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			w.serveFallback(rw, req, key)
			return
		}
		// Only 200s are cached, but every fetched response is relayed.
		if resp.StatusCode == http.StatusOK {
			if err := w.put(key, resp.StatusCode, resp.Header.Get("Content-Type"), body); err != nil {
				log.Printf("[offline] Failed to cache %s: %v", key, err)
			}
		}
		relay(rw, resp.StatusCode, resp.Header.Get("Content-Type"), body)
		return
	}

	w.serveFallback(rw, req, key)
}

func (w *Worker) serveFallback(rw http.ResponseWriter, req *http.Request, key string) {
	if cached, ok := w.get(key); ok {
		relayCached(rw, cached)
		return
	}

	// Navigations fall back to the cached root page.
	if isNavigation(req) {
		if cached, ok := w.get("/"); ok {
			relayCached(rw, cached)
			return
		}
	}

	rw.WriteHeader(http.StatusServiceUnavailable)
	_, _ = rw.Write([]byte("Offline"))
}

func (w *Worker) cacheableScheme(req *http.Request) bool {
	// The upstream origin decides the scheme; only http(s) origins are
	// proxied through the cache.
	return strings.HasPrefix(w.origin, "http://") || strings.HasPrefix(w.origin, "https://")
}

func (w *Worker) fetchUpstream(req *http.Request) (*http.Response, error) {
	url := w.origin + req.URL.RequestURI()
	upstream, err := http.NewRequestWithContext(req.Context(), req.Method, url, nil)
	if err != nil {
		return nil, err
	}
	upstream.Header = req.Header.Clone()
	return w.http.Do(upstream)
}

func (w *Worker) passthrough(rw http.ResponseWriter, req *http.Request) {
	var body io.Reader
	if req.Body != nil {
		body = req.Body
	}
	url := w.origin + req.URL.RequestURI()
	upstream, err := http.NewRequestWithContext(req.Context(), req.Method, url, body)
	if err != nil {
		rw.WriteHeader(http.StatusBadGateway)
		return
	}
	upstream.Header = req.Header.Clone()
	resp, err := w.http.Do(upstream)
	if err != nil {
		rw.WriteHeader(http.StatusServiceUnavailable)
		_, _ = rw.Write([]byte("Offline"))
		return
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	relay(rw, resp.StatusCode, resp.Header.Get("Content-Type"), data)
}

func (w *Worker) entryPath(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(w.generationDir(), hex.EncodeToString(sum[:])+".json")
}

func (w *Worker) put(key string, status int, contentType string, body []byte) error {
	entry := cachedResponse{
		Status:      status,
		ContentType: contentType,
		Body:        base64.StdEncoding.EncodeToString(body),
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return os.WriteFile(w.entryPath(key), raw, 0o644)
}

func (w *Worker) get(key string) (*cachedResponse, bool) {
	raw, err := os.ReadFile(w.entryPath(key))
	if err != nil {
		return nil, false
	}
	var entry cachedResponse
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false
	}
	return &entry, true
}

func requestKey(req *http.Request) string {
	return req.URL.RequestURI()
}

func isNavigation(req *http.Request) bool {
	return strings.Contains(req.Header.Get("Accept"), "text/html")
}

func relay(rw http.ResponseWriter, status int, contentType string, body []byte) {
	if contentType != "" {
		rw.Header().Set("Content-Type", contentType)
	}
	rw.WriteHeader(status)
	_, _ = rw.Write(body)
}

func relayCached(rw http.ResponseWriter, cached *cachedResponse) {
	body, err := base64.StdEncoding.DecodeString(cached.Body)
	if err != nil {
		rw.WriteHeader(http.StatusServiceUnavailable)
		_, _ = rw.Write([]byte("Offline"))
		return
	}
	relay(rw, cached.Status, cached.ContentType, body)
}
