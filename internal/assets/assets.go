// Package assets fetches raw image bytes for the menu from HTTP URLs or the
// local filesystem and caches them for the life of the process.
package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/teamsphere/internal/logger"
)

// MaxBytes caps a single download.
const MaxBytes = 32 << 20

// Manager resolves image references. A reference is an http(s) URL, a
// file:// URL or a plain filesystem path.
type Manager struct {
	client *http.Client
	cache  *Cache
	log    *zap.Logger
}

// NewManager creates a manager. A nil client uses http.DefaultClient.
func NewManager(client *http.Client) *Manager {
	if client == nil {
		client = http.DefaultClient
	}
	return &Manager{
		client: client,
		cache:  NewCache(),
		log:    logger.Named("assets"),
	}
}

// Load returns the bytes behind ref, honouring ctx for network fetches.
func (m *Manager) Load(ctx context.Context, ref string) ([]byte, error) {
	if ref == "" {
		return nil, fmt.Errorf("empty image reference")
	}
	if data, ok := m.cache.Get(ref); ok {
		return data, nil
	}

	var (
		data []byte
		err  error
	)
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		data, err = m.fetch(ctx, ref)
	case strings.HasPrefix(ref, "file://"):
		u, perr := url.Parse(ref)
		if perr != nil {
			return nil, fmt.Errorf("parsing %s: %w", ref, perr)
		}
		data, err = os.ReadFile(u.Path)
	default:
		data, err = os.ReadFile(ref)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", ref, err)
	}

	m.cache.Set(ref, data)
	m.log.Debug("asset loaded", zap.String("ref", ref), zap.Int("bytes", len(data)))
	return data, nil
}

func (m *Manager) fetch(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, MaxBytes))
}

// Forget drops every cached entry so the next Load refetches.
func (m *Manager) Forget() {
	m.cache.Clear()
}

// Stats returns cache hit and miss counts.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
