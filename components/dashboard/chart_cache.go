package dashboard

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// ChartKey identifies rendered chart markup. Hash digests the ChartSpec.
type ChartKey struct {
	Slot  ChartSlot
	Theme string
	Hash  string
}

// RenderCache memoizes rendered chart markup.
type RenderCache interface {
	GetOrRender(key ChartKey, render func() (string, error)) (string, error)
}

type slotTheme struct {
	slot  ChartSlot
	theme string
}

// ChartCache keeps the latest markup per slot and theme for a limited time.
// Rendering a different spec for a slot evicts the markup of the previous one,
// so the cache never grows past one entry per slot and theme.
type ChartCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
	entries map[slotTheme]cachedChart
}

type cachedChart struct {
	hash    string
	html    string
	expires time.Time
}

// NewChartCache builds a cache. A non-positive ttl disables storage.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[slotTheme]cachedChart),
	}
}

// GetOrRender returns cached markup for key or renders and stores it. Failed
// renders are not stored.
func (c *ChartCache) GetOrRender(key ChartKey, render func() (string, error)) (string, error) {
	if html, ok := c.lookup(key); ok {
		return html, nil
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	c.store(key, html)
	return html, nil
}

// Len reports the number of stored entries, expired ones included.
func (c *ChartCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ChartCache) lookup(key ChartKey) (string, bool) {
	if c == nil || c.ttl <= 0 {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	id := slotTheme{slot: key.Slot, theme: key.Theme}
	entry, ok := c.entries[id]
	if !ok || entry.hash != key.Hash {
		return "", false
	}
	if c.now().After(entry.expires) {
		delete(c.entries, id)
		return "", false
	}
	return entry.html, true
}

func (c *ChartCache) store(key ChartKey, html string) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[slotTheme{slot: key.Slot, theme: key.Theme}] = cachedChart{
		hash:    key.Hash,
		html:    html,
		expires: c.now().Add(c.ttl),
	}
}

// specHash digests the JSON form of spec.
func specHash(spec ChartSpec) string {
	b, err := json.Marshal(spec)
	if err != nil {
		return "invalid"
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
