package render

import (
	"sync"

	"github.com/godeepar/mapengine/colors"
)

const (
	fillAlpha    = 0x5a
	strokeDarken = 0.75
)

// Paint is the resolved pair used to draw one color group: a translucent
// fill and an opaque darkened stroke.
type Paint struct {
	Fill   colors.RGBA
	Stroke colors.RGBA
}

// ColorCache memoizes hex string → Paint resolution, keyed by the exact hex
// string. Entries are inserted lazily and never evicted; the status palette
// is a small closed set in practice. Insertion is lock-guarded so
// concurrent tile draws can share one cache, or Warm can pre-fill it before
// the first concurrent pass.
type ColorCache struct {
	mu     sync.Mutex
	paints map[string]Paint
}

func NewColorCache() *ColorCache {
	return &ColorCache{paints: make(map[string]Paint)}
}

// Paint resolves the hex string, parsing it only on first use. Unparseable
// input resolves to the default paint rather than failing the draw.
func (c *ColorCache) Paint(hex string) Paint {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.paints[hex]; ok {
		return p
	}

	base := colors.ParseOrDefault(hex)
	p := Paint{
		Fill:   base.WithAlpha(fillAlpha),
		Stroke: base.Darken(strokeDarken),
	}
	c.paints[hex] = p
	return p
}

// Warm pre-resolves the given hex strings.
func (c *ColorCache) Warm(hexes ...string) {
	for _, hex := range hexes {
		c.Paint(hex)
	}
}

// Len reports the number of resolved entries.
func (c *ColorCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.paints)
}
