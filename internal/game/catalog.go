package game

import (
	"log/slog"
	"maps"
	"slices"
)

// UnknownHeroName is shown for hero ids missing from the catalog
const UnknownHeroName = "Unknown Hero"

// Catalog is the bidirectional hero id/name mapping.
// It is built once at startup and never mutated afterwards, so it is safe
// for concurrent readers without locking.
type Catalog struct {
	byID   map[int]string
	byName map[string]int
}

// NewCatalog builds a catalog from a name-keyed hero listing
func NewCatalog(heroes map[string]Hero) *Catalog {
	c := &Catalog{
		byID:   make(map[int]string, len(heroes)),
		byName: make(map[string]int, len(heroes)),
	}
	// names sorted so a shared id always resolves to the same name
	for _, name := range slices.Sorted(maps.Keys(heroes)) {
		id := heroes[name].ID
		c.byName[name] = id
		if existing, ok := c.byID[id]; ok {
			slog.Warn("Duplicate hero id in catalog", "id", id, "kept", existing, "ignored", name)
			continue
		}
		c.byID[id] = name
	}
	return c
}

// Name returns the hero name for an id
func (c *Catalog) Name(id int) (string, bool) {
	if c == nil {
		return "", false
	}
	name, ok := c.byID[id]
	return name, ok
}

// NameOrUnknown returns the hero name, or UnknownHeroName for ids the
// catalog predates
func (c *Catalog) NameOrUnknown(id int) string {
	if name, ok := c.Name(id); ok {
		return name
	}
	return UnknownHeroName
}

// ID returns the hero id for a name
func (c *Catalog) ID(name string) (int, bool) {
	if c == nil {
		return 0, false
	}
	id, ok := c.byName[name]
	return id, ok
}

// Len returns the number of heroes in the catalog
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.byID)
}
