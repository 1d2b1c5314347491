// Package catalog serves the IFC reference data the editor needs for
// autocomplete: entity class names and part-of relation names. The data is
// embedded and loaded once; the Catalog is owned and passed by the hosting
// application, never a package-level variable, so tests stay isolated.
package catalog

import (
	_ "embed"
	"sort"
	"strings"
	"sync"

	"idsforge/internal/ids/model"
)

//go:embed entities.txt
var entityTable string

// Catalog holds lazily-loaded IFC reference data.
type Catalog struct {
	once     sync.Once
	entities []string
}

// New returns an empty catalog; data loads on first use.
func New() *Catalog {
	return &Catalog{}
}

func (c *Catalog) load() {
	c.once.Do(func() {
		for _, line := range strings.Split(entityTable, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			c.entities = append(c.entities, line)
		}
		sort.Strings(c.entities)
	})
}

// Entities returns all known IFC entity class names, sorted.
func (c *Catalog) Entities() []string {
	c.load()
	out := make([]string, len(c.entities))
	copy(out, c.entities)
	return out
}

// MatchEntities returns entity classes containing term, case-insensitively,
// exact and prefix matches first. A limit <= 0 means no limit.
func (c *Catalog) MatchEntities(term string, limit int) []string {
	c.load()
	term = strings.ToUpper(strings.TrimSpace(term))
	if term == "" {
		if limit <= 0 || limit >= len(c.entities) {
			return c.Entities()
		}
		out := make([]string, limit)
		copy(out, c.entities)
		return out
	}

	var exact, prefix, substring []string
	for _, e := range c.entities {
		switch {
		case e == term:
			exact = append(exact, e)
		case strings.HasPrefix(e, term):
			prefix = append(prefix, e)
		case strings.Contains(e, term):
			substring = append(substring, e)
		}
	}

	out := append(append(exact, prefix...), substring...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Relations returns the part-of relation names usable in facets.
func (c *Catalog) Relations() []string {
	out := make([]string, len(model.PartOfRelations))
	copy(out, model.PartOfRelations)
	return out
}
