// Package cities ranks city names for location autocomplete.
package cities

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

const (
	// DefaultMaxResults bounds a suggestion list when the caller passes no limit.
	DefaultMaxResults = 10
	// MinQueryLength is the shortest query that produces suggestions.
	MinQueryLength = 2
)

// Catalog is a lazily loaded, read-only list of city names. The list is read on first
// use and shared by all callers afterwards.
type Catalog struct {
	path string
	log  zerolog.Logger

	once  sync.Once
	names []string
	lower []string
}

// NewCatalog returns a catalog backed by the city list at path. Nothing is read until the
// first call to Names or Suggest.
func NewCatalog(path string, log zerolog.Logger) *Catalog {
	return &Catalog{
		path: path,
		log:  log.With().Str("component", "cities").Logger(),
	}
}

// NewCatalogFromNames returns an already loaded catalog.
func NewCatalogFromNames(names []string, log zerolog.Logger) *Catalog {
	c := &Catalog{log: log.With().Str("component", "cities").Logger()}
	c.once.Do(func() { c.set(normalize(names)) })
	return c
}

func (c *Catalog) load() {
	names, err := LoadFile(c.path)
	if err != nil {
		c.log.Error().Err(err).Str("path", c.path).Msg("error loading city list, falling back to built-in list")
		names = Fallback()
	} else {
		c.log.Info().Int("count", len(names)).Str("path", c.path).Msg("loaded city list")
	}
	c.set(names)
}

func (c *Catalog) set(names []string) {
	c.names = names
	c.lower = make([]string, len(names))
	for i, n := range names {
		c.lower[i] = strings.ToLower(n)
	}
}

// Names returns the sorted city list. Callers must not modify it.
func (c *Catalog) Names() []string {
	c.once.Do(c.load)
	return c.names
}

// Suggest returns up to max city names matching query. Names starting with the query come
// first, then names containing it, then fuzzy matches. Queries shorter than MinQueryLength
// yield an empty list. Suggest never fails: internal errors produce an empty list.
func (c *Catalog) Suggest(query string, max int) (out []string) {
	if utf8.RuneCountInString(query) < MinQueryLength {
		return []string{}
	}
	if max <= 0 {
		max = DefaultMaxResults
	}

	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("panic", r).Str("query", query).Msg("city suggestion failed")
			out = []string{}
		}
	}()

	names := c.Names()
	q := strings.ToLower(query)

	var prefix, contains, rest []string
	for i, name := range names {
		switch {
		case strings.HasPrefix(c.lower[i], q):
			prefix = append(prefix, name)
		case strings.Contains(c.lower[i], q):
			contains = append(contains, name)
		default:
			rest = append(rest, name)
		}
	}

	ranked := make([]string, 0, max)
	seen := make(map[string]struct{}, max)
	add := func(names []string) bool {
		for _, n := range names {
			if len(ranked) == max {
				return false
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			ranked = append(ranked, n)
		}
		return len(ranked) < max
	}

	if add(prefix) && add(contains) {
		add(closeMatches(query, rest, max, DefaultCutoff))
	}
	return ranked
}
