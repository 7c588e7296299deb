// Package identity builds the authoritative name-to-id mapping across
// sources and allocates new, non-colliding numeric identifiers.
//
// There is no central sequence authority: the id space is recomputed from a
// full snapshot of every source on each run. All state lives in an explicit
// Context value constructed fresh per run, never in package globals.
package identity

import (
	"strconv"

	"github.com/okian/rollcall/pkg/metrics"
)

// defaultScanLimit bounds consecutive allocation collisions. Exceeding it
// signals a corrupted used-id set, not normal operation.
const defaultScanLimit = 20000

// Observation pairs a normalized name with the raw identifier value a source
// carries for it. RawID may be empty, numeric, or a legacy alphanumeric code.
type Observation struct {
	MatchKey string
	RawID    string
}

// Context holds one run's resolution state: the match-key mapping, the
// combined used-id set, and the allocation counter.
type Context struct {
	mapping   map[string]int
	used      map[int]struct{}
	counter   int
	scanLimit int
}

// NewContext creates an empty resolution context with configuration options.
func NewContext(opts ...Option) *Context {
	c := &Context{
		mapping:   make(map[string]int),
		used:      make(map[int]struct{}),
		counter:   1,
		scanLimit: defaultScanLimit,
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ExtractID accepts a raw identifier value only when it consists exclusively
// of decimal digits, parsing to a non-negative integer. Legacy non-numeric
// codes ("BEL123") are treated as absent, not decoded.
func ExtractID(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		// Pure digits but out of int range; treat as absent.
		return 0, false
	}
	return id, true
}

// Seed ingests observations source by source in precedence order: the first
// slice is the most authoritative. The first id seen for a match key wins;
// ids from later sources still occupy the used-id space. Observations with
// an empty match key or a non-numeric id contribute nothing to the mapping.
func (c *Context) Seed(sources ...[]Observation) {
	for _, source := range sources {
		for _, obs := range source {
			id, ok := ExtractID(obs.RawID)
			if !ok {
				continue
			}
			c.used[id] = struct{}{}
			if id >= c.counter {
				c.counter = id + 1
			}
			if obs.MatchKey == "" {
				continue
			}
			if _, mapped := c.mapping[obs.MatchKey]; !mapped {
				c.mapping[obs.MatchKey] = id
			}
		}
	}
}

// Resolve returns the id mapped to matchKey, allocating a fresh one when the
// name has never been seen with an id in any source. Callers must resolve
// rows in a stable order so repeat runs assign the same ids to new names.
func (c *Context) Resolve(matchKey string) (int, error) {
	if matchKey == "" {
		return 0, ErrEmptyMatchKey
	}
	if id, ok := c.mapping[matchKey]; ok {
		metrics.RecordIdentityResolved()
		return id, nil
	}
	id, err := c.nextID()
	if err != nil {
		return 0, err
	}
	c.mapping[matchKey] = id
	metrics.RecordIdentityResolved()
	metrics.RecordIDAllocated()
	return id, nil
}

// nextID returns the next integer not present in the used-id set and marks
// it used before returning.
func (c *Context) nextID() (int, error) {
	collisions := 0
	for {
		if _, taken := c.used[c.counter]; !taken {
			id := c.counter
			c.used[id] = struct{}{}
			c.counter++
			return id, nil
		}
		c.counter++
		collisions++
		if collisions > c.scanLimit {
			return 0, ErrAllocationExhausted
		}
	}
}

// Lookup returns the id currently mapped to matchKey without allocating.
func (c *Context) Lookup(matchKey string) (int, bool) {
	id, ok := c.mapping[matchKey]
	return id, ok
}

// MappedCount returns the number of match keys with an assigned id.
func (c *Context) MappedCount() int {
	return len(c.mapping)
}

// UsedCount returns the size of the combined used-id set.
func (c *Context) UsedCount() int {
	return len(c.used)
}
