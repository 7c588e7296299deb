// Package identity builds the authoritative name-to-id mapping across
// sources and allocates new, non-colliding numeric identifiers.
package identity

// Option applies a configuration option to the Context.
type Option func(*Context)

// WithScanLimit bounds consecutive allocation collisions before the context
// reports ErrAllocationExhausted.
func WithScanLimit(limit int) Option {
	return func(c *Context) {
		if limit > 0 {
			c.scanLimit = limit
		}
	}
}
