package activity

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithCoreThreshold sets the combined count at which a person is Core.
func WithCoreThreshold(n int) Option {
	return func(c *Classifier) {
		if n > 0 {
			c.coreThreshold = n
		}
	}
}

// WithActiveThreshold sets the combined count at which a person is Active.
func WithActiveThreshold(n int) Option {
	return func(c *Classifier) {
		if n > 0 {
			c.activeThreshold = n
		}
	}
}
