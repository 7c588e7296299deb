package aggregate

import "time"

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithLocation sets the timezone in which calendar windows (year, quarter,
// month, service day) are evaluated.
func WithLocation(loc *time.Location) Option {
	return func(a *Aggregator) {
		if loc != nil {
			a.loc = loc
		}
	}
}
