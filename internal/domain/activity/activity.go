// Package activity derives activity tiers from recent-window attendance
// counters and decides roster inclusion for summaries.
package activity

import (
	"strconv"
	"strings"
)

// Activity tier labels. The empty label means "unknown": both inputs were
// blank or non-numeric, which is not the same thing as Inactive.
const (
	LevelCore     = "Core"
	LevelActive   = "Active"
	LevelInactive = "Inactive"
	LevelUnknown  = ""
)

// Default classification thresholds on the combined counter.
const (
	defaultCoreThreshold   = 12
	defaultActiveThreshold = 3
)

// Classifier labels a person's activity tier from two independently supplied
// recent-window attendance counters. It does not read aggregator output
// itself; callers wire counters in explicitly.
type Classifier struct {
	coreThreshold   int
	activeThreshold int
}

// NewClassifier creates a classifier with configuration options.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		coreThreshold:   defaultCoreThreshold,
		activeThreshold: defaultActiveThreshold,
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Classify computes the tier for a pair of recent-window counters. A blank
// or non-numeric counter contributes 0, but when both are blank or
// non-numeric the label is empty rather than Inactive.
func (c *Classifier) Classify(e, k string) string {
	ev, eok := parseCounter(e)
	kv, kok := parseCounter(k)
	if !eok && !kok {
		return LevelUnknown
	}

	combined := ev + kv
	switch {
	case combined >= c.coreThreshold:
		return LevelCore
	case combined >= c.activeThreshold:
		return LevelActive
	default:
		return LevelInactive
	}
}

// parseCounter reads a recent-window counter, reporting whether the input
// was a usable number.
func parseCounter(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
