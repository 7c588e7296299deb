package activity

import (
	"time"

	"github.com/okian/rollcall/internal/domain/model"
)

// defaultRecencyDays is the window during which an Inactive person still
// belongs on the active roster.
const defaultRecencyDays = 90

// RosterRule is the pure filter deciding which summaries feed an actionable
// check-in roster.
type RosterRule struct {
	recencyDays int
}

// RosterOption applies a configuration option to the RosterRule.
type RosterOption func(*RosterRule)

// WithRecencyDays sets how recently an Inactive person must have attended to
// stay on the roster.
func WithRecencyDays(days int) RosterOption {
	return func(r *RosterRule) {
		if days > 0 {
			r.recencyDays = days
		}
	}
}

// NewRosterRule creates a roster inclusion rule with configuration options.
func NewRosterRule(opts ...RosterOption) *RosterRule {
	r := &RosterRule{
		recencyDays: defaultRecencyDays,
	}

	// Apply all options
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Include reports whether s belongs on the active roster: Core or Active
// tier, Inactive with a last-attended date inside the recency window, or any
// attendance in the current month.
func (r *RosterRule) Include(s model.AttendanceSummary, now time.Time) bool {
	switch s.ActivityLevel {
	case LevelCore, LevelActive:
		return true
	case LevelInactive:
		if !s.LastAttendedDate.IsZero() &&
			now.Sub(s.LastAttendedDate) <= time.Duration(r.recencyDays)*24*time.Hour {
			return true
		}
	}
	return s.MonthEventCount > 0
}
