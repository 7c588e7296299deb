// Package aggregate groups canonical attendance events by resolved identity
// and computes rolling counts and last-seen metadata.
package aggregate

import (
	"context"
	"sort"
	"time"

	"github.com/okian/rollcall/internal/domain/model"
)

// Aggregator computes per-identity attendance summaries. The reference time
// is always an argument so that runs are reproducible under test.
type Aggregator struct {
	loc *time.Location
}

// New creates an aggregator with configuration options.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		loc: time.Local,
	}

	// Apply all options
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Aggregate groups events by identity id and derives one summary per
// identity. Identities with zero events produce no summary. Output order is
// identity id ascending, so repeat runs over unchanged input are
// byte-identical. Input order never affects any count: instance keys are
// sets and the most-recent event is chosen by timestamp with an
// instance-key tiebreak.
func (a *Aggregator) Aggregate(ctx context.Context, events []model.AttendanceEvent, now time.Time) []model.AttendanceSummary {
	groups := make(map[int][]model.AttendanceEvent)
	for _, e := range events {
		groups[e.IdentityID] = append(groups[e.IdentityID], e)
	}

	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	nowLocal := now.In(a.loc)
	curYear := nowLocal.Year()
	curQuarter := quarterOf(nowLocal.Month())
	curMonth := nowLocal.Month()

	summaries := make([]model.AttendanceSummary, 0, len(ids))
	for _, id := range ids {
		group := groups[id]

		all := make(map[string]struct{})
		quarter := make(map[string]struct{})
		month := make(map[string]struct{})
		volunteers := 0

		for _, e := range group {
			key := e.InstanceKey(a.loc)
			all[key] = struct{}{}

			ts := e.Timestamp.In(a.loc)
			if ts.Year() == curYear {
				if quarterOf(ts.Month()) == curQuarter {
					quarter[key] = struct{}{}
				}
				if ts.Month() == curMonth {
					month[key] = struct{}{}
				}
				if e.IsVolunteer() {
					volunteers++
				}
			}
		}

		latest := mostRecent(group, a.loc)
		summaries = append(summaries, model.AttendanceSummary{
			IdentityID:        id,
			DisplayName:       latest.FullName,
			FirstName:         latest.FirstName,
			LastName:          latest.LastName,
			QuarterEventCount: len(quarter),
			MonthEventCount:   len(month),
			VolunteerCount:    volunteers,
			LastAttendedDate:  latest.Timestamp,
			LastEventName:     model.EventNameFromInstanceKey(latest.InstanceKey(a.loc)),
			TotalUniqueEvents: len(all),
		})
	}

	return summaries
}

// mostRecent selects the event with the latest timestamp, breaking ties on
// instance key so the choice is independent of input order.
func mostRecent(group []model.AttendanceEvent, loc *time.Location) model.AttendanceEvent {
	best := group[0]
	for _, e := range group[1:] {
		switch {
		case e.Timestamp.After(best.Timestamp):
			best = e
		case e.Timestamp.Equal(best.Timestamp) && e.InstanceKey(loc) > best.InstanceKey(loc):
			best = e
		}
	}
	return best
}

// quarterOf maps a calendar month to its quarter (1-4).
func quarterOf(m time.Month) int {
	return (int(m)-1)/3 + 1
}
