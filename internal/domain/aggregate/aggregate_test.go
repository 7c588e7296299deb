package aggregate_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	aggregate "github.com/okian/rollcall/internal/domain/aggregate"
	"github.com/okian/rollcall/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAggregate(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.August, 15, 12, 0, 0, 0, loc)
	agg := aggregate.New(aggregate.WithLocation(loc))

	service := func(id int, name string, ts time.Time) model.AttendanceEvent {
		return model.AttendanceEvent{
			IdentityID: id,
			FullName:   name,
			EventName:  model.RecurringServiceName,
			EventID:    model.RecurringServiceID,
			Timestamp:  ts,
		}
	}

	Convey("Given events for a single identity", t, func() {
		Convey("When two service rows fall on the same calendar day", func() {
			events := []model.AttendanceEvent{
				service(1001, "Jane Doe", time.Date(2024, time.August, 4, 9, 0, 0, 0, loc)),
				service(1001, "Jane Doe", time.Date(2024, time.August, 4, 11, 0, 0, 0, loc)),
			}
			out := agg.Aggregate(context.Background(), events, now)

			Convey("Then they count as one instance", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].MonthEventCount, ShouldEqual, 1)
				So(out[0].TotalUniqueEvents, ShouldEqual, 1)
			})
		})

		Convey("When service rows fall on different days", func() {
			events := []model.AttendanceEvent{
				service(1001, "Jane Doe", time.Date(2024, time.August, 4, 9, 0, 0, 0, loc)),
				service(1001, "Jane Doe", time.Date(2024, time.August, 11, 9, 0, 0, 0, loc)),
			}
			out := agg.Aggregate(context.Background(), events, now)

			Convey("Then each day is a distinct instance", func() {
				So(out[0].MonthEventCount, ShouldEqual, 2)
				So(out[0].TotalUniqueEvents, ShouldEqual, 2)
			})
		})

		Convey("When events span the current quarter and earlier months", func() {
			events := []model.AttendanceEvent{
				service(1001, "Jane Doe", time.Date(2024, time.July, 7, 9, 0, 0, 0, loc)),
				service(1001, "Jane Doe", time.Date(2024, time.August, 4, 9, 0, 0, 0, loc)),
				service(1001, "Jane Doe", time.Date(2024, time.February, 4, 9, 0, 0, 0, loc)),
				service(1001, "Jane Doe", time.Date(2023, time.August, 6, 9, 0, 0, 0, loc)),
			}
			out := agg.Aggregate(context.Background(), events, now)

			Convey("Then windows count only the current quarter, month, and year", func() {
				s := out[0]
				So(s.QuarterEventCount, ShouldEqual, 2) // July + August of Q3 2024
				So(s.MonthEventCount, ShouldEqual, 1)   // August 2024
				So(s.TotalUniqueEvents, ShouldEqual, 4)
				So(s.TotalUniqueEvents, ShouldBeGreaterThanOrEqualTo, s.QuarterEventCount)
				So(s.TotalUniqueEvents, ShouldBeGreaterThanOrEqualTo, s.MonthEventCount)
			})
		})

		Convey("When volunteer rows repeat for the same instance", func() {
			events := []model.AttendanceEvent{
				{IdentityID: 1001, FullName: "Jane Doe", EventName: "Food Drive", EventID: "FD1",
					Role: "Lead Volunteer", Timestamp: time.Date(2024, time.May, 1, 9, 0, 0, 0, loc)},
				{IdentityID: 1001, FullName: "Jane Doe", EventName: "Food Drive", EventID: "FD1",
					Role: "volunteer", Timestamp: time.Date(2024, time.May, 1, 13, 0, 0, 0, loc)},
				{IdentityID: 1001, FullName: "Jane Doe", EventName: "Gala", EventID: "G1",
					Role: "VOLUNTEER usher", Timestamp: time.Date(2023, time.May, 1, 9, 0, 0, 0, loc)},
			}
			out := agg.Aggregate(context.Background(), events, now)

			Convey("Then volunteer count is a row count for the current year only", func() {
				So(out[0].VolunteerCount, ShouldEqual, 2)
				So(out[0].TotalUniqueEvents, ShouldEqual, 2)
			})
		})

		Convey("When selecting last-seen metadata", func() {
			events := []model.AttendanceEvent{
				{IdentityID: 1001, FullName: "jane doe", EventName: "Picnic", EventID: "P1",
					FirstName: "jane", LastName: "doe",
					Timestamp: time.Date(2024, time.June, 1, 9, 0, 0, 0, loc)},
				{IdentityID: 1001, FullName: "Jane Doe", FirstName: "Jane", LastName: "Doe",
					EventName: model.RecurringServiceName, EventID: model.RecurringServiceID,
					Timestamp: time.Date(2024, time.August, 4, 9, 0, 0, 0, loc)},
			}
			out := agg.Aggregate(context.Background(), events, now)

			Convey("Then the most recent event supplies display name and last event", func() {
				s := out[0]
				So(s.DisplayName, ShouldEqual, "Jane Doe")
				So(s.FirstName, ShouldEqual, "Jane")
				So(s.LastAttendedDate.Equal(time.Date(2024, time.August, 4, 9, 0, 0, 0, loc)), ShouldBeTrue)
				So(s.LastEventName, ShouldEqual, model.RecurringServiceName)
			})
		})
	})

	Convey("Given events for several identities", t, func() {
		events := []model.AttendanceEvent{
			service(3, "Carol", time.Date(2024, time.August, 4, 9, 0, 0, 0, loc)),
			service(1, "Alice", time.Date(2024, time.August, 4, 9, 0, 0, 0, loc)),
			service(2, "Bob", time.Date(2024, time.August, 4, 9, 0, 0, 0, loc)),
		}

		Convey("When aggregating", func() {
			out := agg.Aggregate(context.Background(), events, now)

			Convey("Then summaries are ordered by identity id", func() {
				So(out, ShouldHaveLength, 3)
				So(out[0].IdentityID, ShouldEqual, 1)
				So(out[1].IdentityID, ShouldEqual, 2)
				So(out[2].IdentityID, ShouldEqual, 3)
			})
		})

		Convey("When the input order is shuffled", func() {
			base := agg.Aggregate(context.Background(), events, now)
			rng := rand.New(rand.NewSource(7))
			for i := 0; i < 10; i++ {
				shuffled := make([]model.AttendanceEvent, len(events))
				copy(shuffled, events)
				rng.Shuffle(len(shuffled), func(a, b int) {
					shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
				})
				out := agg.Aggregate(context.Background(), shuffled, now)

				So(out, ShouldResemble, base)
			}
		})
	})

	Convey("Given no events", t, func() {
		Convey("When aggregating", func() {
			out := agg.Aggregate(context.Background(), nil, now)

			Convey("Then no summaries are produced", func() {
				So(out, ShouldBeEmpty)
			})
		})
	})
}
