package format_test

import (
	"context"
	"testing"
	"time"

	format "github.com/okian/rollcall/internal/adapters/format"
	source "github.com/okian/rollcall/internal/adapters/source"
	identity "github.com/okian/rollcall/internal/domain/identity"
	"github.com/okian/rollcall/internal/domain/model"
	"github.com/okian/rollcall/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	m.Run()
}

func TestFormat(t *testing.T) {
	Convey("Given a seeded resolution context and a source snapshot", t, func() {
		res := identity.NewContext()
		res.Seed([]identity.Observation{
			{MatchKey: "JANE DOE", RawID: "1001"},
		})
		f := format.New(res, format.WithLocation(time.UTC))

		Convey("When formatting an event-log row with no id but a known name", func() {
			tables := &source.Tables{
				Events: []source.EventRecord{{
					FullName:  "JANE DOE",
					EventName: "Food Drive",
					EventID:   "FD-7",
					Role:      "Volunteer",
					Timestamp: "2024-08-04 10:00:00",
				}},
			}
			events, err := f.Format(context.Background(), tables)

			Convey("Then the row resolves to the directory id", func() {
				So(err, ShouldBeNil)
				So(events, ShouldHaveLength, 1)
				So(events[0].IdentityID, ShouldEqual, 1001)
				So(events[0].EventName, ShouldEqual, "Food Drive")
				So(events[0].Role, ShouldEqual, "Volunteer")
			})
		})

		Convey("When formatting a service-log row", func() {
			tables := &source.Tables{
				Services: []source.ServiceRecord{{
					FullName:  "Jane Doe",
					FirstName: "Jane",
					LastName:  "Doe",
					Timestamp: "2024-08-04 09:00:00",
				}},
			}
			events, err := f.Format(context.Background(), tables)

			Convey("Then the fixed service identifiers are injected", func() {
				So(err, ShouldBeNil)
				So(events, ShouldHaveLength, 1)
				So(events[0].IdentityID, ShouldEqual, 1001)
				So(events[0].EventName, ShouldEqual, model.RecurringServiceName)
				So(events[0].EventID, ShouldEqual, model.RecurringServiceID)
				So(events[0].Role, ShouldEqual, "")
				So(events[0].Phone, ShouldEqual, "")
				So(events[0].FormSheetOrigin, ShouldEqual, "")
			})
		})

		Convey("When a row has an unparseable timestamp", func() {
			tables := &source.Tables{
				Events: []source.EventRecord{{
					FullName:  "Jane Doe",
					EventName: "Gala",
					EventID:   "G-1",
					Timestamp: "not a date",
				}},
			}
			events, err := f.Format(context.Background(), tables)

			Convey("Then the row is skipped, not fatal", func() {
				So(err, ShouldBeNil)
				So(events, ShouldBeEmpty)
				So(f.SkippedRows(), ShouldEqual, 1)
			})
		})

		Convey("When a row has no usable name", func() {
			tables := &source.Tables{
				Services: []source.ServiceRecord{{
					FullName:  "   ",
					Timestamp: "2024-08-04 09:00:00",
				}},
			}
			events, err := f.Format(context.Background(), tables)

			Convey("Then no identity is synthesized for the unnamed record", func() {
				So(err, ShouldBeNil)
				So(events, ShouldBeEmpty)
				So(res.MappedCount(), ShouldEqual, 1)
			})
		})

		Convey("When an unknown name appears in both logs", func() {
			tables := &source.Tables{
				Events: []source.EventRecord{{
					FullName:  "New Person",
					EventName: "Gala",
					EventID:   "G-1",
					Timestamp: "2024-07-01 19:00:00",
				}},
				Services: []source.ServiceRecord{{
					FullName:  "NEW PERSON",
					Timestamp: "2024-08-04 09:00:00",
				}},
			}
			events, err := f.Format(context.Background(), tables)

			Convey("Then both rows share one freshly allocated id", func() {
				So(err, ShouldBeNil)
				So(events, ShouldHaveLength, 2)
				So(events[0].IdentityID, ShouldEqual, 1002)
				So(events[1].IdentityID, ShouldEqual, events[0].IdentityID)
			})
		})
	})

	Convey("Given timestamps in the layouts the sources use", t, func() {
		res := identity.NewContext()
		f := format.New(res, format.WithLocation(time.UTC))

		for _, raw := range []string{
			"2024-08-04T10:00:00Z",
			"2024-08-04 10:00:00",
			"2024-08-04",
			"8/4/2024 10:00:00",
			"8/4/2024 10:00",
			"8/4/2024",
			"08/04/2024",
		} {
			Convey("When parsing "+raw, func() {
				tables := &source.Tables{
					Events: []source.EventRecord{{
						FullName:  "Jane Doe",
						EventName: "Gala",
						EventID:   "G-1",
						Timestamp: raw,
					}},
				}
				events, err := f.Format(context.Background(), tables)

				Convey("Then the row survives", func() {
					So(err, ShouldBeNil)
					So(events, ShouldHaveLength, 1)
					So(events[0].Timestamp.Year(), ShouldEqual, 2024)
				})
			})
		}
	})
}
