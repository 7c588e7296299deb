package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/rollcall/internal/adapters/source"
	service "github.com/okian/rollcall/internal/app"
	"github.com/okian/rollcall/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithSourcePaths("d.csv", "e.csv", "s.csv"),
			service.WithOutputPath("out.csv"),
			service.WithLocation(time.UTC),
			service.WithScanLimit(500),
		)

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
		})
	})
}

func TestService_RunMissingSource(t *testing.T) {
	Convey("Given a service pointed at tables that do not exist", t, func() {
		dir := t.TempDir()
		svc := service.New(
			service.WithSourcePaths(
				filepath.Join(dir, "directory.csv"),
				filepath.Join(dir, "events.csv"),
				filepath.Join(dir, "services.csv"),
			),
		)

		Convey("When running a reconciliation pass", func() {
			err := svc.Run(context.Background())

			Convey("Then the run should abort with a missing-source error", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, source.ErrMissingSource), ShouldBeTrue)
			})

			Convey("And no summaries should be served", func() {
				So(svc.Summaries(context.Background()), ShouldBeEmpty)
			})
		})
	})
}

func TestService_GetStatsBeforeRun(t *testing.T) {
	Convey("Given a service that has never run", t, func() {
		svc := service.New()

		Convey("Then its stats should report an empty state", func() {
			stats := svc.GetStats()
			So(stats["summaries"], ShouldEqual, 0)
			So(stats["events"], ShouldEqual, 0)
			So(stats["lastRunID"], ShouldEqual, "")
		})
	})
}

func TestService_RosterFromStatsTable(t *testing.T) {
	const statsCSV = `id,full name,first name,last name,quarter count,month count,volunteer count,last attended,last event,total unique events,activity level
1001,Avery Reed,Avery,Reed,2,1,1,08/04/2024,Summer Picnic,2,
1002,Morgan Lane,Morgan,Lane,14,4,0,08/11/2024,Sunday Service,9,Core
1003,Jesse Park,Jesse,Park,0,0,0,09/20/2023,Autumn Fair,1,Inactive
`

	Convey("Given a service configured with a downstream stats table", t, func() {
		dir := t.TempDir()
		statsPath := filepath.Join(dir, "attendance_stats.csv")
		So(os.WriteFile(statsPath, []byte(statsCSV), 0o644), ShouldBeNil)

		now := time.Date(2024, time.August, 15, 12, 0, 0, 0, time.UTC)
		svc := service.New(
			service.WithStatsPath(statsPath),
			service.WithLocation(time.UTC),
			service.WithClock(func() time.Time { return now }),
		)

		Convey("When building the roster", func() {
			roster, err := svc.Roster(context.Background())

			Convey("Then it should succeed", func() {
				So(err, ShouldBeNil)
			})

			Convey("And keep only rows passing the inclusion rule", func() {
				So(roster, ShouldHaveLength, 2)
				So(roster[0].IdentityID, ShouldEqual, 1001)
				So(roster[1].IdentityID, ShouldEqual, 1002)
			})

			Convey("And reclassify a row whose activity level is blank", func() {
				// 2 quarter + 1 month clears the Active threshold.
				So(roster[0].ActivityLevel, ShouldEqual, "Active")
				So(roster[1].ActivityLevel, ShouldEqual, "Core")
			})
		})
	})
}
