package config_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/okian/rollcall/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"ROLLCALL_CONFIG",
		"ROLLCALL_LOG_LEVEL",
		"ROLLCALL_ADDR",
		"ROLLCALL_DIRECTORY_PATH",
		"ROLLCALL_EVENT_LOG_PATH",
		"ROLLCALL_SERVICE_LOG_PATH",
		"ROLLCALL_STATS_PATH",
		"ROLLCALL_OUTPUT_PATH",
		"ROLLCALL_TIMEZONE",
		"ROLLCALL_CORE_THRESHOLD",
		"ROLLCALL_ACTIVE_THRESHOLD",
		"ROLLCALL_ROSTER_RECENCY_DAYS",
		"ROLLCALL_ID_SCAN_LIMIT",
	} {
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.DirectoryPath, convey.ShouldEqual, "directory.csv")
				convey.So(cfg.CoreThreshold, convey.ShouldEqual, 12)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("ROLLCALL_DIRECTORY_PATH", "/data/people.csv")
			_ = os.Setenv("ROLLCALL_TIMEZONE", "America/Chicago")
			_ = os.Setenv("ROLLCALL_CORE_THRESHOLD", "20")
			_ = os.Setenv("ROLLCALL_ROSTER_RECENCY_DAYS", "30")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DirectoryPath, convey.ShouldEqual, "/data/people.csv")
				convey.So(cfg.Timezone, convey.ShouldEqual, "America/Chicago")
				convey.So(cfg.CoreThreshold, convey.ShouldEqual, 20)
				convey.So(cfg.RosterRecencyDays, convey.ShouldEqual, 30)
			})

			convey.Convey("And the timezone should resolve", func() {
				convey.So(err, convey.ShouldBeNil)
				loc, lerr := cfg.Location()
				convey.So(lerr, convey.ShouldBeNil)
				convey.So(loc.String(), convey.ShouldEqual, "America/Chicago")
			})
		})

		convey.Convey("When a required path is cleared", func() {
			_ = os.Setenv("ROLLCALL_DIRECTORY_PATH", "")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the timezone is not a real zone", func() {
			_ = os.Setenv("ROLLCALL_TIMEZONE", "Mars/Olympus")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When thresholds are inverted", func() {
			_ = os.Setenv("ROLLCALL_CORE_THRESHOLD", "2")
			_ = os.Setenv("ROLLCALL_ACTIVE_THRESHOLD", "5")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestLocationDefault(t *testing.T) {
	convey.Convey("Given an empty timezone", t, func() {
		cfg := config.New()

		convey.Convey("Then Location falls back to the local zone", func() {
			loc, err := cfg.Location()
			convey.So(err, convey.ShouldBeNil)
			convey.So(loc, convey.ShouldEqual, time.Local)
		})
	})
}
