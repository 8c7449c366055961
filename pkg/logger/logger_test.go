package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/okian/perfdiff/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		So(logger.Init(), ShouldBeNil)
		l := logger.Get()
		So(l, ShouldNotBeNil)

		Convey("When logging with fields", func() {
			ctx := context.Background()

			Convey("Then it should not panic at any level", func() {
				So(func() {
					l.Debug(ctx, "debug msg", logger.String("k", "v"))
					l.Info(ctx, "info msg", logger.Int("n", 1))
					l.Warn(ctx, "warn msg", logger.Float64("f", 1.5))
					l.Error(ctx, "error msg", logger.Any("x", struct{}{}))
				}, ShouldNotPanic)
			})
		})

		Convey("When creating a named logger", func() {
			named := l.Named("loader")

			Convey("Then it should be distinct and usable", func() {
				So(named, ShouldNotBeNil)
				So(func() { named.Info(context.Background(), "hello") }, ShouldNotPanic)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given the global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("When setting valid levels", func() {
			for _, lvl := range []string{"debug", "info", "warn", "warning", "error", ""} {
				So(logger.SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("When setting an unknown level", func() {
			err := logger.SetLevelString("loud")

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When setting a level directly", func() {
			So(func() { logger.SetLevel(slog.LevelDebug) }, ShouldNotPanic)
		})
	})
}
