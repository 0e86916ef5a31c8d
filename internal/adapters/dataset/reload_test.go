package dataset_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/okian/wagegap/internal/adapters/dataset"
	"github.com/okian/wagegap/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestWatcher(t *testing.T) {
	convey.Convey("Given a watched dataset file", t, func() {
		path := writeFile(t, "gaps.csv", "LOCATION,TIME,Value\nUSA,2010,18\n")
		changed := make(chan struct{}, 4)

		w, err := dataset.NewWatcher(path, 50*time.Millisecond, logger.Nop(), func(context.Context) {
			changed <- struct{}{}
		})
		convey.So(err, convey.ShouldBeNil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- w.Run(ctx) }()

		convey.Convey("When the file is rewritten", func() {
			convey.So(os.WriteFile(path, []byte("LOCATION,TIME,Value\nUSA,2011,17\n"), 0o600), convey.ShouldBeNil)

			convey.Convey("Then the change callback should fire", func() {
				select {
				case <-changed:
				case <-time.After(3 * time.Second):
					t.Fatal("no change notification")
				}
				cancel()
				convey.So(<-done, convey.ShouldBeNil)
			})
		})

		convey.Convey("When a sibling file changes", func() {
			sibling := path + ".bak"
			convey.So(os.WriteFile(sibling, []byte("x"), 0o600), convey.ShouldBeNil)

			convey.Convey("Then no callback should fire", func() {
				select {
				case <-changed:
					t.Fatal("unexpected change notification")
				case <-time.After(300 * time.Millisecond):
				}
				cancel()
				convey.So(<-done, convey.ShouldBeNil)
			})
		})
	})
}

func TestScheduler(t *testing.T) {
	convey.Convey("Given reload schedules", t, func() {
		convey.Convey("When the schedule is invalid", func() {
			_, err := dataset.NewScheduler("every now and then", func() {})

			convey.Convey("Then a schedule error should be returned", func() {
				convey.So(errors.Is(err, dataset.ErrSchedule), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the schedule is a short interval", func() {
			ran := make(chan struct{}, 8)
			s, err := dataset.NewScheduler("@every 1s", func() { ran <- struct{}{} })
			convey.So(err, convey.ShouldBeNil)
			convey.So(s.Spec(), convey.ShouldEqual, "@every 1s")

			s.Start()
			defer s.Stop()

			convey.Convey("Then the job should run", func() {
				select {
				case <-ran:
				case <-time.After(3 * time.Second):
					t.Fatal("scheduled job did not run")
				}
			})
		})
	})
}
