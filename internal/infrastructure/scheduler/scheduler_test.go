package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestScheduler(t *testing.T) {
	Convey("Given a Scheduler", t, func() {
		Convey("New function", func() {
			scheduler := New(context.Background(), nil)

			Convey("It should create a new scheduler successfully", func() {
				So(scheduler, ShouldNotBeNil)
				So(scheduler.cron, ShouldNotBeNil)
				So(scheduler.onError, ShouldNotBeNil)
			})
		})

		Convey("AddJob function", func() {
			Convey("When adding a job with a valid cron spec", func() {
				scheduler := New(context.Background(), nil)

				var runs int32
				err := scheduler.AddJob("* * * * * *", func(ctx context.Context) error {
					atomic.AddInt32(&runs, 1)
					return nil
				})

				Convey("It should run the job", func() {
					So(err, ShouldBeNil)

					scheduler.Start()
					time.Sleep(2 * time.Second)
					scheduler.Stop()

					So(atomic.LoadInt32(&runs), ShouldBeGreaterThan, 0)
				})
			})

			Convey("When adding a job with an invalid cron spec", func() {
				scheduler := New(context.Background(), nil)
				err := scheduler.AddJob("invalid spec", func(ctx context.Context) error { return nil })

				Convey("It should return an error", func() {
					So(err, ShouldNotBeNil)
					So(err.Error(), ShouldContainSubstring, "expected exactly 6 fields")
				})
			})

			Convey("When a job fails", func() {
				var reported atomic.Value
				scheduler := New(context.Background(), func(err error) {
					reported.Store(err)
				})

				err := scheduler.AddJob("* * * * * *", func(ctx context.Context) error {
					return errors.New("table failed")
				})
				So(err, ShouldBeNil)

				Convey("It should pass the error to onError", func() {
					scheduler.Start()
					time.Sleep(2 * time.Second)
					scheduler.Stop()

					got, ok := reported.Load().(error)
					So(ok, ShouldBeTrue)
					So(got.Error(), ShouldEqual, "table failed")
				})
			})

			Convey("When the job inspects its context", func() {
				type key struct{}
				ctx := context.WithValue(context.Background(), key{}, "run")
				scheduler := New(ctx, nil)

				var seen atomic.Value
				err := scheduler.AddJob("* * * * * *", func(ctx context.Context) error {
					seen.Store(ctx.Value(key{}))
					return nil
				})
				So(err, ShouldBeNil)

				Convey("It should receive the scheduler context", func() {
					scheduler.Start()
					time.Sleep(2 * time.Second)
					scheduler.Stop()

					So(seen.Load(), ShouldEqual, "run")
				})
			})
		})

		Convey("Start and Stop methods", func() {
			scheduler := New(context.Background(), nil)

			var runs int32
			err := scheduler.AddJob("* * * * * *", func(ctx context.Context) error {
				atomic.AddInt32(&runs, 1)
				return nil
			})
			So(err, ShouldBeNil)

			Convey("It should not run jobs after stopping", func() {
				So(func() { scheduler.Start() }, ShouldNotPanic)
				time.Sleep(2 * time.Second)
				So(func() { scheduler.Stop() }, ShouldNotPanic)

				after := atomic.LoadInt32(&runs)
				So(after, ShouldBeGreaterThan, 0)

				time.Sleep(2 * time.Second)
				So(atomic.LoadInt32(&runs), ShouldEqual, after)
			})
		})
	})
}
