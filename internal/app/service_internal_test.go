package service

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStatusDuringReload(t *testing.T) {
	Convey("Given a reload in progress", t, func() {
		s := New()
		msg := errors.New("open failed").Error()
		s.lastErr.Store(&msg)

		s.reloadMu.Lock()
		defer s.reloadMu.Unlock()

		Convey("When status is read concurrently", func() {
			done := make(chan string, 1)
			go func() { done <- s.Status(context.Background()).LastError }()

			Convey("Then it should answer without waiting for the reload", func() {
				select {
				case got := <-done:
					So(got, ShouldEqual, "open failed")
				case <-time.After(2 * time.Second):
					So("status blocked on reload", ShouldBeEmpty)
				}
			})
		})
	})
}
