package service_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/okian/wagegap/internal/adapters/dataset"
	service "github.com/okian/wagegap/internal/app"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service watching its dataset", t, func() {
		path := writeDataset(t, usaCSV)
		svc := service.New(
			service.WithLoader(dataset.NewLoader(path)),
			service.WithWatch(true, 50*time.Millisecond),
		)
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		So(svc.GetStats()["watchDataset"], ShouldEqual, true)

		Convey("When the file is rewritten", func() {
			So(os.WriteFile(path, []byte(usaCSV+"DEU,2020,18\nDEU,2021,17.5\n"), 0o600), ShouldBeNil)

			Convey("Then the snapshot should be replaced without a manual reload", func() {
				deadline := time.Now().Add(5 * time.Second)
				for time.Now().Before(deadline) && svc.Status(ctx).Rows != 8 {
					time.Sleep(25 * time.Millisecond)
				}
				st := svc.Status(ctx)
				So(st.Rows, ShouldEqual, 8)
				So(st.Version, ShouldBeGreaterThanOrEqualTo, 2)
			})
		})

		Convey("When readers query while reloads happen", func() {
			var wg sync.WaitGroup
			errs := make(chan error, 64)

			for i := 0; i < 4; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 50; j++ {
						if _, err := svc.CountryDetail(ctx, "USA"); err != nil {
							errs <- err
						}
						_ = svc.Historical(ctx)
					}
				}()
			}
			for i := 0; i < 10; i++ {
				_, _ = svc.Reload(ctx, service.TriggerManual)
			}
			wg.Wait()
			close(errs)

			Convey("Then every read should see a complete snapshot", func() {
				for err := range errs {
					So(err, ShouldBeNil)
				}
				So(svc.Status(ctx).Rows, ShouldEqual, 6)
			})
		})
	})
}
