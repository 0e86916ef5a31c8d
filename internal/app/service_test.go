package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/wagegap/internal/adapters/dataset"
	service "github.com/okian/wagegap/internal/app"
	"github.com/okian/wagegap/internal/domain/analytics"
	"github.com/okian/wagegap/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

const usaCSV = "LOCATION,TIME,Value\n" +
	"USA,2010,18.5\nUSA,2015,17.9\nUSA,2020,16.0\nUSA,2024,15.2\nUSA,2025,14.8\n" +
	"ISL,2022,9.1\n"

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gaps.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			So(svc.MaxHorizon(), ShouldEqual, analytics.DefaultMaxHorizon)
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["horizon"], ShouldEqual, analytics.DefaultHorizon)
			So(stats["maxHorizon"], ShouldEqual, analytics.DefaultMaxHorizon)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a service over a readable dataset", t, func() {
		svc := service.New(service.WithLoader(dataset.NewLoader(writeDataset(t, usaCSV))))
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := svc.Start(ctx)

		Convey("Then it should start and serve the file", func() {
			So(err, ShouldBeNil)
			st := svc.Status(ctx)
			So(st.DataLoaded, ShouldBeTrue)
			So(st.Source, ShouldEqual, "file")
			So(st.Rows, ShouldEqual, 6)
			So(st.Countries, ShouldEqual, 2)
			So(st.Version, ShouldEqual, 1)
			So(svc.GetStats()["started"], ShouldEqual, true)
		})

		Convey("Then queries should read the snapshot", func() {
			So(len(svc.Historical(ctx)), ShouldEqual, 6)
			countries := svc.Countries(ctx)
			So(len(countries), ShouldEqual, 2)
			So(countries[0].Code, ShouldEqual, "ISL")

			d, err := svc.CountryDetail(ctx, "usa")
			So(err, ShouldBeNil)
			So(d.CurrentGap, ShouldEqual, 14.8)

			p, err := svc.Predict(ctx, "USA", 0)
			So(err, ShouldBeNil)
			So(len(p.Predictions), ShouldEqual, analytics.DefaultHorizon)

			_, err = svc.Predict(ctx, "ISL", 0)
			So(errors.Is(err, analytics.ErrInsufficientData), ShouldBeTrue)

			_, err = svc.PolicyImpact(ctx)
			So(err, ShouldBeNil)
			_, err = svc.EconomicImpact(ctx)
			So(err, ShouldBeNil)
		})

		Convey("When starting again", func() {
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then it should not reload", func() {
				So(svc.Status(ctx).Version, ShouldEqual, 1)
			})
		})
	})

	Convey("Given a service whose dataset is missing", t, func() {
		ctx := context.Background()
		missing := filepath.Join(t.TempDir(), "missing.csv")

		Convey("When the fallback policy is sample", func() {
			svc := service.New(service.WithLoader(dataset.NewLoader(missing)))
			defer svc.Stop()

			Convey("Then it should still start and serve the sample", func() {
				So(svc.Start(ctx), ShouldBeNil)
				st := svc.Status(ctx)
				So(st.Source, ShouldEqual, "sample")
				So(st.DataLoaded, ShouldBeTrue)
				So(st.LastError, ShouldNotBeEmpty)
				So(len(svc.Countries(ctx)), ShouldEqual, len(dataset.SampleCodes()))
			})
		})

		Convey("When the fallback policy is empty", func() {
			svc := service.New(service.WithLoader(dataset.NewLoader(missing, dataset.WithFallback(dataset.FallbackEmpty))))
			defer svc.Stop()

			Convey("Then aggregates should report no data", func() {
				So(svc.Start(ctx), ShouldBeNil)
				So(svc.Status(ctx).DataLoaded, ShouldBeFalse)
				So(svc.Historical(ctx), ShouldBeEmpty)
				_, err := svc.PolicyImpact(ctx)
				So(errors.Is(err, analytics.ErrNoData), ShouldBeTrue)
				_, err = svc.CountryDetail(ctx, "USA")
				So(errors.Is(err, analytics.ErrNotFound), ShouldBeTrue)
			})
		})
	})

	Convey("Given an invalid reload schedule", t, func() {
		svc := service.New(
			service.WithLoader(dataset.NewLoader(writeDataset(t, usaCSV))),
			service.WithReloadSchedule("whenever"),
		)

		Convey("Then Start should fail", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, dataset.ErrSchedule), ShouldBeTrue)
		})
	})
}

func TestService_Reload(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		path := writeDataset(t, usaCSV)
		svc := service.New(service.WithLoader(dataset.NewLoader(path)))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When the dataset changes and is reloaded", func() {
			So(os.WriteFile(path, []byte("LOCATION,TIME,Value\nDEU,2020,18\n"), 0o600), ShouldBeNil)
			snap, err := svc.Reload(ctx, service.TriggerManual)

			Convey("Then the new snapshot should be served", func() {
				So(err, ShouldBeNil)
				So(snap.Version, ShouldEqual, 2)
				So(svc.Status(ctx).Rows, ShouldEqual, 1)
				So(svc.Countries(ctx)[0].Code, ShouldEqual, "DEU")
			})
		})

		Convey("When the dataset is emptied down to its header", func() {
			So(os.WriteFile(path, []byte("LOCATION,TIME,Value\n"), 0o600), ShouldBeNil)
			snap, err := svc.Reload(ctx, service.TriggerManual)

			Convey("Then an empty snapshot from the file should be served", func() {
				So(err, ShouldBeNil)
				So(snap.Version, ShouldEqual, 2)
				st := svc.Status(ctx)
				So(st.Source, ShouldEqual, "file")
				So(st.DataLoaded, ShouldBeFalse)
				So(st.Rows, ShouldEqual, 0)
				So(st.LastError, ShouldBeEmpty)
				So(svc.Countries(ctx), ShouldBeEmpty)
			})
		})

		Convey("When the dataset disappears and is reloaded", func() {
			So(os.Remove(path), ShouldBeNil)
			snap, err := svc.Reload(ctx, service.TriggerManual)

			Convey("Then the previous snapshot should be kept", func() {
				So(errors.Is(err, dataset.ErrOpen), ShouldBeTrue)
				So(snap.Version, ShouldEqual, 1)
				st := svc.Status(ctx)
				So(st.Source, ShouldEqual, "file")
				So(st.Rows, ShouldEqual, 6)
				So(st.LastError, ShouldNotBeEmpty)
				So(svc.GetStats()["lastError"], ShouldEqual, st.LastError)
				So(svc.GetStats()["loads"], ShouldEqual, int64(2))
			})
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(service.WithLoader(dataset.NewLoader(writeDataset(t, usaCSV))))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
			})

			Convey("And stopping again should be a no-op", func() {
				So(func() { svc.Stop() }, ShouldNotPanic)
			})
		})
	})
}
