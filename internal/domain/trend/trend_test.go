package trend_test

import (
	"errors"
	"testing"

	"github.com/okian/wagegap/internal/domain/model"
	"github.com/okian/wagegap/internal/domain/trend"
	. "github.com/smartystreets/goconvey/convey"
)

func series(pairs ...float64) []model.Observation {
	out := make([]model.Observation, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.Observation{CountryCode: "TST", Year: int(pairs[i]), WageGap: pairs[i+1]})
	}
	return out
}

func TestFitLine(t *testing.T) {
	Convey("Given the five-point declining series", t, func() {
		obs := series(2010, 18.5, 2015, 17.9, 2020, 16.0, 2024, 15.2, 2025, 14.8)
		fit, err := trend.FitLine(obs)

		Convey("Then the slope should be negative", func() {
			So(err, ShouldBeNil)
			So(fit.N, ShouldEqual, 5)
			So(fit.Slope, ShouldBeLessThan, 0)
		})

		Convey("Then the 2026 projection should be below the last value and non-negative", func() {
			pts := fit.Project(2025, 1)
			So(len(pts), ShouldEqual, 1)
			So(pts[0].Year, ShouldEqual, 2026)
			So(pts[0].Gap, ShouldBeLessThan, 14.8)
			So(pts[0].Gap, ShouldBeGreaterThanOrEqualTo, 0)
		})
	})

	Convey("Given a perfectly linear series", t, func() {
		fit, err := trend.FitLine(series(2000, 20, 2010, 10))

		Convey("Then slope and intercept should be exact", func() {
			So(err, ShouldBeNil)
			So(fit.Slope, ShouldAlmostEqual, -1.0, 1e-9)
			So(fit.Intercept, ShouldAlmostEqual, 2020.0, 1e-6)
			So(fit.At(2015), ShouldAlmostEqual, 5.0, 1e-6)
		})
	})

	Convey("Given a single observation", t, func() {
		_, err := trend.FitLine(series(2020, 12))

		Convey("Then the fit should report insufficient data", func() {
			So(errors.Is(err, trend.ErrInsufficientData), ShouldBeTrue)
		})
	})

	Convey("Given duplicate rows in one year", t, func() {
		fit, err := trend.FitLine(series(2020, 10, 2020, 12))

		Convey("Then the trend should be flat at the mean", func() {
			So(err, ShouldBeNil)
			So(fit.Slope, ShouldEqual, 0)
			So(fit.Intercept, ShouldAlmostEqual, 11.0, 1e-9)
		})
	})
}

func TestProject(t *testing.T) {
	Convey("Given a steeply declining line", t, func() {
		fit := trend.Fit{Slope: -2, Intercept: 4060, N: 5} // zero at 2030

		Convey("When projecting fifteen years", func() {
			pts := fit.Project(2025, 15)

			Convey("Then years should be consecutive starting after the latest year", func() {
				So(len(pts), ShouldEqual, 15)
				for i, p := range pts {
					So(p.Year, ShouldEqual, 2026+i)
				}
			})

			Convey("Then every gap should be clamped at zero", func() {
				for _, p := range pts {
					So(p.Gap, ShouldBeGreaterThanOrEqualTo, 0)
				}
				So(pts[14].Gap, ShouldEqual, 0)
			})
		})

		Convey("When the horizon is not positive", func() {
			So(fit.Project(2025, 0), ShouldBeEmpty)
		})
	})
}

func TestParityYear(t *testing.T) {
	Convey("Given fitted lines", t, func() {
		Convey("When the slope is negative and parity is in range", func() {
			fit := trend.Fit{Slope: -0.5, Intercept: 1020}
			y, ok := fit.ParityYear(2025, 2100)

			Convey("Then it should equal round(intercept / -slope)", func() {
				So(ok, ShouldBeTrue)
				So(y, ShouldEqual, 2040)
			})
		})

		Convey("When the slope is zero or positive", func() {
			_, okFlat := trend.Fit{Slope: 0, Intercept: 10}.ParityYear(2025, 2100)
			_, okUp := trend.Fit{Slope: 0.3, Intercept: -590}.ParityYear(2025, 2100)

			Convey("Then parity should be undefined", func() {
				So(okFlat, ShouldBeFalse)
				So(okUp, ShouldBeFalse)
			})
		})

		Convey("When parity lands after the cap", func() {
			_, ok := trend.Fit{Slope: -0.01, Intercept: 22}.ParityYear(2025, 2100)
			So(ok, ShouldBeFalse)
		})

		Convey("When parity lands before the latest observation", func() {
			_, ok := trend.Fit{Slope: -1, Intercept: 2000}.ParityYear(2025, 2100)
			So(ok, ShouldBeFalse)
		})
	})
}
