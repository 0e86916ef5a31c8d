package country_test

import (
	"testing"

	"github.com/okian/wagegap/internal/domain/country"
	. "github.com/smartystreets/goconvey/convey"
)

func TestName(t *testing.T) {
	Convey("Given the static country table", t, func() {
		Convey("When looking up a mapped code", func() {
			Convey("Then the display name should be returned regardless of case or padding", func() {
				So(country.Name("USA"), ShouldEqual, "United States")
				So(country.Name(" deu "), ShouldEqual, "Germany")
				So(country.Known("jpn"), ShouldBeTrue)
			})
		})

		Convey("When looking up an unmapped code", func() {
			Convey("Then the code itself should be returned", func() {
				So(country.Name("XYZ"), ShouldEqual, "XYZ")
				So(country.Known("XYZ"), ShouldBeFalse)
			})
		})
	})
}

func TestRegions(t *testing.T) {
	Convey("Given the region table", t, func() {
		regions := country.Regions()

		Convey("Then there should be four regions of known countries", func() {
			So(len(regions), ShouldEqual, 4)
			for _, r := range regions {
				So(len(r.Codes), ShouldBeGreaterThan, 0)
				for _, c := range r.Codes {
					So(country.Known(c), ShouldBeTrue)
				}
			}
		})

		Convey("Then mutating the copy should not leak into the table", func() {
			regions[0].Codes[0] = "ZZZ"
			So(country.Regions()[0].Codes[0], ShouldEqual, "USA")
		})
	})
}
