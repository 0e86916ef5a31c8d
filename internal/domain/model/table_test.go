package model_test

import (
	"testing"

	model "github.com/okian/wagegap/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestTable(t *testing.T) {
	convey.Convey("Given a table built from raw rows", t, func() {
		rows := []model.Observation{
			{CountryCode: " usa", Year: 2015, WageGap: 18.9},
			{CountryCode: "DEU", Year: 2015, WageGap: 17.1},
			{CountryCode: "USA", Year: 2020, WageGap: 17.7},
			{CountryCode: "XYZ", CountryName: "Atlantis", Year: 2010, WageGap: 5},
		}
		tbl := model.NewTable(rows)

		convey.Convey("Then codes should be normalized and names filled", func() {
			got := tbl.Rows()
			convey.So(got[0].CountryCode, convey.ShouldEqual, "USA")
			convey.So(got[0].CountryName, convey.ShouldEqual, "United States")
			convey.So(got[3].CountryName, convey.ShouldEqual, "Atlantis")
		})

		convey.Convey("Then the caller's slice should not be retained", func() {
			rows[1].WageGap = 99
			convey.So(tbl.Rows()[1].WageGap, convey.ShouldEqual, 17.1)
		})

		convey.Convey("Then Rows should return a copy", func() {
			got := tbl.Rows()
			got[0].WageGap = -1
			convey.So(tbl.Rows()[0].WageGap, convey.ShouldEqual, 18.9)
		})

		convey.Convey("When filtering by country", func() {
			usa := tbl.Country("usa")

			convey.Convey("Then rows should come back in input order", func() {
				convey.So(len(usa), convey.ShouldEqual, 2)
				convey.So(usa[0].Year, convey.ShouldEqual, 2015)
				convey.So(usa[1].Year, convey.ShouldEqual, 2020)
				convey.So(tbl.Country("FRA"), convey.ShouldBeNil)
			})
		})

		convey.Convey("Then countries should be de-duplicated and sorted", func() {
			refs := tbl.Countries()
			convey.So(len(refs), convey.ShouldEqual, 3)
			convey.So(refs[0], convey.ShouldResemble, model.CountryRef{Code: "DEU", Name: "Germany"})
			convey.So(refs[2].Code, convey.ShouldEqual, "XYZ")
		})

		convey.Convey("Then the year range should span all rows", func() {
			lo, hi, ok := tbl.YearRange()
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(lo, convey.ShouldEqual, 2010)
			convey.So(hi, convey.ShouldEqual, 2020)
			convey.So(len(tbl.AtYear(2015)), convey.ShouldEqual, 2)
		})
	})

	convey.Convey("Given a nil or empty table", t, func() {
		var nilTbl *model.Table
		empty := model.NewTable(nil)

		convey.Convey("Then accessors should be safe and empty", func() {
			for _, tbl := range []*model.Table{nilTbl, empty} {
				convey.So(tbl.Empty(), convey.ShouldBeTrue)
				convey.So(tbl.Rows(), convey.ShouldNotBeNil)
				convey.So(len(tbl.Rows()), convey.ShouldEqual, 0)
				convey.So(len(tbl.Countries()), convey.ShouldEqual, 0)
				_, _, ok := tbl.YearRange()
				convey.So(ok, convey.ShouldBeFalse)
			}
		})
	})
}

func TestLatest(t *testing.T) {
	convey.Convey("Given observations with a duplicated latest year", t, func() {
		obs := []model.Observation{
			{Year: 2020, WageGap: 10},
			{Year: 2024, WageGap: 8},
			{Year: 2018, WageGap: 12},
			{Year: 2024, WageGap: 7.5},
		}

		convey.Convey("Then the last row in input order should win", func() {
			got, ok := model.Latest(obs)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(got.WageGap, convey.ShouldEqual, 7.5)

			at, ok := model.LastAt(obs, 2024)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(at.WageGap, convey.ShouldEqual, 7.5)
		})

		convey.Convey("Then empty input should report not found", func() {
			_, ok := model.Latest(nil)
			convey.So(ok, convey.ShouldBeFalse)
			_, ok = model.LastAt(obs, 1999)
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}
