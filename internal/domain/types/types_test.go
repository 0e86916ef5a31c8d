package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/okian/wagegap/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStatus(t *testing.T) {
	Convey("Given a Status without a load error", t, func() {
		st := types.Status{DataLoaded: true, Rows: 40, Countries: 8, Source: "sample", Version: 1}

		Convey("When encoding it", func() {
			b, err := json.Marshal(st)

			Convey("Then last_error should be omitted and data_loaded present", func() {
				So(err, ShouldBeNil)
				So(string(b), ShouldContainSubstring, `"data_loaded":true`)
				So(string(b), ShouldNotContainSubstring, "last_error")
			})
		})

		Convey("When a load error is set", func() {
			st.LastError = "dataset open failed"
			b, err := json.Marshal(st)

			Convey("Then it should be reported", func() {
				So(err, ShouldBeNil)
				So(string(b), ShouldContainSubstring, `"last_error":"dataset open failed"`)
			})
		})
	})
}
