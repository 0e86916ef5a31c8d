package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/wagegap/internal/adapters/dataset"
	"github.com/okian/wagegap/internal/config"
	"github.com/okian/wagegap/internal/probe"
	"github.com/okian/wagegap/pkg/logger"
	"github.com/okian/wagegap/pkg/metrics"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const gapsCSV = "LOCATION,TIME,Value\n" +
	"USA,2010,18.5\nUSA,2015,17.9\nUSA,2020,16.0\nUSA,2024,15.2\nUSA,2025,14.8\n" +
	"DEU,2010,22.0\nDEU,2015,20.5\nDEU,2020,18.0\nDEU,2024,17.1\nDEU,2025,16.5\n"

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gaps.csv")
	if err := os.WriteFile(path, []byte(gapsCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args and returns stdout.
func execute(args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			t.Setenv("WAGEGAP_ADDR", ":8080")
			t.Setenv("WAGEGAP_PREDICTION_HORIZON", "10")

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := loadConfig(context.Background(), &globalFlags{logLevel: "debug"})
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.PredictionHorizon, convey.ShouldEqual, 10)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When the log format flag is invalid", func() {
			_, err := loadConfig(context.Background(), &globalFlags{logFormat: "xml"})

			convey.Convey("Then loading should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing service wiring", func() {
			cfg := config.New()
			cfg.DatasetPath = writeDataset(t)
			cfg.PredictionHorizon = 7

			svc := newService(cfg, logger.Get())
			convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
			defer svc.Stop()

			convey.Convey("Then the configured dataset and engine should be used", func() {
				st := svc.Status(context.Background())
				convey.So(st.Source, convey.ShouldEqual, string(dataset.SourceFile))
				convey.So(st.Rows, convey.ShouldEqual, 10)

				p, err := svc.Predict(context.Background(), "DEU", 0)
				convey.So(err, convey.ShouldBeNil)
				convey.So(p.Predictions, convey.ShouldHaveLength, 7)
			})

			convey.Convey("And the HTTP handler should serve API and docs routes", func() {
				h := newHandler(context.Background(), cfg, svc, logger.Nop())
				for _, path := range []string{"/api/countries", "/api/predict/USA", "/api-docs", "/openapi.yaml", "/healthz"} {
					w := httptest.NewRecorder()
					h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
					convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				}
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should return when the context ends", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateSystemMetrics()
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing metrics manager creation", func() {
			convey.Convey("Then it should accept a custom registry", func() {
				registry := prometheus.NewRegistry()
				manager := metrics.NewManager(metrics.WithPrometheusRegistry(registry))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestServe(t *testing.T) {
	convey.Convey("Given a configured server on a free port", t, func() {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		convey.So(err, convey.ShouldBeNil)
		addr := l.Addr().String()
		convey.So(l.Close(), convey.ShouldBeNil)

		cfg := config.New()
		cfg.Addr = addr
		cfg.DatasetPath = writeDataset(t)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- runServe(ctx, cfg) }()

		convey.Convey("When it is probed and then cancelled", func() {
			var rep *probe.Report
			var perr error
			deadline := time.Now().Add(5 * time.Second)
			for time.Now().Before(deadline) {
				rep, perr = probe.Run(context.Background(), probe.Config{BaseURL: "http://" + addr, Timeout: time.Second})
				if perr == nil {
					break
				}
				time.Sleep(50 * time.Millisecond)
			}
			cancel()

			convey.Convey("Then the probe should pass and the server should stop cleanly", func() {
				convey.So(perr, convey.ShouldBeNil)
				convey.So(rep.Countries, convey.ShouldEqual, 2)
				select {
				case err := <-done:
					convey.So(err, convey.ShouldBeNil)
				case <-time.After(10 * time.Second):
					convey.So("server did not stop", convey.ShouldBeEmpty)
				}
			})
		})
	})
}

func TestReportCommands(t *testing.T) {
	convey.Convey("Given a dataset configured through the environment", t, func() {
		t.Setenv("WAGEGAP_DATASET_PATH", writeDataset(t))

		convey.Convey("When listing countries as JSON", func() {
			out, err := execute("report", "countries")

			convey.Convey("Then both countries should be printed", func() {
				convey.So(err, convey.ShouldBeNil)
				var got []map[string]string
				convey.So(json.Unmarshal([]byte(out), &got), convey.ShouldBeNil)
				convey.So(got, convey.ShouldHaveLength, 2)
				convey.So(got[0]["Country"], convey.ShouldEqual, "DEU")
			})
		})

		convey.Convey("When predicting with a custom horizon", func() {
			out, err := execute("report", "predict", "usa", "--years", "3")

			convey.Convey("Then the projection should have that length", func() {
				convey.So(err, convey.ShouldBeNil)
				var got map[string]interface{}
				convey.So(json.Unmarshal([]byte(out), &got), convey.ShouldBeNil)
				convey.So(got["country_code"], convey.ShouldEqual, "USA")
				convey.So(got["predictions"], convey.ShouldHaveLength, 3)
			})
		})

		convey.Convey("When rendering tables", func() {
			for _, args := range [][]string{
				{"report", "countries", "-o", "table"},
				{"report", "country", "DEU", "-o", "table"},
				{"report", "predict", "DEU", "-o", "table"},
				{"report", "policy", "-o", "table"},
				{"report", "economic", "-o", "table"},
			} {
				out, err := execute(args...)
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldNotBeEmpty)
			}

			convey.Convey("Then rows should be drawn as a bordered table with a header", func() {
				out, err := execute("report", "countries", "-o", "table")
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "+------+")
				convey.So(out, convey.ShouldContainSubstring, "| CODE |")
				convey.So(out, convey.ShouldContainSubstring, "| DEU  |")
			})
		})

		convey.Convey("When the country is unknown", func() {
			_, err := execute("report", "country", "XXX")

			convey.Convey("Then the command should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the output format is unknown", func() {
			_, err := execute("report", "countries", "-o", "xml")

			convey.Convey("Then the command should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "unknown output format")
			})
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When testing invalid configuration", func() {
			t.Setenv("WAGEGAP_FALLBACK_POLICY", "whatever")

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := loadConfig(context.Background(), &globalFlags{})
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When probing a server that is not running", func() {
			_, err := execute("probe", "--url", "http://127.0.0.1:1", "--timeout", "200ms")

			convey.Convey("Then the command should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}
