package probe

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/wagegap/internal/domain/analytics"
	"github.com/okian/wagegap/internal/domain/model"
	"github.com/okian/wagegap/internal/domain/types"
	"github.com/okian/wagegap/pkg/logger"
)

type runner struct {
	cfg    Config
	client *HTTPClient
	log    logger.Logger

	mu     sync.Mutex
	report *Report
}

// Run executes every check against cfg.BaseURL. The returned report is
// complete even when the error is ErrVerification.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	cfg.normalize()
	r := &runner{
		cfg:    cfg,
		client: newHTTPClient(cfg.Timeout),
		log:    logger.Get().Named("probe"),
		report: &Report{StartTime: time.Now(), Failures: []Failure{}},
	}

	r.log.Info(ctx, "starting wage gap probe",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout),
	)

	// Step 1: Check service health
	if err := r.checkHealth(ctx); err != nil {
		return r.finish(), err
	}

	// Step 2: Fetch the country list
	var countries []model.CountryRef
	status, err := r.client.getJSON(ctx, r.url("/api/countries"), &countries)
	if err != nil || status != http.StatusOK {
		r.fail("countries", "", fmt.Sprintf("status %d: %v", status, err))
		return r.finish(), fmt.Errorf("%w: country list unavailable", ErrVerification)
	}
	r.checkCountryList(countries)
	r.report.Countries = len(countries)

	// Step 3: Per-country checks, concurrently
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, c := range countries {
		g.Go(func() error {
			r.checkCountry(gctx, c)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return r.finish(), fmt.Errorf("probe countries: %w", err)
	}

	// Step 4: Aggregates
	r.checkPolicy(ctx, len(countries))
	r.checkEconomic(ctx)

	rep := r.finish()
	r.log.Info(ctx, "probe completed",
		logger.Int("countries", rep.Countries),
		logger.Int("checks", rep.Checks),
		logger.Int("failures", len(rep.Failures)),
		logger.Int("projected", rep.Projected),
		logger.Int("skipped", rep.Skipped),
		logger.Duration("duration", rep.Duration),
	)
	if !rep.OK() {
		return rep, fmt.Errorf("%w: %d of %d checks failed", ErrVerification, len(rep.Failures), rep.Checks)
	}
	return rep, nil
}

func (r *runner) url(path string) string {
	return strings.TrimRight(r.cfg.BaseURL, "/") + path
}

func (r *runner) finish() *Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report.Duration = time.Since(r.report.StartTime)
	return r.report
}

func (r *runner) pass(check, country string) {
	r.mu.Lock()
	r.report.Checks++
	r.mu.Unlock()
	if r.cfg.Verbose {
		r.log.Info(context.Background(), "check passed", logger.String("check", check), logger.String("country", country))
	}
}

func (r *runner) fail(check, country, msg string) {
	r.mu.Lock()
	r.report.Checks++
	r.report.Failures = append(r.report.Failures, Failure{Check: check, Country: country, Message: msg})
	r.mu.Unlock()
	r.log.Warn(context.Background(), "check failed",
		logger.String("check", check),
		logger.String("country", country),
		logger.String("message", msg),
	)
}

// checkHealth verifies the service is running.
func (r *runner) checkHealth(ctx context.Context) error {
	var st struct {
		Message string `json:"status"`
		types.Status
	}
	code, err := r.client.getJSON(ctx, r.url("/healthz"), &st)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if code != http.StatusOK || st.Message != "ok" {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, code)
	}
	r.log.Info(ctx, "service is healthy",
		logger.String("source", st.Source),
		logger.Int("rows", st.Rows),
		logger.Any("version", st.Version),
	)
	r.pass("health", "")
	return nil
}

func (r *runner) checkCountry(ctx context.Context, c model.CountryRef) {
	code := url.PathEscape(c.Code)

	var d analytics.CountryDetail
	status, err := r.client.getJSON(ctx, r.url("/api/country-data/"+code), &d)
	switch {
	case err != nil:
		r.fail("country_detail", c.Code, err.Error())
	case status != http.StatusOK:
		r.fail("country_detail", c.Code, fmt.Sprintf("unexpected status %d", status))
	default:
		if msg := verifyDetail(c, d); msg != "" {
			r.fail("country_detail", c.Code, msg)
		} else {
			r.pass("country_detail", c.Code)
		}
	}

	var p analytics.Projection
	status, err = r.client.getJSON(ctx, r.url("/api/predict/"+code), &p)
	switch {
	case err != nil:
		r.fail("predict", c.Code, err.Error())
	case status == http.StatusNotFound && len(d.Data) < 2:
		r.mu.Lock()
		r.report.Skipped++
		r.mu.Unlock()
		r.pass("predict", c.Code)
	case status != http.StatusOK:
		r.fail("predict", c.Code, fmt.Sprintf("unexpected status %d", status))
	default:
		if msg := verifyProjection(c.Code, p); msg != "" {
			r.fail("predict", c.Code, msg)
			return
		}
		r.mu.Lock()
		r.report.Projected++
		r.mu.Unlock()
		r.pass("predict", c.Code)
	}
}

func (r *runner) checkCountryList(countries []model.CountryRef) {
	if msg := verifyCountryList(countries); msg != "" {
		r.fail("countries", "", msg)
		return
	}
	r.pass("countries", "")
}

func (r *runner) checkPolicy(ctx context.Context, countries int) {
	var s analytics.PolicySummary
	status, err := r.client.getJSON(ctx, r.url("/api/policy-impact"), &s)
	if err != nil || status != http.StatusOK {
		r.fail("policy_impact", "", fmt.Sprintf("status %d: %v", status, err))
		return
	}
	if countries == 0 {
		r.pass("policy_impact", "")
		return
	}
	if msg := verifyPolicy(s, countries); msg != "" {
		r.fail("policy_impact", "", msg)
		return
	}
	r.pass("policy_impact", "")
}

func (r *runner) checkEconomic(ctx context.Context) {
	var s analytics.EconomicSummary
	status, err := r.client.getJSON(ctx, r.url("/api/economic-impact"), &s)
	if err != nil || status != http.StatusOK {
		r.fail("economic_impact", "", fmt.Sprintf("status %d: %v", status, err))
		return
	}
	if s.GlobalStats.LatestYear < s.GlobalStats.EarliestYear {
		r.fail("economic_impact", "", fmt.Sprintf("latest year %d before earliest year %d",
			s.GlobalStats.LatestYear, s.GlobalStats.EarliestYear))
		return
	}
	r.pass("economic_impact", "")
}
