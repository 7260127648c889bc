package suite

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fernweh-labs/consentgate/internal/browser"
	"github.com/fernweh-labs/consentgate/internal/config"
	"github.com/fernweh-labs/consentgate/internal/consent"
	"github.com/fernweh-labs/consentgate/internal/reporting"
)

// Runner executes the configured scenarios across the execution matrix and
// assembles the run report.
type Runner struct {
	cfg        *config.Config
	registry   *consent.Registry
	logger     *zap.Logger
	newSession SessionFactory
}

// NewRunner wires a runner. All dependencies are required.
func NewRunner(cfg *config.Config, registry *consent.Registry, logger *zap.Logger, factory SessionFactory) (*Runner, error) {
	if cfg == nil || registry == nil || logger == nil || factory == nil {
		return nil, fmt.Errorf("cannot initialize runner with nil dependencies")
	}
	return &Runner{
		cfg:        cfg,
		registry:   registry,
		logger:     logger.Named("suite"),
		newSession: factory,
	}, nil
}

// Run executes every (profile, scenario) pair. Profiles run concurrently up
// to the configured limit; scenarios within a profile run sequentially, each
// against a fresh session. The returned error covers infrastructure failures
// only; validation failures live in the report.
func (r *Runner) Run(ctx context.Context) (*reporting.RunReport, error) {
	profiles, err := r.profiles()
	if err != nil {
		return nil, err
	}
	scenarios, err := ScenariosByName(r.cfg.Suite.Scenarios)
	if err != nil {
		return nil, err
	}

	report := &reporting.RunReport{
		RunID:     uuid.New().String(),
		Target:    r.cfg.Suite.TargetURL,
		StartedAt: time.Now().UTC(),
	}
	r.logger.Info("Starting consent suite.",
		zap.String("run_id", report.RunID),
		zap.String("target", report.Target),
		zap.Int("profiles", len(profiles)),
		zap.Int("scenarios", len(scenarios)))

	results := make(chan reporting.ScenarioResult, len(profiles)*len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Suite.Concurrency)
	for _, profile := range profiles {
		g.Go(func() error {
			for _, sc := range scenarios {
				res := r.runScenario(gctx, profile, sc)
				results <- res
				if gctx.Err() != nil {
					return gctx.Err()
				}
			}
			return nil
		})
	}
	err = g.Wait()
	close(results)

	for res := range results {
		report.Results = append(report.Results, res)
	}
	// Deterministic report ordering regardless of scheduling.
	sort.Slice(report.Results, func(i, j int) bool {
		a, b := report.Results[i], report.Results[j]
		if a.Environment != b.Environment {
			return a.Environment < b.Environment
		}
		return a.Scenario < b.Scenario
	})
	report.Duration = time.Since(report.StartedAt)

	if err != nil {
		return report, fmt.Errorf("suite run aborted: %w", err)
	}

	summary := report.Summarize()
	r.logger.Info("Consent suite finished.",
		zap.String("run_id", report.RunID),
		zap.Int("passed", summary.Passed),
		zap.Int("failed", summary.Failed),
		zap.Int("skipped", summary.Skipped))
	return report, nil
}

// runScenario drives one consent flow on a fresh session and validates the
// resulting cookie jar. Failures are recorded in the result, never panicked.
func (r *Runner) runScenario(ctx context.Context, profile browser.Profile, sc Scenario) reporting.ScenarioResult {
	res := reporting.ScenarioResult{
		Environment: profile.ID,
		Scenario:    sc.Name,
	}
	log := r.logger.With(zap.String("environment", profile.ID), zap.String("scenario", sc.Name))

	driver, ui, err := r.newSession(ctx, profile)
	if err != nil {
		res.Error = fmt.Sprintf("session setup: %v", err)
		return res
	}
	defer driver.Close()

	if err := driver.ClearCookies(ctx); err != nil {
		res.Error = fmt.Sprintf("clearing cookies: %v", err)
		return res
	}
	if err := driver.Navigate(ctx, r.cfg.Suite.TargetURL); err != nil {
		res.Error = fmt.Sprintf("navigation: %v", err)
		return res
	}
	if err := ui.WaitReady(ctx); err != nil {
		res.Error = fmt.Sprintf("banner: %v", err)
		return res
	}
	if err := sc.Act(ctx, ui); err != nil {
		res.Error = fmt.Sprintf("consent action: %v", err)
		return res
	}

	poller := consent.NewPoller(consent.ConsentCookieName, r.cfg.Poll.MaxAttempts, r.cfg.Poll.Interval, log)
	snapshot, state, err := poller.AwaitCommit(ctx, driver)
	if err != nil {
		// Transport failure from the cookie source; propagated, not retried.
		res.Error = fmt.Sprintf("polling cookie store: %v", err)
		return res
	}
	res.Observed = snapshot
	res.Committed = state == consent.StateCommitted

	if cookie, ok := consent.FindCookie(snapshot, consent.ConsentCookieName); ok {
		res.Flags = consent.DecodeFlags(cookie.Value)
	}

	if res.Committed != sc.WantCommitted {
		res.Error = fmt.Sprintf("consent commit state = %s, want committed=%t", state, sc.WantCommitted)
		return res
	}
	if res.Flags != sc.WantFlags {
		res.Error = fmt.Sprintf("decoded consent flags = %+v, want %+v", res.Flags, sc.WantFlags)
		return res
	}

	exp, ok := r.registry.Lookup(profile.ID)
	if !ok {
		// Configuration gap: the environment joined the matrix before its
		// expectations were authored. Warn and skip, never fail.
		log.Warn("No cookie expectations registered for environment; skipping validation.")
		res.Skipped = true
		return res
	}

	if sc.ExpectTracking {
		res.Validation = consent.Validate(snapshot, exp)
		if !res.Validation.Valid {
			log.Warn("Required cookies missing after consent.",
				zap.Strings("missing", res.Validation.MissingRequired),
				zap.Int("observed", len(snapshot)))
		}
	} else {
		res.Validation = consent.Result{Valid: true}
		res.Unexpected = deniedTrackingPresent(snapshot, exp)
		if len(res.Unexpected) > 0 {
			log.Warn("Tracking cookies present although their category was denied.",
				zap.Strings("unexpected", res.Unexpected))
		}
	}
	return res
}

// deniedTrackingPresent returns the expectation's tracking cookies (required
// and optional, minus the consent cookie itself) that are present in the
// snapshot. After a reject, that set must be empty.
func deniedTrackingPresent(observed []consent.Cookie, exp consent.Expectation) []string {
	present := make(map[string]struct{}, len(observed))
	for _, c := range observed {
		present[c.Key()] = struct{}{}
	}
	var unexpected []string
	for _, key := range append(append([]string{}, exp.Required...), exp.Optional...) {
		if strings.HasPrefix(key, consent.ConsentCookieName+"@") {
			continue
		}
		if _, ok := present[key]; ok {
			unexpected = append(unexpected, key)
		}
	}
	return unexpected
}

// profiles resolves the configured environment list against the default
// matrix.
func (r *Runner) profiles() ([]browser.Profile, error) {
	if len(r.cfg.Suite.Environments) == 0 {
		return browser.DefaultProfiles(), nil
	}
	var out []browser.Profile
	for _, id := range r.cfg.Suite.Environments {
		p, ok := browser.ProfileByID(id)
		if !ok {
			return nil, fmt.Errorf("unknown environment %q", id)
		}
		out = append(out, p)
	}
	return out, nil
}
