// Package reporting collects scenario outcomes and writes the run report.
package reporting

import (
	"fmt"
	"io"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/fernweh-labs/consentgate/internal/consent"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ScenarioResult is the outcome of one scenario on one environment profile.
type ScenarioResult struct {
	Environment string `json:"environment"`
	Scenario    string `json:"scenario"`

	// Skipped is set when the environment has no authored expectations;
	// a configuration gap, not a failure.
	Skipped bool `json:"skipped,omitempty"`

	// Committed reports whether the consent cookie reached its committed
	// state within the polling budget.
	Committed bool `json:"committed"`

	Flags      consent.Flags    `json:"flags"`
	Validation consent.Result   `json:"validation"`
	Observed   []consent.Cookie `json:"observed,omitempty"`

	// Unexpected lists tracking cookies that were present although the
	// scenario denied their category.
	Unexpected []string `json:"unexpected,omitempty"`

	Error string `json:"error,omitempty"`
}

// Failed reports whether this result should fail the run. Skipped results
// and diagnostic-only misses never fail; transport errors and validation
// failures do.
func (r ScenarioResult) Failed() bool {
	if r.Skipped {
		return false
	}
	return r.Error != "" || !r.Validation.Valid || len(r.Unexpected) > 0
}

// RunReport is the full output of one suite invocation.
type RunReport struct {
	RunID     string           `json:"run_id"`
	Target    string           `json:"target"`
	StartedAt time.Time        `json:"started_at"`
	Duration  time.Duration    `json:"duration"`
	Results   []ScenarioResult `json:"results"`
}

// Summary aggregates a report into pass/fail/skip counts.
type Summary struct {
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// Summarize tallies the report's results.
func (r *RunReport) Summarize() Summary {
	var s Summary
	for _, res := range r.Results {
		switch {
		case res.Skipped:
			s.Skipped++
		case res.Failed():
			s.Failed++
		default:
			s.Passed++
		}
	}
	return s
}

// Reporter writes a run report to an output sink.
type Reporter interface {
	Write(report *RunReport) error
	Close() error
}

// nopWriteCloser wraps an io.Writer with a no-op Close, used for stdout.
type nopWriteCloser struct {
	io.Writer
}

func (nwc *nopWriteCloser) Close() error { return nil }

// jsonReporter streams the report as indented JSON.
type jsonReporter struct {
	writer io.WriteCloser
}

// New creates a JSON reporter for the given output path. Empty or "stdout"
// writes to standard output.
func New(outputPath string) (Reporter, error) {
	if outputPath == "" || outputPath == "stdout" {
		return &jsonReporter{writer: &nopWriteCloser{os.Stdout}}, nil
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
	}
	return &jsonReporter{writer: f}, nil
}

// NewWithWriter creates a JSON reporter over an arbitrary writer. Tests use
// this to capture output in memory.
func NewWithWriter(w io.Writer) Reporter {
	return &jsonReporter{writer: &nopWriteCloser{w}}
}

func (jr *jsonReporter) Write(report *RunReport) error {
	enc := json.NewEncoder(jr.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode run report: %w", err)
	}
	return nil
}

func (jr *jsonReporter) Close() error {
	return jr.writer.Close()
}
