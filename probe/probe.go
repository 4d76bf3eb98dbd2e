// Package probe implements the environment doctor: live checks that
// tell an operator whether the pieces a roast environment names are
// actually reachable and usable. Probes report findings as data, so
// one broken dependency never hides the state of the others.
package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/roastproject/roast-env/constants"
	"github.com/roastproject/roast-env/models/common"
	"golang.org/x/sync/errgroup"
)

// Probe is one doctor check.
type Probe interface {
	// Name identifies the probe in output, e.g. "postgres".
	Name() string

	// Kind groups probes for display: "filesystem", "network" or
	// "offline".
	Kind() string

	// Check runs the probe. Problems come back inside the Result,
	// never as an error; a probe that cannot run is a failing probe.
	Check(ctx context.Context) Result
}

// Result is one probe's finding.
type Result struct {
	Name    string        `json:"name"`
	Status  string        `json:"status"`
	Detail  string        `json:"detail"`
	Elapsed time.Duration `json:"elapsed"`
}

func (r Result) String() string {
	return fmt.Sprintf("%-12s %-8s %s", r.Name, r.Status, r.Detail)
}

// OK returns true unless the probe failed. Warnings and skips do not
// make a doctor run unhealthy.
func (r Result) OK() bool {
	return r.Status != constants.ProbeFail
}

// result stamps a finding with the probe's name and elapsed time.
func result(p Probe, start time.Time, status, detail string) Result {
	return Result{
		Name:    p.Name(),
		Status:  status,
		Detail:  detail,
		Elapsed: time.Since(start),
	}
}

// Runner executes probes concurrently. The fan-out follows
// RAYON_NUM_THREADS, the same bound the operator configured for
// roast itself.
type Runner struct {
	// Timeout bounds each probe. Zero means DefaultProbeTimeout.
	Timeout time.Duration

	// Limit caps concurrent probes. Values below one mean no cap.
	Limit int

	probes []Probe
}

// NewRunner builds a runner over the standard probes for settings.
func NewRunner(settings *common.Settings) *Runner {
	return &Runner{
		Timeout: constants.DefaultProbeTimeout,
		Limit:   settings.Runtime.EffectiveThreads(),
		probes: []Probe{
			NewGitHubTokenProbe(settings),
			NewExportPathProbe(settings),
			NewPostgresProbe(settings),
			NewS3Probe(settings),
		},
	}
}

// Add appends probes to the run.
func (r *Runner) Add(probes ...Probe) {
	r.probes = append(r.probes, probes...)
}

// Probes returns the probes the runner will execute, in run order.
func (r *Runner) Probes() []Probe {
	return r.probes
}

// Run executes every probe and returns results in probe order.
func (r *Runner) Run(ctx context.Context) []Result {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultProbeTimeout
	}
	limit := r.Limit
	if limit < 1 {
		limit = -1
	}

	results := make([]Result, len(r.probes))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(limit)
	for i, p := range r.probes {
		i, p := i, p
		group.Go(func() error {
			checkCtx, cancel := context.WithTimeout(groupCtx, timeout)
			defer cancel()
			results[i] = p.Check(checkCtx)
			return nil
		})
	}
	group.Wait()
	return results
}

// Failed returns true when any result in the set is a failure.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.OK() {
			return true
		}
	}
	return false
}
