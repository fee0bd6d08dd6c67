package suite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"digital.vasic.assertchain/pkg/failure"
	"digital.vasic.assertchain/pkg/logging"
	"digital.vasic.assertchain/pkg/metrics"
)

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used by the runner. Recorded
// failures are also logged through it.
func WithLogger(logger logging.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithParallelism bounds how many cases run at once. Values below
// one select sequential execution.
func WithParallelism(n int) Option {
	return func(r *Runner) {
		r.parallelism = n
	}
}

// WithMetrics sets the metrics sink for case and failure counts.
func WithMetrics(m metrics.SuiteMetrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithRecorder adds a recorder that sees every failure of every
// case, in addition to the per-case store.
func WithRecorder(rec failure.Recorder) Option {
	return func(r *Runner) {
		r.recorders = append(r.recorders, rec)
	}
}

// Runner executes cases.
type Runner struct {
	logger      logging.Logger
	metrics     metrics.SuiteMetrics
	parallelism int
	recorders   []failure.Recorder
	now         func() time.Time
}

// NewRunner creates a Runner with the supplied options.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger:      logging.Nop(),
		metrics:     metrics.NoopMetrics{},
		parallelism: 1,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.Nop()
	}
	if r.metrics == nil {
		r.metrics = metrics.NoopMetrics{}
	}
	if r.parallelism < 1 {
		r.parallelism = 1
	}
	return r
}

// Run executes every case and returns their results in
// submission order. Cases never observe each other's recorders.
// When ctx is cancelled, cases that have not started are skipped
// and ctx's error is returned alongside the partial result.
func (r *Runner) Run(
	ctx context.Context, cases []Case,
) (*RunResult, error) {
	seen := make(map[string]struct{}, len(cases))
	for _, c := range cases {
		if c.Run == nil {
			return nil, fmt.Errorf("case %q has no run function", c.Name)
		}
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("duplicate case name: %s", c.Name)
		}
		seen[c.Name] = struct{}{}
	}

	result := &RunResult{
		ID:        uuid.New().String(),
		StartTime: r.now(),
		Cases:     make([]CaseResult, len(cases)),
	}
	r.metrics.IncrementRunTotal()
	log := r.logger.WithFields(logging.StringField("run_id", result.ID))
	log.Info("run started",
		logging.IntField("cases", len(cases)),
		logging.IntField("parallelism", r.parallelism),
	)

	g := new(errgroup.Group)
	g.SetLimit(r.parallelism)

	for i, c := range cases {
		if ctx.Err() != nil {
			result.Cases[i] = CaseResult{Name: c.Name, Status: StatusSkipped}
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				result.Cases[i] = CaseResult{Name: c.Name, Status: StatusSkipped}
				return nil
			}
			result.Cases[i] = r.runCase(ctx, log, c)
			return nil
		})
	}
	_ = g.Wait()

	result.EndTime = r.now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	log.Info("run finished",
		logging.IntField("passed", result.Count(StatusPassed)),
		logging.IntField("failed", result.Count(StatusFailed)),
		logging.IntField("errored", result.Count(StatusError)),
		logging.IntField("skipped", result.Count(StatusSkipped)),
	)

	return result, ctx.Err()
}

// runCase executes one case. A panic inside the case is a bug in
// the case itself; it is reported as an error status and never
// as an assertion failure.
func (r *Runner) runCase(
	ctx context.Context, log logging.Logger, c Case,
) (res CaseResult) {
	caseLog := log.WithFields(logging.StringField("case", c.Name))
	store := failure.NewMemoryRecorder()

	recorders := append(
		[]failure.Recorder{store, failure.NewLoggingRecorder(caseLog)},
		r.recorders...,
	)
	rec := failure.NewMultiRecorder(recorders...)

	start := r.now()
	res = CaseResult{Name: c.Name}
	r.metrics.AddActiveCases(1)

	defer func() {
		r.metrics.AddActiveCases(-1)
		res.Duration = r.now().Sub(start)
		res.Failures = store.Failures()
		for _, f := range res.Failures {
			r.metrics.RecordFailure(c.Name, f.Name)
		}
		defer func() {
			r.metrics.RecordCase(c.Name, res.Status, res.Duration)
		}()

		if p := recover(); p != nil {
			res.Status = StatusError
			res.Error = fmt.Sprintf("panic: %v", p)
			caseLog.Error("case panicked", logging.StringField("panic", res.Error))
			return
		}

		if len(res.Failures) > 0 {
			res.Status = StatusFailed
		} else {
			res.Status = StatusPassed
		}
		caseLog.Debug("case finished",
			logging.StringField("status", res.Status),
			logging.DurationMsField("duration_ms", res.Duration),
		)
	}()

	c.Run(ctx, rec)
	return res
}
