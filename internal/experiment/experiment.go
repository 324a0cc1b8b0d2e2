// Package experiment orchestrates the benchmark: it owns the worker group's
// lifetime, runs the trial loop, and accumulates per-path timings into the
// final speedup report. The document list is resolved by the caller and
// fixed for the whole run.
package experiment

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/asanchez-dev/bowbench/internal/bow"
	"github.com/asanchez-dev/bowbench/internal/cluster"
	"github.com/asanchez-dev/bowbench/internal/corpus"
	"github.com/asanchez-dev/bowbench/pkg/logger"
	"github.com/asanchez-dev/bowbench/pkg/metrics"
)

// Config fixes one run of the benchmark.
type Config struct {
	// Workers is the actual worker-group size.
	Workers int
	// RequestedWorkers is what the invoker asked for. A mismatch with
	// Workers is warned about, never an error: partitioning is correct for
	// any group size.
	RequestedWorkers int
	Trials           int
	BaselinePath     string
	DistributedPath  string
}

// Result aggregates all trials of a run. Averages are over Trials; Speedup
// is BaselineAvg/DistributedAvg, 0 when undefined.
type Result struct {
	Trials         int
	Workers        int
	BaselineAvg    time.Duration
	DistributedAvg time.Duration
	Speedup        float64
}

// Runner executes the trial loop over a fixed corpus.
type Runner struct {
	cfg      Config
	pipeline *bow.Pipeline
	metrics  *metrics.Metrics
}

// New creates a Runner.
func New(cfg Config, pipeline *bow.Pipeline, m *metrics.Metrics) *Runner {
	return &Runner{cfg: cfg, pipeline: pipeline, metrics: m}
}

// Run starts the worker group, executes every trial, and returns the
// aggregated result. An empty document list aborts before any collective
// phase. Cancellation mid-run is out of scope: collectives have no timeout,
// and the group is assumed alive for the run's duration; ctx is consulted
// only before the group starts.
func (r *Runner) Run(ctx context.Context, docs []corpus.Document) (*Result, error) {
	log := logger.WithComponent("experiment")
	if len(docs) == 0 {
		return nil, bow.ErrEmptyCorpus
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.cfg.RequestedWorkers > 0 && r.cfg.RequestedWorkers != r.cfg.Workers {
		log.Warn("worker-group size differs from requested count",
			"requested", r.cfg.RequestedWorkers,
			"actual", r.cfg.Workers,
		)
	}

	group, err := cluster.NewGroup(r.cfg.Workers)
	if err != nil {
		return nil, err
	}
	defer group.Close()

	var result *Result
	var g errgroup.Group
	for rank := 0; rank < group.Size(); rank++ {
		comm := group.Comm(rank)
		g.Go(func() error {
			res, err := r.worker(comm, docs)
			if comm.IsRoot() {
				result = res
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// worker is one rank's run: the full trial loop, in lockstep with the rest
// of the group at the collective boundaries. Rank 0 additionally runs the
// baseline path and owns the timing accumulators.
func (r *Runner) worker(comm *cluster.Comm, docs []corpus.Document) (*Result, error) {
	log := logger.WithComponent("experiment")
	var baselineTotal, distributedTotal time.Duration

	for trial := 1; trial <= r.cfg.Trials; trial++ {
		if comm.IsRoot() {
			log.Info("trial starting", "trial", trial, "trials", r.cfg.Trials)
			elapsed, err := r.pipeline.RunSerial(docs, r.cfg.BaselinePath)
			outcome := "ok"
			if err != nil {
				log.Error("baseline path reported", "trial", trial, "error", err)
				outcome = "empty_result"
			}
			baselineTotal += elapsed
			r.metrics.TrialDuration.WithLabelValues("baseline").Observe(elapsed.Seconds())
			r.metrics.TrialsTotal.WithLabelValues("baseline", outcome).Inc()
		}

		// All ranks line up before the distributed clock starts.
		comm.Barrier()

		elapsed, err := r.pipeline.RunDistributed(comm, docs, r.cfg.DistributedPath)
		if comm.IsRoot() {
			outcome := "ok"
			if err != nil {
				log.Error("distributed path reported", "trial", trial, "error", err)
				outcome = "empty_result"
			}
			distributedTotal += elapsed
			r.metrics.TrialDuration.WithLabelValues("distributed").Observe(elapsed.Seconds())
			r.metrics.TrialsTotal.WithLabelValues("distributed", outcome).Inc()
			log.Info("trial finished",
				"trial", trial,
				"baseline_avg", baselineTotal/time.Duration(trial),
				"distributed_avg", distributedTotal/time.Duration(trial),
			)
		}

		// A straggler's work must not bleed into the next trial's clock.
		comm.Barrier()
	}

	if !comm.IsRoot() {
		return nil, nil
	}

	res := &Result{
		Trials:         r.cfg.Trials,
		Workers:        comm.Size(),
		BaselineAvg:    baselineTotal / time.Duration(r.cfg.Trials),
		DistributedAvg: distributedTotal / time.Duration(r.cfg.Trials),
	}
	if res.DistributedAvg > 0 {
		res.Speedup = float64(res.BaselineAvg) / float64(res.DistributedAvg)
	}
	return res, nil
}
