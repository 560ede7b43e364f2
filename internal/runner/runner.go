// Package runner executes parsed PQL programs: it compiles each
// statement's selectors, samples deals consistent with the declared
// ranges, fans trials out across workers, and reports aggregates.
package runner

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pql/internal/pql"
	"github.com/lox/pql/internal/vm"
)

// Options configure a run.
type Options struct {
	// Trials is the number of successful samples per statement.
	Trials int

	// Workers is the number of parallel workers; 0 means GOMAXPROCS.
	Workers int

	// Seed fixes the RNG; 0 draws a seed from the clock. With a fixed
	// seed and one worker, output is byte-identical between runs.
	Seed int64

	// Clock drives progress reporting; nil means the real clock.
	Clock quartz.Clock

	// Progress, when set, receives completed-trial counts during a
	// statement run, roughly once per second.
	Progress func(done, total int)
}

// Option mutates Options.
type Option func(*Options)

func WithTrials(n int) Option        { return func(o *Options) { o.Trials = n } }
func WithWorkers(n int) Option       { return func(o *Options) { o.Workers = n } }
func WithSeed(seed int64) Option     { return func(o *Options) { o.Seed = seed } }
func WithClock(c quartz.Clock) Option { return func(o *Options) { o.Clock = c } }
func WithProgress(f func(done, total int)) Option {
	return func(o *Options) { o.Progress = f }
}

// Runner executes every statement of a PQL program sequentially, writing
// results to out and failures to errOut. Statements are independent: a
// failed statement reports and the run continues.
type Runner struct {
	src    string
	out    io.Writer
	errOut io.Writer
	opts   Options
}

// New builds a runner over the program source.
func New(src string, out, errOut io.Writer, opts ...Option) *Runner {
	o := Options{
		Trials: 100000,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Clock == nil {
		o.Clock = quartz.NewReal()
	}
	if o.Seed == 0 {
		o.Seed = o.Clock.Now().UnixNano()
	}

	return &Runner{src: src, out: out, errOut: errOut, opts: o}
}

// Run parses and executes the program. The returned error is non-nil if
// any statement failed; per-statement failures have already been written
// to the error stream.
func (r *Runner) Run(ctx context.Context) error {
	stmts, err := pql.ParseProgram(r.src)
	if err != nil {
		r.reportError(err)
		return err
	}

	var failed error
	for i := range stmts {
		if i > 0 {
			fmt.Fprintln(r.out, strings.Repeat("-", 80))
		}

		if err := r.runStatement(ctx, &stmts[i]); err != nil {
			r.reportError(err)
			failed = err
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return failed
}

// reportError writes an error with the offending source slice.
func (r *Runner) reportError(err error) {
	if perr, ok := err.(*pql.Error); ok {
		start, end := perr.Start, perr.End
		if start < 0 {
			start = 0
		}
		if end > len(r.src) {
			end = len(r.src)
		}
		if start < end {
			fmt.Fprintf(r.errOut, "%s: %q\n", perr.Error(), r.src[start:end])
			return
		}
	}
	fmt.Fprintln(r.errOut, err.Error())
}

// workerState is everything one worker owns during a statement run. done
// is atomic: the progress ticker reads it from outside the worker.
type workerState struct {
	static  *vm.StaticData
	heap    *vm.Heap
	sampled *vm.SampledData
	stack   vm.Stack
	dealer  *dealer
	aggs    []*aggregator
	done    atomic.Int64
}

func (r *Runner) runStatement(ctx context.Context, stmt *pql.Stmt) error {
	static, err := vm.NewStaticData(stmt)
	if err != nil {
		return err
	}

	heap := &vm.Heap{}
	programs := make([]*vm.Program, len(stmt.Selectors))
	for i := range stmt.Selectors {
		prog, err := vm.CompileSelector(static, heap, &stmt.Selectors[i])
		if err != nil {
			return err
		}
		programs[i] = prog
	}

	workers := r.opts.Workers
	if workers > r.opts.Trials {
		workers = r.opts.Trials
	}
	if workers < 1 {
		workers = 1
	}

	states := make([]*workerState, workers)
	for w := range states {
		ws := &workerState{
			static:  static.CloneCheckers(),
			heap:    heap.Clone(),
			sampled: vm.NewSampledData(static.Game, static.NPlayers()),
		}
		ws.dealer = newDealer(static, rand.New(rand.NewSource(r.opts.Seed+int64(w))))
		for _, sel := range stmt.Selectors {
			ws.aggs = append(ws.aggs, newAggregator(sel.Kind, static.Game))
		}
		states[w] = ws
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if r.opts.Progress != nil {
		total := r.opts.Trials
		waiter := r.opts.Clock.TickerFunc(runCtx, time.Second, func() error {
			var done int64
			for _, ws := range states {
				done += ws.done.Load()
			}
			r.opts.Progress(int(done), total)
			return nil
		})
		defer func() {
			cancel()
			_ = waiter.Wait()
		}()
	}

	g, gctx := errgroup.WithContext(runCtx)

	for w := 0; w < workers; w++ {
		ws := states[w]
		quota := r.opts.Trials / workers
		if w < r.opts.Trials%workers {
			quota++
		}

		g.Go(func() error {
			return r.runWorker(gctx, ws, programs, quota)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	cancel()

	// Merge worker aggregates pairwise into the first.
	final := states[0].aggs
	for _, ws := range states[1:] {
		for i, agg := range ws.aggs {
			final[i].merge(agg)
		}
	}

	for i := range stmt.Selectors {
		fmt.Fprintf(r.out, "%s %d = %s\n", stmt.Selectors[i].Label(), i, final[i].format())
	}
	fmt.Fprintf(r.out, "%d trials\n", final[0].trialCount())

	return nil
}

// trialCount exposes the number of folded trials for the report footer.
func (a *aggregator) trialCount() int64 {
	return a.trials
}

// runWorker samples and executes until its quota of successful trials,
// giving up when the rejection budget (one failed attempt per requested
// trial) runs dry.
func (r *Runner) runWorker(ctx context.Context, ws *workerState, programs []*vm.Program, quota int) error {
	execCtx := &vm.ExecContext{
		Stack: &ws.stack,
		Heap:  ws.heap,
		Fn: vm.FnContext{
			Game:     ws.static.Game,
			NPlayers: ws.static.NPlayers(),
			Sampled:  ws.sampled,
			Dead:     ws.static.Dead,
		},
	}

	budget := quota
	succeeded := 0

	for succeeded < quota {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if !ws.dealer.sample(ws.static, ws.sampled) {
			budget--
			if budget <= 0 {
				return pql.Err(pql.ErrSamplingFailed, 0, 0)
			}
			continue
		}

		for i, prog := range programs {
			v, err := prog.Execute(execCtx)
			if err != nil {
				return err
			}
			ws.aggs[i].push(v)
		}

		succeeded++
		ws.done.Store(int64(succeeded))
	}

	return nil
}
