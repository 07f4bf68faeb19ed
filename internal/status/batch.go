package status

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Unclassifiable is shown in place of a record whose evaluation failed.
var Unclassifiable = Display{Label: "Não classificável", Severity: Caution}

// Result is the outcome of evaluating one record of a batch.
type Result struct {
	Err     error
	Status  Canonical
	Display Display
	Index   int
}

// Classified reports whether the record was evaluated successfully.
func (r Result) Classified() bool {
	return r.Err == nil
}

type batchConfig struct {
	onResult func(Result)
	workers  int
}

// BatchOption customizes EvaluateAll.
type BatchOption func(*batchConfig)

// WithWorkers bounds the number of records evaluated concurrently.
func WithWorkers(n int) BatchOption {
	return func(c *batchConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithResultHook is called once per evaluated record, possibly concurrently.
func WithResultHook(fn func(Result)) BatchOption {
	return func(c *batchConfig) {
		c.onResult = fn
	}
}

// EvaluateAll evaluates every record independently and returns the results in
// input order. A record that fails classification gets the Unclassifiable display
// and its error; it never aborts the batch. The returned error is non-nil only
// when d is nil or ctx is done.
func EvaluateAll(ctx context.Context, d *Domain, records []Record, opts ...BatchOption) ([]Result, error) {
	if d == nil {
		return nil, ErrNilDomain
	}

	cfg := batchConfig{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&cfg)
	}

	results := make([]Result, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)

	for i := range records {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := Result{Index: i}
			s, disp, err := Evaluate(d, records[i])
			if err != nil {
				res.Err = err
				res.Display = Unclassifiable
			} else {
				res.Status = s
				res.Display = disp
			}
			results[i] = res
			if cfg.onResult != nil {
				cfg.onResult(res)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary aggregates a batch of results.
type Summary struct {
	Counts         map[Canonical]int
	Total          int
	Unclassifiable int
	Worst          Severity
}

// Summarize counts results per status and finds the worst severity.
func Summarize(results []Result) Summary {
	sum := Summary{Counts: make(map[Canonical]int)}
	for _, r := range results {
		sum.Total++
		if !r.Classified() {
			sum.Unclassifiable++
		} else {
			sum.Counts[r.Status]++
		}
		sum.Worst = Worst(sum.Worst, r.Display.Severity)
	}
	return sum
}
