// Package validatorset holds the ~100 independent rule implementations
// and the worker pool that runs them (spec.md §4.7-§4.9). Every
// validator reads the feed.Container built by the feed package and
// writes notices into a shared notice.Container; nothing here mutates
// the feed.
package validatorset

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sourcegraph/conc/pool"
)

// Validator is a named unit declaring its read set implicitly (by which
// fields of *Context it touches) and running to completion against one
// feed. Run must not panic across validators sharing a Registry — the
// registry recovers per-job, but a validator that panics contributes
// nothing but a SystemError, which is usually a sign of a feed shape the
// validator didn't anticipate.
type Validator interface {
	Name() string
	Run(ctx *Context)
}

// funcValidator adapts a plain function into a Validator so most rule
// files can register a name and a closure instead of a bespoke type.
type funcValidator struct {
	name string
	run  func(ctx *Context)
}

func (f funcValidator) Name() string     { return f.name }
func (f funcValidator) Run(ctx *Context) { f.run(ctx) }

// newValidator is the constructor every rule file calls.
func newValidator(name string, run func(ctx *Context)) Validator {
	return funcValidator{name: name, run: run}
}

// SystemError records a validator that panicked or otherwise failed in a
// way the engine couldn't turn into a notice (spec.md §4.7, §7).
type SystemError struct {
	Validator string `json:"validator"`
	Error     string `json:"error"`
}

var validatorDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "gtfsvalidate_validator_duration_seconds",
	Help:    "Wall time spent inside a single validator's Run.",
	Buckets: prometheus.DefBuckets,
}, []string{"validator"})

// Registry owns the discovered validator set and runs it against a
// Context.
type Registry struct {
	validators []Validator
	timing     bool
	metrics    *prometheus.Registry
}

// NewRegistry discovers validators at construction, exactly as spec.md
// §4.7 requires — there is no lazy or on-demand registration.
func NewRegistry(validators ...Validator) *Registry {
	return &Registry{validators: validators}
}

// EnableTiming turns on the per-validator wall-time histogram, registered
// into a fresh prometheus.Registry returned so the caller can scrape or
// dump it; timing is off by default because most runs don't want the
// overhead of per-job clock reads.
func (r *Registry) EnableTiming() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(validatorDuration)
	r.timing = true
	r.metrics = reg
	return reg
}

// Run executes every registered validator against ctx, using a worker
// pool sized to threads (0 or negative means runtime.NumCPU()). threads=1
// degrades to the same pool running one job at a time on the calling
// goroutine's pool worker — not a separate sequential code path — so
// spec.md §4.7's "produces identical output" guarantee never depends on
// which mode ran (spec.md §5).
func (r *Registry) Run(ctx *Context, threads int) []SystemError {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	p := pool.New().WithMaxGoroutines(threads)

	var mu sync.Mutex
	var systemErrors []SystemError

	for _, v := range r.validators {
		v := v
		p.Go(func() {
			defer func() {
				if rec := recover(); rec != nil {
					mu.Lock()
					systemErrors = append(systemErrors, SystemError{
						Validator: v.Name(),
						Error:     fmt.Sprintf("%v", rec),
					})
					mu.Unlock()
				}
			}()
			start := time.Now()
			v.Run(ctx)
			if r.timing {
				validatorDuration.WithLabelValues(v.Name()).Observe(time.Since(start).Seconds())
			}
		})
	}
	p.Wait()

	sort.Slice(systemErrors, func(i, j int) bool {
		return systemErrors[i].Validator < systemErrors[j].Validator
	})
	return systemErrors
}

// Len reports how many validators are registered, mostly for tests.
func (r *Registry) Len() int { return len(r.validators) }
