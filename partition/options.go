package partition

import (
	"fmt"
	"math"

	"github.com/katalvlaran/redistrict/internal/logging"
	"github.com/katalvlaran/redistrict/internal/metrics"
)

// ScoringPolicy weighs the two criteria SelectNext ranks candidates by.
type ScoringPolicy struct {
	// Compactness multiplies the number of the candidate's neighbors
	// already inside the growing district.
	Compactness float64 `json:"compactness" yaml:"compactness"`

	// Locality is added once when the candidate's locality key already
	// appears among the district's members.
	Locality float64 `json:"locality" yaml:"locality"`
}

// DefaultPolicy weighs both criteria equally.
func DefaultPolicy() ScoringPolicy {
	return ScoringPolicy{Compactness: 1, Locality: 1}
}

// Score combines the two criteria for one candidate.
func (sp ScoringPolicy) Score(inside int, sameLocality bool) float64 {
	s := float64(inside) * sp.Compactness
	if sameLocality {
		s += sp.Locality
	}

	return s
}

// Validate reports ErrInvalidPolicy for a negative, NaN or infinite weight.
func (sp ScoringPolicy) Validate() error {
	for _, w := range [...]struct {
		name string
		v    float64
	}{{"compactness", sp.Compactness}, {"locality", sp.Locality}} {
		if w.v < 0 || math.IsNaN(w.v) || math.IsInf(w.v, 0) {
			return fmt.Errorf("%w: %s weight %v", ErrInvalidPolicy, w.name, w.v)
		}
	}

	return nil
}

// String implements fmt.Stringer.
func (sp ScoringPolicy) String() string {
	return fmt.Sprintf("compactness=%g locality=%g", sp.Compactness, sp.Locality)
}

// Option configures a Partitioner (and Sweep) via functional arguments.
type Option func(*Options)

// Options holds the knobs New and Sweep accept.
type Options struct {
	// Policy weighs candidates in SelectNext.
	Policy ScoringPolicy

	// Logger receives run progress. Never nil after option parsing.
	Logger logging.Logger

	// Metrics receives run measurements. Never nil after option parsing.
	Metrics metrics.Collector

	// Parallelism caps concurrent runs in Sweep; ≤ 0 means unlimited.
	Parallelism int
}

// DefaultOptions returns Options with DefaultPolicy, a no-op logger and a
// no-op metrics collector.
func DefaultOptions() Options {
	return Options{
		Policy:  DefaultPolicy(),
		Logger:  logging.NewNop(),
		Metrics: metrics.NewNop(),
	}
}

// WithPolicy sets the scoring policy.
func WithPolicy(sp ScoringPolicy) Option {
	return func(o *Options) { o.Policy = sp }
}

// WithLogger sets the logger; nil is ignored.
func WithLogger(l logging.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMetrics sets the metrics collector; nil is ignored.
func WithMetrics(c metrics.Collector) Option {
	return func(o *Options) {
		if c != nil {
			o.Metrics = c
		}
	}
}

// WithParallelism caps how many Sweep runs execute at once.
func WithParallelism(n int) Option {
	return func(o *Options) { o.Parallelism = n }
}

func resolve(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o
}
