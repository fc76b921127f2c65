package partition

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/redistrict/tract"
)

// Sweep runs one independent plan per scoring policy, in parallel, and
// returns the results in policy order. Each run works on its own g.Clone,
// so g itself is never stamped. With no policies, DefaultPolicy is used.
//
// The first failing run cancels the others and its error is returned.
// Options other than the policy (logger, metrics, parallelism) apply to
// every run; metrics collectors must be safe for concurrent use.
func Sweep(ctx context.Context, g *tract.Graph, districts int, policies []ScoringPolicy, opts ...Option) ([]*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if len(policies) == 0 {
		policies = []ScoringPolicy{DefaultPolicy()}
	}
	o := resolve(opts)

	results := make([]*Result, len(policies))
	eg, ctx := errgroup.WithContext(ctx)
	if o.Parallelism > 0 {
		eg.SetLimit(o.Parallelism)
	}
	for i, sp := range policies {
		eg.Go(func() error {
			runOpts := append(opts[:len(opts):len(opts)], WithPolicy(sp))
			p, err := New(g.Clone(), districts, runOpts...)
			if err != nil {
				return fmt.Errorf("partition: sweep run %d (%s): %w", i, sp, err)
			}
			res, err := p.Fill(ctx)
			if err != nil {
				return fmt.Errorf("partition: sweep run %d (%s): %w", i, sp, err)
			}
			results[i] = res

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
