package partition

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/katalvlaran/redistrict/internal/logging"
	"github.com/katalvlaran/redistrict/internal/metrics"
	"github.com/katalvlaran/redistrict/region"
	"github.com/katalvlaran/redistrict/tract"
)

// Partitioner owns the mutable state of one partition run over a graph.
type Partitioner struct {
	g *tract.Graph

	unclaimed []*region.Region // ordered; one per landmass, replaced in place on split
	districts []*region.Region // in build order

	requested int
	remaining int
	filled    bool

	policy  ScoringPolicy
	log     logging.Logger
	metrics metrics.Collector
}

// New validates the request and prepares a run over g.
//
// Steps:
//  1. Reject a nil graph, a district count ≤ 0 or above g.Len(), and an
//     invalid scoring policy.
//  2. Compute the landmasses of g.
//  3. Build one unclaimed region per landmass, adding tracts in input order.
//
// The Partitioner takes over the district stamps of g's tracts; run
// independent plans on independent clones.
func New(g *tract.Graph, districts int, opts ...Option) (*Partitioner, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if districts <= 0 || districts > g.Len() {
		return nil, fmt.Errorf("%w: %d districts requested for %d tracts", ErrInfeasible, districts, g.Len())
	}
	o := resolve(opts)
	if err := o.Policy.Validate(); err != nil {
		return nil, err
	}

	lands, err := g.Landmasses()
	if err != nil {
		return nil, fmt.Errorf("partition: %w", err)
	}

	p := &Partitioner{
		g:         g,
		unclaimed: make([]*region.Region, 0, len(lands)),
		districts: make([]*region.Region, 0, districts),
		requested: districts,
		remaining: districts,
		policy:    o.Policy,
		log:       o.Logger,
		metrics:   o.Metrics,
	}
	for _, land := range lands {
		p.unclaimed = append(p.unclaimed, region.FromTracts(g, region.Unclaimed, tract.Unassigned, land))
	}

	return p, nil
}

// Fill builds the requested districts one after another.
//
// For each district the target population is the unclaimed population
// divided by the number of districts still to build, so rounding drift is
// absorbed by later districts. ctx is consulted between districts only; on
// cancellation the partial Result is returned together with the wrapped
// context error.
//
// An incomplete plan is not an error: inspect Result.Complete or Result.Err.
func (p *Partitioner) Fill(ctx context.Context) (*Result, error) {
	if p.filled {
		return nil, ErrAlreadyFilled
	}
	p.filled = true

	start := time.Now()
	runID := ulid.Make().String()
	p.log.Info("partition run started",
		"run", runID,
		"districts", p.requested,
		"tracts", p.g.Len(),
		"population", p.g.TotalPopulation(),
		"landmasses", len(p.unclaimed),
		"policy", p.policy.String(),
	)

	var runErr error
	for id := 1; p.remaining > 0; id++ {
		if err := ctx.Err(); err != nil {
			runErr = fmt.Errorf("partition: stopped after %d of %d districts: %w", id-1, p.requested, err)
			break
		}
		pop := p.unclaimedPopulation()
		if p.unclaimedTracts() == 0 {
			p.log.Warn("no unclaimed tracts left", "run", runID, "missing", p.remaining)
			break
		}

		target := float64(pop) / float64(p.remaining)
		d := p.BuildDistrict(target, id)
		p.remaining--

		p.metrics.RecordDistrict(d.Population(), d.Len())
		p.log.Debug("district built",
			"run", runID,
			"district", id,
			"target", target,
			"population", d.Population(),
			"tracts", d.Len(),
		)
	}
	p.dropEmpty()

	res := p.result(runID)
	elapsed := time.Since(start)
	p.metrics.RecordRun(elapsed.Seconds(), res.Complete())
	p.metrics.SetUnassigned(len(res.Unassigned))
	if !res.Complete() {
		p.log.Warn("partition incomplete",
			"run", runID,
			"unassigned", len(res.Unassigned),
			"shortfall", res.Shortfall,
		)
	}
	p.log.Info("partition run finished",
		"run", runID,
		"built", len(res.Districts),
		"complete", res.Complete(),
		"elapsed", elapsed,
	)

	return res, runErr
}

// Graph returns the graph the partitioner runs on.
func (p *Partitioner) Graph() *tract.Graph { return p.g }

// Policy returns the scoring policy in use.
func (p *Partitioner) Policy() ScoringPolicy { return p.policy }

// Remaining returns how many districts are still to be built.
func (p *Partitioner) Remaining() int { return p.remaining }

// Districts returns the claimed regions in build order. The slice is a copy;
// the regions are live.
func (p *Partitioner) Districts() []*region.Region {
	return append([]*region.Region(nil), p.districts...)
}

// Unclaimed returns the unclaimed regions in order. The slice is a copy;
// the regions are live.
func (p *Partitioner) Unclaimed() []*region.Region {
	return append([]*region.Region(nil), p.unclaimed...)
}

func (p *Partitioner) unclaimedPopulation() int {
	sum := 0
	for _, r := range p.unclaimed {
		sum += r.Population()
	}

	return sum
}

func (p *Partitioner) unclaimedTracts() int {
	n := 0
	for _, r := range p.unclaimed {
		n += r.Len()
	}

	return n
}

// dropEmpty discards unclaimed regions without members, keeping order.
func (p *Partitioner) dropEmpty() {
	kept := p.unclaimed[:0]
	for _, r := range p.unclaimed {
		if !r.Empty() {
			kept = append(kept, r)
		}
	}
	for i := len(kept); i < len(p.unclaimed); i++ {
		p.unclaimed[i] = nil
	}
	p.unclaimed = kept
}

// result snapshots the current state. Empty districts are left out and
// count toward the shortfall.
func (p *Partitioner) result(runID string) *Result {
	res := &Result{
		RunID:     runID,
		Districts: make([]District, 0, len(p.districts)),
		Requested: p.requested,
		Policy:    p.policy,
	}
	for _, d := range p.districts {
		if d.Empty() {
			continue
		}
		res.Districts = append(res.Districts, District{
			ID:         d.District(),
			Tracts:     d.MemberIDs(),
			Population: d.Population(),
			Area:       d.Area(),
		})
	}
	for _, r := range p.unclaimed {
		res.Unassigned = append(res.Unassigned, r.MemberIDs()...)
	}
	res.Shortfall = p.requested - len(res.Districts)

	return res
}
