// Package balance summarizes how evenly a finished plan spreads
// population across its districts.
package balance

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/redistrict/partition"
	"github.com/katalvlaran/redistrict/tract"
)

// Summary holds population balance statistics of one plan.
type Summary struct {
	// Ideal is the graph population divided by the requested district count.
	Ideal float64 `json:"ideal"`

	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"` // population standard deviation

	// MaxAbsDeviation is the largest |population − Ideal| over districts.
	MaxAbsDeviation float64 `json:"maxAbsDeviation"`
	// MaxRelDeviation is MaxAbsDeviation / Ideal.
	MaxRelDeviation float64 `json:"maxRelDeviation"`

	TotalArea  float64 `json:"totalArea"`
	Districts  int     `json:"districts"`
	Unassigned int     `json:"unassigned"`
	Complete   bool    `json:"complete"`
}

// Summarize computes the balance statistics of res over g. A plan without
// districts yields a zero Summary apart from Ideal, Unassigned and Complete.
func Summarize(g *tract.Graph, res *partition.Result) Summary {
	s := Summary{
		Districts:  len(res.Districts),
		Unassigned: len(res.Unassigned),
		Complete:   res.Complete(),
	}
	if res.Requested > 0 {
		s.Ideal = float64(g.TotalPopulation()) / float64(res.Requested)
	}
	if len(res.Districts) == 0 {
		return s
	}

	pops := make([]float64, len(res.Districts))
	devs := make([]float64, len(res.Districts))
	for i, d := range res.Districts {
		pops[i] = float64(d.Population)
		devs[i] = math.Abs(pops[i] - s.Ideal)
		s.TotalArea += d.Area
	}

	s.Min = int(floats.Min(pops))
	s.Max = int(floats.Max(pops))
	s.Mean, s.StdDev = stat.PopMeanStdDev(pops, nil)
	s.MaxAbsDeviation = floats.Max(devs)
	if s.Ideal > 0 {
		s.MaxRelDeviation = s.MaxAbsDeviation / s.Ideal
	}

	return s
}

// Ranked pairs a result with its summary.
type Ranked struct {
	Result  *partition.Result
	Summary Summary
}

// Rank summarizes results over g and orders them best first: complete plans
// before incomplete ones, then by ascending MaxRelDeviation. Equal plans
// keep their input order.
func Rank(g *tract.Graph, results []*partition.Result) []Ranked {
	out := make([]Ranked, len(results))
	for i, r := range results {
		out[i] = Ranked{Result: r, Summary: Summarize(g, r)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Summary, out[j].Summary
		if a.Complete != b.Complete {
			return a.Complete
		}
		return a.MaxRelDeviation < b.MaxRelDeviation
	})

	return out
}
