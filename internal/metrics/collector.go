// Package metrics defines the Collector the partitioner reports to, with a
// no-op implementation and a Prometheus-backed one.
package metrics

// Collector receives partition run measurements. Implementations must be
// safe for concurrent use: parallel sweeps share one collector.
type Collector interface {
	// RecordDistrict observes one finished district.
	RecordDistrict(population int, tracts int)

	// RecordSplitRepair observes one split repair that absorbed the given
	// number of tracts into the growing district.
	RecordSplitRepair(absorbed int)

	// RecordRun observes one finished Fill.
	RecordRun(durationSeconds float64, complete bool)

	// SetUnassigned reports how many tracts the latest run left unclaimed.
	SetUnassigned(n int)
}
