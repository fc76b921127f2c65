package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements Collector backed by Prometheus.
// Metrics are created and registered lazily on first use.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	districtPopulation prometheus.Histogram
	districtTracts     prometheus.Histogram
	districtsTotal     prometheus.Counter
	splitRepairs       prometheus.Counter
	absorbedTracts     prometheus.Counter
	runs               *prometheus.CounterVec
	runDuration        prometheus.Histogram
	unassigned         prometheus.Gauge
}

// Compile-time assertion that PrometheusCollector implements Collector.
var _ Collector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: metrics namespace (defaults to "redistrict" if empty)
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "redistrict"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.districtPopulation = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "district_population",
			Help:      "Population of finished districts.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		})
		p.districtTracts = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "district_tracts",
			Help:      "Number of tracts in finished districts.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
		})
		p.districtsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "districts_total",
			Help:      "Total districts built.",
		})
		p.splitRepairs = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "split_repairs_total",
			Help:      "Total split repairs performed on unclaimed regions.",
		})
		p.absorbedTracts = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "absorbed_tracts_total",
			Help:      "Total tracts absorbed into a growing district by split repair.",
		})
		p.runs = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "runs_total",
			Help:      "Total partition runs by completeness (true,false).",
		}, []string{"complete"})
		p.runDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "run_duration_seconds",
			Help:      "Duration of partition runs in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms .. ~8s
		})
		p.unassigned = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "unassigned_tracts",
			Help:      "Tracts left unclaimed by the latest run.",
		})

		p.reg.MustRegister(p.districtPopulation)
		p.reg.MustRegister(p.districtTracts)
		p.reg.MustRegister(p.districtsTotal)
		p.reg.MustRegister(p.splitRepairs)
		p.reg.MustRegister(p.absorbedTracts)
		p.reg.MustRegister(p.runs)
		p.reg.MustRegister(p.runDuration)
		p.reg.MustRegister(p.unassigned)
	})
}

// RecordDistrict observes one finished district.
func (p *PrometheusCollector) RecordDistrict(population, tracts int) {
	p.ensureRegistered()
	p.districtPopulation.Observe(float64(population))
	p.districtTracts.Observe(float64(tracts))
	p.districtsTotal.Inc()
}

// RecordSplitRepair counts one split repair and the tracts it absorbed.
func (p *PrometheusCollector) RecordSplitRepair(absorbed int) {
	p.ensureRegistered()
	p.splitRepairs.Inc()
	p.absorbedTracts.Add(float64(absorbed))
}

// RecordRun observes one finished run.
func (p *PrometheusCollector) RecordRun(durationSeconds float64, complete bool) {
	p.ensureRegistered()
	p.runs.WithLabelValues(strconv.FormatBool(complete)).Inc()
	p.runDuration.Observe(durationSeconds)
}

// SetUnassigned sets the unassigned tracts gauge.
func (p *PrometheusCollector) SetUnassigned(n int) {
	p.ensureRegistered()
	p.unassigned.Set(float64(n))
}
