package metrics

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. It is the partitioner's default.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements Collector.
var _ Collector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordDistrict discards the district metric.
func (n *NopMetrics) RecordDistrict(_ /* population */, _ /* tracts */ int) {
	// No-op
}

// RecordSplitRepair discards the split repair metric.
func (n *NopMetrics) RecordSplitRepair(_ /* absorbed */ int) {
	// No-op
}

// RecordRun discards the run metric.
func (n *NopMetrics) RecordRun(_ /* durationSeconds */ float64, _ /* complete */ bool) {
	// No-op
}

// SetUnassigned discards the unassigned gauge.
func (n *NopMetrics) SetUnassigned(_ /* n */ int) {
	// No-op
}
