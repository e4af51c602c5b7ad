package metrics

import (
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "teabot"

// Recorder 基于独立 prometheus 注册表的进程内统计
type Recorder struct {
	registry  *prometheus.Registry
	outcomes  *prometheus.CounterVec
	transfers *prometheus.CounterVec
}

// NewRecorder 创建统计器
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Single operations by kind and final status",
		}, []string{"kind", "status"}),
		transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_transfers_total",
			Help:      "Transfers executed inside batch runs by result",
		}, []string{"label", "result"}),
	}
	r.registry.MustRegister(r.outcomes, r.transfers)
	return r
}

// ObserveOutcome 实现 OutcomeRecorder
func (r *Recorder) ObserveOutcome(kind, status string) {
	r.outcomes.WithLabelValues(kind, status).Inc()
}

// ObserveBatch 实现 OutcomeRecorder
func (r *Recorder) ObserveBatch(label string, succeeded, failed int) {
	r.transfers.WithLabelValues(label, "succeeded").Add(float64(succeeded))
	r.transfers.WithLabelValues(label, "failed").Add(float64(failed))
}

// Snapshot 汇总当前所有计数器，键形如 teabot_operations_total{kind=stake,status=success}
func (r *Recorder) Snapshot() (map[string]float64, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64)
	for _, family := range families {
		for _, m := range family.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			sort.Strings(labels)
			out[family.GetName()+"{"+strings.Join(labels, ",")+"}"] = m.GetCounter().GetValue()
		}
	}
	return out, nil
}
