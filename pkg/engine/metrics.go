package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "memvcs"
	metricsSubsystem = "repository"
)

// M holds the metrics for a repository
type M struct {
	Commits        prometheus.Counter
	Deduplicated   prometheus.Counter
	BranchMoves    prometheus.Counter
	DanglingParent prometheus.Counter
	Size           prometheus.Gauge
}

// newMetrics builds collectors, registered only when a registerer is provided
func newMetrics(s settings) *M {
	var reg prometheus.Registerer
	if s.registerer != nil {
		reg = s.registerer
		if s.name != "" {
			reg = prometheus.WrapRegistererWith(prometheus.Labels{"repo": s.name}, reg)
		}
	}
	factory := promauto.With(reg)

	return &M{
		Commits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "commits_created_total",
			Help:      "Number of commits registered in the repository.",
		}),
		Deduplicated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "commits_deduplicated_total",
			Help:      "Number of commit requests resolved to an existing commit with the same content.",
		}),
		BranchMoves: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "branch_moves_total",
			Help:      "Number of branch pointer updates.",
		}),
		DanglingParent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "dangling_parent_total",
			Help:      "Number of commits rejected because of a missing parent.",
		}),
		Size: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "commits",
			Help:      "Number of commits held by the repository.",
		}),
	}
}
