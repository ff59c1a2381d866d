// Package metrics defines the custom Prometheus metrics of the task board.
// Metrics register with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/syncro4/taskboard/internal/core/domain"
	"github.com/syncro4/taskboard/internal/core/ports"
	"github.com/syncro4/taskboard/internal/core/projection"
)

const namespace = "taskboard"

// ── Store metrics ─────────────────────────────────────────────────────────────

// MutationsTotal counts completed store mutations.
// Label:
//   - op: the mutation name (e.g. "create_task", "remove_user")
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of store mutations applied.",
	},
	[]string{"op"},
)

// FlushFailuresTotal counts mutations whose slots could not be written.
// Label:
//   - slot: "tasks", "users" or "current_user"
var FlushFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "flush_failures_total",
		Help:      "Total number of mutations applied in memory but not persisted.",
	},
	[]string{"slot"},
)

// PolicyViolationsTotal counts mutations rejected by the access policy.
// Label:
//   - reason: "last_user", "self_removal", "forbidden"
var PolicyViolationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_violations_total",
		Help:      "Total number of rejected mutations, by reason.",
	},
	[]string{"reason"},
)

// ── Board gauges ──────────────────────────────────────────────────────────────

// TasksByStatus is the current number of tasks in each pipeline stage.
var TasksByStatus = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "tasks",
		Help:      "Current number of tasks, by status.",
	},
	[]string{"status"},
)

// Users is the current team size.
var Users = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Name:      "users",
	Help:      "Current number of user accounts.",
})

// StreamSubscribers is the number of open change streams.
var StreamSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Name:      "stream_subscribers",
	Help:      "Current number of connected change stream clients.",
})

// Track keeps the store metrics current until the returned func is called.
func Track(store ports.BoardStore) func() {
	observe(store.Snapshot())
	return store.Subscribe(func(c domain.Change) {
		MutationsTotal.WithLabelValues(c.Op).Inc()
		if c.FlushErr != nil {
			for _, slot := range c.Slots {
				FlushFailuresTotal.WithLabelValues(string(slot)).Inc()
			}
		}
		observe(store.Snapshot())
	})
}

func observe(state domain.State) {
	for _, s := range domain.Pipeline {
		TasksByStatus.WithLabelValues(string(s)).Set(float64(len(projection.TasksByStatus(state.Tasks, s))))
	}
	Users.Set(float64(len(state.Users)))
}
