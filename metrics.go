package kernel

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metricsSet is the kernel's runtime telemetry, using the same
// promauto-registered counter/gauge style other dispatch-loop services
// use from inside their own scheduling code. A Kernel constructed
// without an explicit registry registers into a private
// prometheus.NewRegistry() (see Config.Registerer).
type metricsSet struct {
	ticksTotal           prometheus.Counter
	contextSwitchesTotal prometheus.Counter
	periodicDispatches   prometheus.Counter
	threadsWoken         prometheus.Counter
	threadsAsleep        prometheus.Gauge
	periodicHandlerSecs  prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metricsSet {
	f := promauto.With(reg)
	return &metricsSet{
		ticksTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: "g8rtos",
			Name:      "ticks_total",
			Help:      "Number of 1kHz tick-handler invocations processed.",
		}),
		contextSwitchesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: "g8rtos",
			Name:      "context_switches_total",
			Help:      "Number of scheduler dispatches performed by the trampoline.",
		}),
		periodicDispatches: f.NewCounter(prometheus.CounterOpts{
			Namespace: "g8rtos",
			Name:      "periodic_dispatches_total",
			Help:      "Number of periodic handler invocations.",
		}),
		threadsWoken: f.NewCounter(prometheus.CounterOpts{
			Namespace: "g8rtos",
			Name:      "threads_woken_total",
			Help:      "Number of times the wake sweep cleared a thread's asleep flag.",
		}),
		threadsAsleep: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "g8rtos",
			Name:      "threads_asleep",
			Help:      "Current number of admitted threads with asleep set.",
		}),
		periodicHandlerSecs: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "g8rtos",
			Name:      "periodic_handler_seconds",
			Help:      "Wall-clock time spent inside a single periodic handler invocation.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 8),
		}),
	}
}
