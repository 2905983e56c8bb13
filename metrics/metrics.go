// Package metrics exposes Prometheus counters for the tool surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ToolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pagebridge",
	Name:      "tool_calls_total",
	Help:      "Tool invocations by tool name and result status.",
}, []string{"tool", "status"})

var ConflictsDetected = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pagebridge",
	Name:      "update_conflicts_total",
	Help:      "Updates held back because the caller's baseline was stale.",
})

var NoOpWritesSuppressed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pagebridge",
	Name:      "noop_writes_suppressed_total",
	Help:      "Updates skipped because the remote body already matched.",
})

var RemoteErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pagebridge",
	Name:      "remote_errors_total",
	Help:      "Failed calls to the wiki store by tool name.",
}, []string{"tool"})
