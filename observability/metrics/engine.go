package metrics

import (
	"math/big"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics instruments engine call outcomes. It satisfies the engine's
// Recorder interface so services can wire it via SetRecorder.
type EngineMetrics struct {
	yieldComputations *prometheus.CounterVec
	splits            *prometheus.CounterVec
	splitRemainder    *prometheus.GaugeVec
	gateChecks        *prometheus.CounterVec
}

var (
	engineOnce     sync.Once
	engineRegistry *EngineMetrics
)

// Engine returns the process-wide engine metrics, registering the collectors
// on first use.
func Engine() *EngineMetrics {
	engineOnce.Do(func() {
		engineRegistry = &EngineMetrics{
			yieldComputations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "yield_computations_total",
				Help: "Count of capsule yield computations by outcome.",
			}, []string{"outcome"}),
			splits: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "revenue_splits_total",
				Help: "Count of revenue split computations by policy.",
			}, []string{"policy"}),
			splitRemainder: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "revenue_split_remainder_minor",
				Help: "Rounding remainder absorbed by the last role of the most recent split.",
			}, []string{"policy"}),
			gateChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "tier_gate_checks_total",
				Help: "Count of tier gate decisions by check and verdict.",
			}, []string{"check", "verdict"}),
		}
		prometheus.MustRegister(
			engineRegistry.yieldComputations,
			engineRegistry.splits,
			engineRegistry.splitRemainder,
			engineRegistry.gateChecks,
		)
	})
	return engineRegistry
}

// YieldComputed counts one yield computation outcome.
func (m *EngineMetrics) YieldComputed(outcome string) {
	if m == nil {
		return
	}
	m.yieldComputations.WithLabelValues(outcome).Inc()
}

// SplitComputed counts one split and records the rounding remainder.
func (m *EngineMetrics) SplitComputed(policy string, remainderMinor *big.Int) {
	if m == nil {
		return
	}
	m.splits.WithLabelValues(policy).Inc()
	if remainderMinor != nil {
		value, _ := new(big.Float).SetInt(remainderMinor).Float64()
		m.splitRemainder.WithLabelValues(policy).Set(value)
	}
}

// GateChecked counts one gate decision.
func (m *EngineMetrics) GateChecked(check string, allowed bool) {
	if m == nil {
		return
	}
	verdict := "denied"
	if allowed {
		verdict = "allowed"
	}
	m.gateChecks.WithLabelValues(check, verdict).Inc()
}
