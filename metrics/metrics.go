// Package metrics exposes session state as Prometheus metrics written to a text file.
package metrics

import (
	"fmt"

	"probinary_go/session"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder owns a private registry so several sessions or tests never collide.
type Recorder struct {
	registry *prometheus.Registry

	balance           prometheus.Gauge
	tradesPlaced      prometheus.Gauge
	consecutiveLosses prometheus.Gauge
	running           prometheus.Gauge
	decisions         *prometheus.CounterVec
	outcomes          *prometheus.CounterVec
	stops             *prometheus.CounterVec
}

// NewRecorder registers all session metrics, labelled with the session name.
func NewRecorder(sessionName string) *Recorder {
	labels := prometheus.Labels{"session": sessionName}
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		balance: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "probinary_session_balance",
			Help:        "Current session balance",
			ConstLabels: labels,
		}),
		tradesPlaced: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "probinary_session_trades_placed",
			Help:        "Trades accepted in the session",
			ConstLabels: labels,
		}),
		consecutiveLosses: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "probinary_session_consecutive_losses",
			Help:        "Current streak of losing outcomes",
			ConstLabels: labels,
		}),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "probinary_session_running",
			Help:        "1 while the session accepts trades, 0 when stopped",
			ConstLabels: labels,
		}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "probinary_trade_decisions_total",
			Help:        "Trade requests by decision",
			ConstLabels: labels,
		}, []string{"decision"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "probinary_outcomes_total",
			Help:        "Recorded outcomes by kind",
			ConstLabels: labels,
		}, []string{"kind"}),
		stops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "probinary_session_stops_total",
			Help:        "Session stops by reason",
			ConstLabels: labels,
		}, []string{"reason"}),
	}

	r.registry.MustRegister(r.balance, r.tradesPlaced, r.consecutiveLosses, r.running,
		r.decisions, r.outcomes, r.stops)
	return r
}

// Observe copies a snapshot into the gauges.
func (r *Recorder) Observe(snap session.Snapshot) {
	r.balance.Set(snap.Balance)
	r.tradesPlaced.Set(float64(snap.TradesPlaced))
	r.consecutiveLosses.Set(float64(snap.ConsecutiveLosses))
	if snap.State == session.Running.String() {
		r.running.Set(1)
	} else {
		r.running.Set(0)
	}
}

// RecordDecision counts a trade decision ("accepted", "rejected", "halted").
func (r *Recorder) RecordDecision(decision string) {
	r.decisions.WithLabelValues(decision).Inc()
}

// RecordOutcome counts a realized outcome ("WIN" or "LOSS").
func (r *Recorder) RecordOutcome(kind string) {
	r.outcomes.WithLabelValues(kind).Inc()
}

// RecordStop counts a transition into the stopped state.
func (r *Recorder) RecordStop(reason session.StopReason) {
	r.stops.WithLabelValues(string(reason)).Inc()
}

// WriteTextfile writes all metrics in the Prometheus text format (node_exporter textfile collector).
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
