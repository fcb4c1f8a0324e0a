// Package chatmetrics exports Prometheus counters and gauges describing
// engine activity, grounded on the teacher's PrometheusMetrics collector
// set in prometheus.go — generalized from the teacher's noise-floor/decode
// counters to protocol session counters, built the same way with
// promauto so collectors self-register and need no manual Describe.
package chatmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Philippe-Colt/ft8chat/chatproto"
)

// Metrics is a chatproto.Observer that updates Prometheus collectors as
// the engine emits events.
type Metrics struct {
	stateTransitions  *prometheus.CounterVec
	messagesSent      prometheus.Counter
	messagesReceived  prometheus.Counter
	echoRetries       prometheus.Counter
	retriesExhausted  prometheus.Counter
	fragmentsInFlight prometheus.Gauge
	directTxTotal     prometheus.Counter
}

// New registers every collector against reg and returns a Metrics ready
// to subscribe to an Engine.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		stateTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ft8chat",
			Name:      "state_transitions_total",
			Help:      "Count of engine state transitions by destination state.",
		}, []string{"state"}),
		messagesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "ft8chat",
			Name:      "messages_sent_total",
			Help:      "Count of messages the engine delivered successfully.",
		}),
		messagesReceived: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "ft8chat",
			Name:      "messages_received_total",
			Help:      "Count of messages the engine fully reassembled from a peer.",
		}),
		echoRetries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "ft8chat",
			Name:      "echo_retries_total",
			Help:      "Count of echo mismatches that triggered a retry.",
		}),
		retriesExhausted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "ft8chat",
			Name:      "retries_exhausted_total",
			Help:      "Count of sessions abandoned after exhausting their retry budget.",
		}),
		fragmentsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "ft8chat",
			Name:      "fragments_in_flight",
			Help:      "Fragment index currently being transmitted, 0 when idle.",
		}),
		directTxTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "ft8chat",
			Name:      "direct_tx_sessions_total",
			Help:      "Count of direct-TX waveform sessions rendered.",
		}),
	}
}

// OnEvent implements chatproto.Observer.
func (m *Metrics) OnEvent(e chatproto.Event) {
	switch e.Kind {
	case chatproto.EventStateChanged:
		m.stateTransitions.WithLabelValues(e.NewState.String()).Inc()
		if e.NewState == chatproto.Idle {
			m.fragmentsInFlight.Set(0)
		}
	case chatproto.EventStatusMessage:
		switch e.StatusKey {
		case chatproto.MsgEchoBad:
			m.echoRetries.Inc()
		case chatproto.MsgRetriesExhausted:
			m.retriesExhausted.Inc()
		}
	case chatproto.EventFragmentProgress:
		m.fragmentsInFlight.Set(float64(e.FragCurrent))
	case chatproto.EventMessageSentOk:
		m.messagesSent.Inc()
	case chatproto.EventMessageReceived:
		m.messagesReceived.Inc()
	case chatproto.EventDirectTxReady:
		m.directTxTotal.Inc()
	}
}
