package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func getGaugeValue(g prometheus.Gauge) float64 {
	var m dto.Metric
	if err := g.(prometheus.Metric).Write(&m); err != nil {
		return 0
	}
	return m.GetGauge().GetValue()
}

func getCounterVecValue(cv *prometheus.CounterVec, labels ...string) float64 {
	c, err := cv.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func TestMetrics_UpstreamRequestsTotal(t *testing.T) {
	before := getCounterVecValue(UpstreamRequestsTotal, "search", OutcomeSuccess)
	UpstreamRequestsTotal.WithLabelValues("search", OutcomeSuccess).Inc()
	after := getCounterVecValue(UpstreamRequestsTotal, "search", OutcomeSuccess)

	if after != before+1 {
		t.Errorf("Expected search counter to increment by 1, got diff %.0f", after-before)
	}
}

func TestMetrics_LiveSessions(t *testing.T) {
	before := getGaugeValue(LiveSessions)
	LiveSessions.Inc()
	if got := getGaugeValue(LiveSessions); got != before+1 {
		t.Errorf("Expected gauge %.0f, got %.0f", before+1, got)
	}
	LiveSessions.Dec()
	if got := getGaugeValue(LiveSessions); got != before {
		t.Errorf("Expected gauge %.0f, got %.0f", before, got)
	}
}

func TestMetrics_StaleResultsTotal(t *testing.T) {
	before := getCounterVecValue(StaleResultsTotal, "episodes")
	StaleResultsTotal.WithLabelValues("episodes").Inc()
	after := getCounterVecValue(StaleResultsTotal, "episodes")

	if after != before+1 {
		t.Errorf("Expected stale counter to increment by 1, got diff %.0f", after-before)
	}
}
