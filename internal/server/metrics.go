package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metricsRegistry struct {
	registry       *prometheus.Registry
	callsTotal     *prometheus.CounterVec
	connectsTotal  *prometheus.CounterVec
	balanceQueries *prometheus.CounterVec
}

func newMetricsRegistry() *metricsRegistry {
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cryptocall_call_requests_total",
		Help: "Call requests by outcome",
	}, []string{"outcome"})

	connects := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cryptocall_wallet_connects_total",
		Help: "Wallet connect attempts by result",
	}, []string{"result"})

	balances := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cryptocall_balance_queries_total",
		Help: "Balance refetches by result",
	}, []string{"result"})

	r := prometheus.NewRegistry()
	r.MustRegister(calls, connects, balances)

	return &metricsRegistry{
		registry:       r,
		callsTotal:     calls,
		connectsTotal:  connects,
		balanceQueries: balances,
	}
}

func (m *metricsRegistry) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metricsRegistry) incCall(outcome string) {
	m.callsTotal.WithLabelValues(outcome).Inc()
}

func (m *metricsRegistry) incConnect(result string) {
	m.connectsTotal.WithLabelValues(result).Inc()
}

func (m *metricsRegistry) incBalance(result string) {
	m.balanceQueries.WithLabelValues(result).Inc()
}
