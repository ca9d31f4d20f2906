package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type BridgeMetrics struct {
	operations      *prometheus.CounterVec
	depositsSettled *prometheus.CounterVec
	payoutsSettled  *prometheus.CounterVec
	rpcRequests     *prometheus.CounterVec
}

var (
	bridgeOnce     sync.Once
	bridgeRegistry *BridgeMetrics
)

func Bridge() *BridgeMetrics {
	bridgeOnce.Do(func() {
		bridgeRegistry = &BridgeMetrics{
			operations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "bridge_operations_total",
				Help: "Count of ledger operations by name and outcome.",
			}, []string{"operation", "outcome"}),
			depositsSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "bridge_deposits_settled_total",
				Help: "Count of deposit settlements by terminal status.",
			}, []string{"status"}),
			payoutsSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "bridge_withdrawals_settled_total",
				Help: "Count of withdrawal settlements by terminal status.",
			}, []string{"status"}),
			rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "bridge_rpc_requests_total",
				Help: "Count of JSON-RPC requests by method and outcome.",
			}, []string{"method", "outcome"}),
		}
		prometheus.MustRegister(
			bridgeRegistry.operations,
			bridgeRegistry.depositsSettled,
			bridgeRegistry.payoutsSettled,
			bridgeRegistry.rpcRequests,
		)
	})
	return bridgeRegistry
}

func (m *BridgeMetrics) ObserveOperation(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	if operation == "" {
		operation = "unknown"
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
}

func (m *BridgeMetrics) ObserveDepositSettled(status string) {
	if m == nil {
		return
	}
	if status == "" {
		status = "unknown"
	}
	m.depositsSettled.WithLabelValues(status).Inc()
}

func (m *BridgeMetrics) ObserveWithdrawalSettled(status string) {
	if m == nil {
		return
	}
	if status == "" {
		status = "unknown"
	}
	m.payoutsSettled.WithLabelValues(status).Inc()
}

func (m *BridgeMetrics) ObserveRPCRequest(method string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	if method == "" {
		method = "unknown"
	}
	m.rpcRequests.WithLabelValues(method, outcome).Inc()
}
