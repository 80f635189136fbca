package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// LoyaltyMetrics bundles the counters of the purchase engine and the account
// store. All observe methods tolerate a nil receiver so callers never need to
// guard instrumentation.
type LoyaltyMetrics struct {
	purchases         *prometheus.CounterVec
	purchasesRejected *prometheus.CounterVec
	topUps            prometheus.Counter
	storeSaves        prometheus.Counter
	storeLoads        prometheus.Counter
}

var (
	loyaltyOnce     sync.Once
	loyaltyRegistry *LoyaltyMetrics
)

// Loyalty returns the process-wide loyalty metric bundle, registering it on
// first use.
func Loyalty() *LoyaltyMetrics {
	loyaltyOnce.Do(func() {
		loyaltyRegistry = &LoyaltyMetrics{
			purchases: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "loyalty_purchases_total",
				Help: "Count of settled purchases by product category.",
			}, []string{"category"}),
			purchasesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "loyalty_purchases_rejected_total",
				Help: "Count of rejected purchases by reason.",
			}, []string{"reason"}),
			topUps: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "loyalty_topups_total",
				Help: "Count of account balance top-ups.",
			}),
			storeSaves: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "loyalty_store_saves_total",
				Help: "Count of full account snapshots written to disk.",
			}),
			storeLoads: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "loyalty_store_loads_total",
				Help: "Count of account snapshots loaded from disk.",
			}),
		}
		prometheus.MustRegister(
			loyaltyRegistry.purchases,
			loyaltyRegistry.purchasesRejected,
			loyaltyRegistry.topUps,
			loyaltyRegistry.storeSaves,
			loyaltyRegistry.storeLoads,
		)
	})
	return loyaltyRegistry
}

// ObservePurchase records a settled purchase for the given product category.
func (m *LoyaltyMetrics) ObservePurchase(category string) {
	if m == nil {
		return
	}
	if category == "" {
		category = "unknown"
	}
	m.purchases.WithLabelValues(category).Inc()
}

// ObservePurchaseRejected records a refused purchase by reason.
func (m *LoyaltyMetrics) ObservePurchaseRejected(reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	m.purchasesRejected.WithLabelValues(reason).Inc()
}

// ObserveTopUp records a balance top-up.
func (m *LoyaltyMetrics) ObserveTopUp() {
	if m == nil {
		return
	}
	m.topUps.Inc()
}

// ObserveStoreSave records a completed snapshot write.
func (m *LoyaltyMetrics) ObserveStoreSave() {
	if m == nil {
		return
	}
	m.storeSaves.Inc()
}

// ObserveStoreLoad records a completed snapshot load.
func (m *LoyaltyMetrics) ObserveStoreLoad() {
	if m == nil {
		return
	}
	m.storeLoads.Inc()
}
