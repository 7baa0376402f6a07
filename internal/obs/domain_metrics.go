package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CartMutationsTotal counts cart changes by operation and result.
	CartMutationsTotal *prometheus.CounterVec
	// OrdersPlacedTotal counts order placement outcomes.
	OrdersPlacedTotal *prometheus.CounterVec
	// ContactMessagesTotal counts contact handoff outcomes.
	ContactMessagesTotal *prometheus.CounterVec
	// NotificationsShownTotal counts toasts by severity.
	NotificationsShownTotal *prometheus.CounterVec
	// IntentDispatchTotal counts intent dispatches by intent and result.
	IntentDispatchTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CartMutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutations_total",
			Help:      "Count of cart mutations by operation and outcome.",
		}, []string{"op", "result"})
		OrdersPlacedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Count of order placement outcomes.",
		}, []string{"result"})
		ContactMessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_messages_total",
			Help:      "Count of contact form handoff outcomes.",
		}, []string{"result"})
		NotificationsShownTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_shown_total",
			Help:      "Count of toasts shown by severity.",
		}, []string{"severity"})
		IntentDispatchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intent_dispatch_total",
			Help:      "Count of dispatched interaction intents by outcome.",
		}, []string{"intent", "result"})

		for _, c := range []**prometheus.CounterVec{
			&CartMutationsTotal,
			&OrdersPlacedTotal,
			&ContactMessagesTotal,
			&NotificationsShownTotal,
			&IntentDispatchTotal,
		} {
			mustRegisterCounterVec(reg, c)
		}
	})
}

func mustRegisterCounterVec(reg prometheus.Registerer, collector **prometheus.CounterVec) {
	if err := reg.Register(*collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				*collector = existing
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
