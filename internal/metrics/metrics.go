// Package metrics exports registry transitions as Prometheus series.
package metrics

import (
	"net/http"

	"github.com/atomicstack/minimenu/internal/menu"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "minimenu"

// Observer implements menu.Observer on top of a Prometheus registry.
type Observer struct {
	created    prometheus.Counter
	opened     prometheus.Counter
	closed     *prometheus.CounterVec
	selected   *prometheus.CounterVec
	unloaded   prometheus.Counter
	registered prometheus.Gauge
}

var _ menu.Observer = (*Observer)(nil)

// NewObserver registers the menu series with reg.
func NewObserver(reg prometheus.Registerer) *Observer {
	o := &Observer{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "menus_created_total",
			Help:      "Menus created.",
		}),
		opened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "menu_opens_total",
			Help:      "Menu open transitions.",
		}),
		closed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "menu_closes_total",
			Help:      "Menu close transitions by reason.",
		}, []string{"reason"}),
		selected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "item_selections_total",
			Help:      "Item selections by token.",
		}, []string{"token"}),
		unloaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "menus_unloaded_total",
			Help:      "Menus unloaded.",
		}),
		registered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "menus_registered",
			Help:      "Menus currently registered.",
		}),
	}
	reg.MustRegister(o.created, o.opened, o.closed, o.selected, o.unloaded, o.registered)
	return o
}

func (o *Observer) MenuCreated(string) {
	o.created.Inc()
	o.registered.Inc()
}

// MenuOpened counts opens. No series is labelled by menu id.
func (o *Observer) MenuOpened(string) {
	o.opened.Inc()
}

func (o *Observer) MenuClosed(_ string, reason menu.CloseReason) {
	o.closed.WithLabelValues(string(reason)).Inc()
}

// ItemSelected counts by token only; untagged items are reported as "-".
func (o *Observer) ItemSelected(_ string, token string) {
	if token == "" {
		token = "-"
	}
	o.selected.WithLabelValues(token).Inc()
}

func (o *Observer) MenuUnloaded(string) {
	o.unloaded.Inc()
	o.registered.Dec()
}

// Handler serves the series gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
