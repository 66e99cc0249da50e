// ABOUTME: Prometheus collectors for store activity and pipeline health
// ABOUTME: Registers on a private registry served by the web dashboard

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/models"
	"github.com/harperreed/revenueos/store"
)

const namespace = "revenueos"

// Collector implements store.Recorder and refreshes the pipeline gauges
// from every committed snapshot.
type Collector struct {
	registry *prometheus.Registry

	mutations       *prometheus.CounterVec
	persistFailures prometheus.Counter
	loadFallbacks   *prometheus.CounterVec
	pipelineValue   prometheus.Gauge
	forecast        prometheus.Gauge
	activeDeals     prometheus.Gauge
}

func New() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "mutations_total",
			Help:      "Committed store mutations by operation.",
		}, []string{"op"}),
		persistFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "persist_failures_total",
			Help:      "Snapshot writes that failed.",
		}),
		loadFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "load_fallbacks_total",
			Help:      "Loads that installed the default dataset, by reason.",
		}, []string{"reason"}),
		pipelineValue: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_value",
			Help:      "Total value of active deals.",
		}),
		forecast: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "forecast_revenue",
			Help:      "Probability weighted revenue of active deals.",
		}),
		activeDeals: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_deals",
			Help:      "Deals not yet won or lost.",
		}),
	}
}

func (c *Collector) Mutation(op string) {
	c.mutations.WithLabelValues(op).Inc()
}

func (c *Collector) PersistFailure() {
	c.persistFailures.Inc()
}

func (c *Collector) LoadFallback(reason string) {
	c.loadFallbacks.WithLabelValues(reason).Inc()
}

// Observe refreshes the gauges. Its signature matches store.Subscriber.
func (c *Collector) Observe(state models.AppState) error {
	c.pipelineValue.Set(insights.PipelineValue(state.Deals))
	c.forecast.Set(insights.Forecast(state.Deals, insights.DashboardProbabilities))
	c.activeDeals.Set(float64(len(insights.ActiveDeals(state.Deals))))
	return nil
}

// Watch keeps the gauges in step with s. Load installs a snapshot without
// notifying subscribers, so the current one is observed right away.
func (c *Collector) Watch(s *store.Store) (unsubscribe func()) {
	unsubscribe = s.Subscribe(c.Observe)
	_ = c.Observe(s.Get())
	return unsubscribe
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
