package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder on a private registry.
type PrometheusRecorder struct {
	reg          *prom.Registry
	loadDuration prom.Histogram
	postsLoaded  prom.Gauge
	postsSkipped prom.Gauge
	warnings     prom.Counter
	rebuilds     *prom.CounterVec
}

func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		loadDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "ylwblog",
			Name:      "load_duration_seconds",
			Help:      "Duration of a full post load",
			Buckets:   prom.DefBuckets,
		}),
		postsLoaded: prom.NewGauge(prom.GaugeOpts{
			Namespace: "ylwblog",
			Name:      "posts_loaded",
			Help:      "Posts in the last load",
		}),
		postsSkipped: prom.NewGauge(prom.GaugeOpts{
			Namespace: "ylwblog",
			Name:      "posts_skipped",
			Help:      "Post sources dropped by the last load",
		}),
		warnings: prom.NewCounter(prom.CounterOpts{
			Namespace: "ylwblog",
			Name:      "load_warnings_total",
			Help:      "Warnings raised while loading posts",
		}),
		rebuilds: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "ylwblog",
			Name:      "rebuilds_total",
			Help:      "Rebuilds by outcome",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.loadDuration, pr.postsLoaded, pr.postsSkipped, pr.warnings, pr.rebuilds)
	return pr
}

func (p *PrometheusRecorder) ObserveLoad(d time.Duration, loaded, skipped int) {
	p.loadDuration.Observe(d.Seconds())
	p.postsLoaded.Set(float64(loaded))
	p.postsSkipped.Set(float64(skipped))
}

func (p *PrometheusRecorder) IncWarnings(n int) {
	if n > 0 {
		p.warnings.Add(float64(n))
	}
}

func (p *PrometheusRecorder) IncRebuild(r Result) {
	p.rebuilds.WithLabelValues(string(r)).Inc()
}

func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.reg
}

// Handler serves the recorder's registry in the Prometheus text format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
