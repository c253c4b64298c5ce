// Package metrics exposes the chat service's Prometheus instruments.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "funia"

type instruments struct {
	answersTotal     *prometheus.CounterVec
	providerAttempts *prometheus.CounterVec
	chatDuration     *prometheus.HistogramVec
	kbReloads        *prometheus.CounterVec
	kbLoadedAt       prometheus.Gauge
}

var get = sync.OnceValue(func() *instruments {
	return &instruments{
		answersTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Chat answers by source (faq rule, provider or error kind).",
		}, []string{"source", "lang"}),
		providerAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_attempts_total",
			Help:      "Model calls by provider, model and outcome.",
		}, []string{"provider", "model", "outcome"}),
		chatDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chat_duration_seconds",
			Help:      "Latency of POST /api/chat by answer source.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"source"}),
		kbReloads: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "knowledge_reloads_total",
			Help:      "Knowledge base reloads by result.",
		}, []string{"result"}),
		kbLoadedAt: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "knowledge_loaded_timestamp_seconds",
			Help:      "Unix time the active knowledge base was loaded.",
		}),
	}
})

func RecordAnswer(source, lang string) {
	get().answersTotal.WithLabelValues(source, lang).Inc()
}

func RecordProviderAttempt(provider, model, outcome string) {
	get().providerAttempts.WithLabelValues(provider, model, outcome).Inc()
}

func ObserveChat(source string, d time.Duration) {
	get().chatDuration.WithLabelValues(source).Observe(d.Seconds())
}

func RecordReload(result string, loadedAt time.Time) {
	m := get()
	m.kbReloads.WithLabelValues(result).Inc()
	if result == "ok" {
		m.kbLoadedAt.Set(float64(loadedAt.Unix()))
	}
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
