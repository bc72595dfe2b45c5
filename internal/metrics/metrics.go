// Package metrics содержит счётчики Prometheus для конвейера запросов
// к платёжному шлюзу.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector хранит метрики исходящих запросов клиента шлюза.
type Collector struct {
	requests *prometheus.CounterVec
	retries  prometheus.Counter
	duration *prometheus.HistogramVec
}

// New регистрирует метрики клиента в переданном реестре.
func New(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sitepay_client_requests_total",
			Help: "Количество попыток запросов к шлюзу по методам и статусам.",
		}, []string{"method", "status"}),
		retries: factory.NewCounter(prometheus.CounterOpts{
			Name: "sitepay_client_retries_total",
			Help: "Количество повторных попыток после временных сбоев.",
		}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sitepay_client_request_duration_seconds",
			Help:    "Длительность попыток запросов к шлюзу.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// ObserveRequest учитывает одну попытку запроса.
// statusCode равен нулю для сетевых ошибок без HTTP-ответа.
func (c *Collector) ObserveRequest(method string, statusCode int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveRetry учитывает одну повторную попытку.
func (c *Collector) ObserveRetry() {
	if c == nil {
		return
	}
	c.retries.Inc()
}
