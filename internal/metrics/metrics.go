package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics - счетчики обработки табелей
type Metrics struct {
	registry *prometheus.Registry

	reports      *prometheus.CounterVec
	records      prometheus.Counter
	absences     prometheus.Counter
	absenceSpans prometheus.Counter
	duration     prometheus.Histogram
}

// New создает набор метрик в собственном реестре
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "attendance",
			Name:      "reports_total",
			Help:      "Processed attendance uploads by outcome.",
		}, []string{"status"}),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "attendance",
			Name:      "records_total",
			Help:      "Attendance records read from uploaded workbooks.",
		}),
		absences: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "attendance",
			Name:      "absences_total",
			Help:      "Absent weekdays found in consolidated reports.",
		}),
		absenceSpans: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "attendance",
			Name:      "absence_spans_total",
			Help:      "Contiguous absence spans detected.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "attendance",
			Name:      "report_duration_seconds",
			Help:      "Time spent generating both reports.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}),
	}

	m.registry.MustRegister(m.reports, m.records, m.absences, m.absenceSpans, m.duration)
	return m
}

// Registry реестр для HTTP-обработчика
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveSuccess учитывает успешно построенный отчет
func (m *Metrics) ObserveSuccess(records, absences, spans int, elapsed time.Duration) {
	m.reports.WithLabelValues("succeeded").Inc()
	m.records.Add(float64(records))
	m.absences.Add(float64(absences))
	m.absenceSpans.Add(float64(spans))
	m.duration.Observe(elapsed.Seconds())
}

// ObserveFailure учитывает файл, который не удалось обработать
func (m *Metrics) ObserveFailure(elapsed time.Duration) {
	m.reports.WithLabelValues("failed").Inc()
	m.duration.Observe(elapsed.Seconds())
}
