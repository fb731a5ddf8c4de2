package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/fhuszti/event-medias-go/internal/port"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "event_medias"

// IngestionObserver exports ingestion counters and latencies to Prometheus.
type IngestionObserver struct {
	ingestions    *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	uploadedBytes *prometheus.CounterVec
}

// compile-time check: *IngestionObserver must satisfy port.IngestObserver
var _ port.IngestObserver = (*IngestionObserver)(nil)

// NewIngestionObserver registers the ingestion metrics on reg, reusing
// collectors that are already registered there.
func NewIngestionObserver(reg prometheus.Registerer) (*IngestionObserver, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	ingestions, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingestions_total",
		Help:      "Ingestion attempts by asset kind and outcome.",
	}, []string{"kind", "outcome"}))
	if err != nil {
		return nil, err
	}
	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ingestion_duration_seconds",
		Help:      "Time spent normalising and storing an asset.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"}))
	if err != nil {
		return nil, err
	}
	uploaded, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploaded_bytes_total",
		Help:      "Bytes written to object storage.",
	}, []string{"kind"}))
	if err != nil {
		return nil, err
	}

	return &IngestionObserver{ingestions: ingestions, duration: duration, uploadedBytes: uploaded}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register ingestion metric: %w", err)
	}
	return c, nil
}

func (o *IngestionObserver) ObserveIngestion(kind, outcome string, sizeBytes int64, d time.Duration) {
	if o == nil {
		return
	}
	o.ingestions.WithLabelValues(kind, outcome).Inc()
	o.duration.WithLabelValues(kind).Observe(d.Seconds())
	if outcome != string(port.OutcomeRejected) && sizeBytes > 0 {
		o.uploadedBytes.WithLabelValues(kind).Add(float64(sizeBytes))
	}
}

// Noop discards every observation, used when METRICS_ENABLED is false.
type Noop struct{}

// compile-time check: Noop must satisfy port.IngestObserver
var _ port.IngestObserver = Noop{}

func (Noop) ObserveIngestion(string, string, int64, time.Duration) {}
