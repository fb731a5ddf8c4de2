package port

import "time"

// IngestObserver records the outcome of every ingestion attempt.
type IngestObserver interface {
	ObserveIngestion(kind, outcome string, sizeBytes int64, d time.Duration)
}
