package storage

import (
	"context"
	"time"

	"todo_api/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	storageOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todo_storage_operations_total",
			Help: "Storage backend operations by backend, operation and result",
		},
		[]string{"backend", "op", "result"},
	)
	storageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "todo_storage_operation_duration_seconds",
			Help:    "Storage backend operation latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "op"},
	)
)

func init() {
	prometheus.MustRegister(storageOps)
	prometheus.MustRegister(storageDuration)
}

type instrumented struct {
	name  string
	inner Storage
}

// Instrumented wraps s so every Read and Write is counted and timed under
// the backend label name.
func Instrumented(name string, s Storage) Storage {
	return &instrumented{name: name, inner: s}
}

func (s *instrumented) Read(ctx context.Context) ([]domain.Task, error) {
	start := time.Now()
	tasks, err := s.inner.Read(ctx)
	s.observe("read", start, err)
	return tasks, err
}

func (s *instrumented) Write(ctx context.Context, tasks []domain.Task) error {
	start := time.Now()
	err := s.inner.Write(ctx, tasks)
	s.observe("write", start, err)
	return err
}

func (s *instrumented) observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	storageOps.WithLabelValues(s.name, op, result).Inc()
	storageDuration.WithLabelValues(s.name, op).Observe(time.Since(start).Seconds())
}
