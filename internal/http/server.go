// Package http exposes the ingest and dashboard API. Notifications are
// accepted on a single endpoint and handed to a sink; the dashboard endpoints
// read aggregates computed against IST time windows.
package http

import (
	"context"
	"net/http"
	"time"

	"soundpay/internal/core"
	"soundpay/internal/log"
)

// NotificationSink accepts an incoming notification for processing. Inline
// and queue-backed implementations exist; the handler does not care which.
type NotificationSink interface {
	Submit(ctx context.Context, n core.Notification) error
}

// PaymentReader reads stored payments for the dashboard.
type PaymentReader interface {
	Recent(ctx context.Context, limit int) ([]core.Payment, error)
	SumAmounts(ctx context.Context, sinceMillis int64) (float64, error)
	Count(ctx context.Context, sinceMillis int64) (int64, error)
}

// PaymentPurger clears the payment history.
type PaymentPurger interface {
	DeleteAll(ctx context.Context) error
}

type Server struct {
	http.Server

	sink     NotificationSink
	payments PaymentReader
	purger   PaymentPurger
	logger   *log.Logger
	started  time.Time

	// now is swappable for tests.
	now func() time.Time
}

func NewServer(addr string, sink NotificationSink, payments PaymentReader, purger PaymentPurger, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	s := &Server{
		sink:     sink,
		payments: payments,
		purger:   purger,
		logger:   logger.WithComponent(log.ComponentHTTP),
		started:  time.Now(),
		now:      time.Now,
	}
	s.Server = http.Server{
		Addr:    addr,
		Handler: log.Middleware(s.logger)(mux),
	}

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/notifications", s.withRequestLogging(s.handleNotifications))
	mux.HandleFunc("/api/payments", s.withRequestLogging(s.handlePayments))
	mux.HandleFunc("/api/payments/recent", s.withRequestLogging(s.handleRecentPayments))
	mux.HandleFunc("/api/payments/summary", s.withRequestLogging(s.handleSummary))

	return s
}

// withRequestLogging logs request start and completion with timing.
func (s *Server) withRequestLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := log.FromContext(r.Context())

		logger.InfoContext(r.Context(), "Request started",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		logger.InfoContext(r.Context(), "Request completed",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rec.status,
			log.FieldDuration, time.Since(start).Milliseconds())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush forwards to the underlying writer so streaming handlers keep working
// behind the logging wrapper.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
