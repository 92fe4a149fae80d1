package concurrency

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/catherinevee/inventorymgr/internal/observability/metrics"
	errorspkg "github.com/catherinevee/inventorymgr/internal/shared/errors"
)

// Semaphore provides a counting semaphore
type Semaphore struct {
	sem chan struct{}
}

// NewSemaphore creates a new semaphore with the given capacity
func NewSemaphore(capacity int) *Semaphore {
	if capacity <= 0 {
		capacity = 1
	}
	return &Semaphore{
		sem: make(chan struct{}, capacity),
	}
}

// Acquire acquires a permit, giving up when ctx ends
func (s *Semaphore) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release releases a permit back to the semaphore
func (s *Semaphore) Release() {
	<-s.sem
}

// TryAcquire attempts to acquire a permit without blocking
func (s *Semaphore) TryAcquire() bool {
	select {
	case s.sem <- struct{}{}:
		return true
	default:
		return false
	}
}

// InFlight returns the number of held permits
func (s *Semaphore) InFlight() int {
	return len(s.sem)
}

// GateConfig bounds remote calls
type GateConfig struct {
	MaxInFlight       int
	RequestsPerSecond float64
	Burst             int
	CallTimeout       time.Duration
}

// DefaultGateConfig returns the defaults used when a field is zero
func DefaultGateConfig() GateConfig {
	return GateConfig{
		MaxInFlight:       10,
		RequestsPerSecond: 10,
		Burst:             20,
		CallTimeout:       30 * time.Second,
	}
}

// Gate is the single choke point for provider calls: it caps in-flight
// calls, waits on a token bucket and applies a per-call timeout. It never
// retries.
type Gate struct {
	sem     *Semaphore
	limiter *rate.Limiter
	timeout time.Duration
	metrics *metrics.Metrics
}

// NewGate creates a gate. A nil metrics disables recording.
func NewGate(cfg GateConfig, m *metrics.Metrics) *Gate {
	def := DefaultGateConfig()
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = def.MaxInFlight
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = def.CallTimeout
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.MaxInFlight
	}

	return &Gate{
		sem:     NewSemaphore(cfg.MaxInFlight),
		limiter: rate.NewLimiter(limit, cfg.Burst),
		timeout: cfg.CallTimeout,
		metrics: m,
	}
}

// Do runs call under the gate. Failures come back as transport errors.
func (g *Gate) Do(ctx context.Context, operation string, call func(ctx context.Context) error) error {
	ctx, span := otel.Tracer("inventorymgr/remote").Start(ctx, operation)
	defer span.End()

	if err := g.sem.Acquire(ctx); err != nil {
		return g.fail(span, operation, 0, err)
	}
	defer g.sem.Release()

	if err := g.limiter.Wait(ctx); err != nil {
		return g.fail(span, operation, 0, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	err := call(callCtx)
	elapsed := time.Since(start)

	if err != nil {
		return g.fail(span, operation, elapsed, err)
	}

	g.metrics.RecordRemoteCall(operation, metrics.StatusSuccess, elapsed)
	return nil
}

func (g *Gate) fail(span trace.Span, operation string, elapsed time.Duration, err error) error {
	status := metrics.StatusError
	if errors.Is(err, context.DeadlineExceeded) {
		status = metrics.StatusTimeout
	}
	g.metrics.RecordRemoteCall(operation, status, elapsed)

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String("remote.status", status))

	return errorspkg.NewTransportError(operation, err)
}

// Call runs fn under the gate and returns its value
func Call[T any](ctx context.Context, g *Gate, operation string, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := g.Do(ctx, operation, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}
