package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/catherinevee/inventorymgr/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// ErrDegraded marks a check that is operational but not at full capability.
// Wrap it to attach a reason.
var ErrDegraded = errors.New("degraded")

// Check represents a health check
type Check struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Timeout     time.Duration `json:"timeout"`
	Critical    bool          `json:"critical"`
	CheckFunc   func(context.Context) error
}

// Result represents the result of a health check
type Result struct {
	Name        string        `json:"name"`
	Status      Status        `json:"status"`
	Message     string        `json:"message,omitempty"`
	Error       string        `json:"error,omitempty"`
	Duration    time.Duration `json:"duration"`
	LastChecked time.Time     `json:"last_checked"`
}

// Report represents a complete health report
type Report struct {
	Status      Status        `json:"status"`
	Timestamp   time.Time     `json:"timestamp"`
	Version     string        `json:"version"`
	Uptime      time.Duration `json:"uptime"`
	Results     []Result      `json:"results"`
	TotalChecks int           `json:"total_checks"`
	Healthy     int           `json:"healthy"`
	Unhealthy   int           `json:"unhealthy"`
	Degraded    int           `json:"degraded"`
}

// Service manages health checks
type Service struct {
	checks    map[string]Check
	mu        sync.RWMutex
	startTime time.Time
	version   string
	log       logger.Logger
}

// NewService creates a new health service
func NewService(version string, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		checks:    make(map[string]Check),
		startTime: time.Now(),
		version:   version,
		log:       log.WithFields(logger.String("component", "health")),
	}
}

// RegisterCheck registers a health check
func (s *Service) RegisterCheck(check Check) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if check.Timeout <= 0 {
		check.Timeout = 5 * time.Second
	}
	s.checks[check.Name] = check

	s.log.Debug("Registered health check",
		logger.String("name", check.Name),
		logger.Bool("critical", check.Critical),
	)
}

// RunCheck runs a specific health check. Unknown names report false.
func (s *Service) RunCheck(ctx context.Context, name string) (Result, bool) {
	s.mu.RLock()
	check, exists := s.checks[name]
	s.mu.RUnlock()

	if !exists {
		return Result{}, false
	}

	checkCtx, cancel := context.WithTimeout(ctx, check.Timeout)
	defer cancel()

	checkCtx, span := otel.Tracer("inventorymgr/health").Start(checkCtx, "health.check")
	span.SetAttributes(attribute.String("check", name))
	defer span.End()

	start := time.Now()
	err := check.CheckFunc(checkCtx)
	duration := time.Since(start)

	result := Result{
		Name:        check.Name,
		Duration:    duration,
		LastChecked: time.Now(),
	}

	switch {
	case err == nil:
		result.Status = StatusHealthy
		result.Message = "Check passed"
	case errors.Is(err, ErrDegraded):
		result.Status = StatusDegraded
		result.Message = err.Error()
	default:
		result.Status = StatusUnhealthy
		result.Error = err.Error()
		s.log.Warn("Health check failed",
			logger.String("name", check.Name),
			logger.Error(err),
			logger.Duration("duration", duration),
		)
	}

	return result, true
}

// RunAllChecks runs all registered health checks concurrently
func (s *Service) RunAllChecks(ctx context.Context) Report {
	s.mu.RLock()
	checksCopy := make(map[string]Check, len(s.checks))
	for k, v := range s.checks {
		checksCopy[k] = v
	}
	s.mu.RUnlock()

	report := Report{
		Timestamp:   time.Now(),
		Version:     s.version,
		Uptime:      time.Since(s.startTime),
		Results:     make([]Result, 0, len(checksCopy)),
		TotalChecks: len(checksCopy),
	}

	var wg sync.WaitGroup
	resultsCh := make(chan Result, len(checksCopy))

	for name := range checksCopy {
		wg.Add(1)
		go func(checkName string) {
			defer wg.Done()
			if result, ok := s.RunCheck(ctx, checkName); ok {
				resultsCh <- result
			}
		}(name)
	}

	wg.Wait()
	close(resultsCh)

	overallStatus := StatusHealthy
	for result := range resultsCh {
		report.Results = append(report.Results, result)

		switch result.Status {
		case StatusHealthy:
			report.Healthy++
		case StatusUnhealthy:
			report.Unhealthy++
			if checksCopy[result.Name].Critical {
				overallStatus = StatusUnhealthy
			} else if overallStatus != StatusUnhealthy {
				overallStatus = StatusDegraded
			}
		case StatusDegraded:
			report.Degraded++
			if overallStatus == StatusHealthy {
				overallStatus = StatusDegraded
			}
		}
	}

	sort.Slice(report.Results, func(i, j int) bool {
		return report.Results[i].Name < report.Results[j].Name
	})
	report.Status = overallStatus

	return report
}

// HTTPHandler serves the health report. Degraded still answers 200.
func (s *Service) HTTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := s.RunAllChecks(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if report.Status == StatusUnhealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}

		_ = json.NewEncoder(w).Encode(report)
	}
}
