package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCheck(t *testing.T) {
	s := NewService("test", nil)
	s.RegisterCheck(Check{Name: "ok", CheckFunc: func(context.Context) error { return nil }})
	s.RegisterCheck(Check{Name: "mock", CheckFunc: func(context.Context) error {
		return fmt.Errorf("serving synthetic data: %w", ErrDegraded)
	}})
	s.RegisterCheck(Check{Name: "broken", CheckFunc: func(context.Context) error { return errors.New("down") }})

	result, ok := s.RunCheck(context.Background(), "ok")
	require.True(t, ok)
	assert.Equal(t, StatusHealthy, result.Status)

	result, ok = s.RunCheck(context.Background(), "mock")
	require.True(t, ok)
	assert.Equal(t, StatusDegraded, result.Status)
	assert.Contains(t, result.Message, "synthetic")

	result, ok = s.RunCheck(context.Background(), "broken")
	require.True(t, ok)
	assert.Equal(t, StatusUnhealthy, result.Status)
	assert.Equal(t, "down", result.Error)

	_, ok = s.RunCheck(context.Background(), "missing")
	assert.False(t, ok)
}

func TestRunCheckTimeout(t *testing.T) {
	s := NewService("test", nil)
	s.RegisterCheck(Check{
		Name:    "slow",
		Timeout: 10 * time.Millisecond,
		CheckFunc: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	})

	result, ok := s.RunCheck(context.Background(), "slow")
	require.True(t, ok)
	assert.Equal(t, StatusUnhealthy, result.Status)
}

func TestRunAllChecksAggregation(t *testing.T) {
	tests := []struct {
		name     string
		critical bool
		err      error
		want     Status
	}{
		{"all healthy", true, nil, StatusHealthy},
		{"non-critical failure degrades", false, errors.New("cache down"), StatusDegraded},
		{"critical failure", true, errors.New("fatal"), StatusUnhealthy},
		{"degraded check", true, ErrDegraded, StatusDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService("test", nil)
			s.RegisterCheck(Check{Name: "base", CheckFunc: func(context.Context) error { return nil }})
			err := tt.err
			s.RegisterCheck(Check{Name: "subject", Critical: tt.critical, CheckFunc: func(context.Context) error { return err }})

			report := s.RunAllChecks(context.Background())
			assert.Equal(t, tt.want, report.Status)
			assert.Equal(t, 2, report.TotalChecks)
			require.Len(t, report.Results, 2)
			assert.Equal(t, "base", report.Results[0].Name)
		})
	}
}

func TestHTTPHandler(t *testing.T) {
	s := NewService("v1", nil)
	s.RegisterCheck(Check{Name: "provider", Critical: true, CheckFunc: func(context.Context) error { return errors.New("x") }})

	rec := httptest.NewRecorder()
	s.HTTPHandler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var report Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, StatusUnhealthy, report.Status)
	assert.Equal(t, "v1", report.Version)
}
