package discovery

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/catherinevee/inventorymgr/internal/cache"
	"github.com/catherinevee/inventorymgr/internal/concurrency"
	"github.com/catherinevee/inventorymgr/internal/logger"
	"github.com/catherinevee/inventorymgr/internal/providers"
	errorspkg "github.com/catherinevee/inventorymgr/internal/shared/errors"
	"github.com/catherinevee/inventorymgr/pkg/models"
)

const metricsWindow = time.Hour

// metricSource names the monitoring metrics of one resource type. Empty
// names are not published for that type.
type metricSource struct {
	namespace string
	cpu       string
	memory    string
	bytesIn   string
	bytesOut  string
}

var metricSources = map[models.ResourceType]metricSource{
	models.ResourceTypeComputeInstance: {
		namespace: "oci_computeagent",
		cpu:       "CpuUtilization",
		memory:    "MemoryUtilization",
		bytesIn:   "NetworksBytesIn",
		bytesOut:  "NetworksBytesOut",
	},
	models.ResourceTypeDBSystem:           {namespace: "oci_database", cpu: "CpuUtilization", memory: "MemoryUtilization"},
	models.ResourceTypeDatabase:           {namespace: "oci_database", cpu: "CpuUtilization", memory: "MemoryUtilization"},
	models.ResourceTypeAutonomousDatabase: {namespace: "oci_autonomous_database", cpu: "CpuUtilization"},
	models.ResourceTypeLoadBalancer:       {namespace: "oci_lbaas", bytesIn: "BytesReceived", bytesOut: "BytesSent"},
	models.ResourceTypeAPIGateway:         {namespace: "oci_apigateway", bytesIn: "BytesReceived", bytesOut: "BytesSent"},
}

// MetricResourceTypes lists the resource types that publish metrics
func MetricResourceTypes() []models.ResourceType {
	out := make([]models.ResourceType, 0, len(metricSources))
	for t := range metricSources {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// GetResourceMetrics returns a utilization summary for one resource. An
// empty resource type means a compute instance. In mock mode fixed values
// are served; live, a failure of every query is an unavailable error.
func (e *Engine) GetResourceMetrics(ctx context.Context, resourceID, resourceType string) (*models.ResourceMetrics, error) {
	if resourceID == "" {
		return nil, errorspkg.NewValidationError("resource_id", "resource id is required")
	}
	kind := models.ResourceType(resourceType)
	if kind == "" {
		kind = models.ResourceTypeComputeInstance
	}
	source, ok := metricSources[kind]
	if !ok {
		return nil, errorspkg.NewValidationError("resource_type", fmt.Sprintf("metrics are not available for resource type %q", resourceType))
	}
	if err := ctx.Err(); err != nil {
		return nil, errorspkg.NewUnavailableError("request cancelled before reading metrics", err)
	}

	key := cache.MetricsKey(resourceID, string(kind))
	var cached models.ResourceMetrics
	if e.deps.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	clients := e.deps.clients()
	if !e.IsLive() || clients.Monitoring == nil {
		m := mockResourceMetrics(resourceID, kind, e.deps.now())
		e.deps.cache.Set(ctx, key, m, cache.MetricsTTL)
		return m, nil
	}

	ctx, span := tracer.Start(ctx, "engine.get_resource_metrics")
	span.SetAttributes(attribute.String("resource_id", resourceID), attribute.String("resource_type", string(kind)))
	defer span.End()

	m, err := e.summarize(ctx, clients.Monitoring, resourceID, kind, source)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	e.deps.cache.Set(ctx, key, m, cache.MetricsTTL)
	return m, nil
}

type metricSample struct {
	value   float64
	sampled bool
	err     error
}

func (e *Engine) summarize(ctx context.Context, client providers.MonitoringClient, resourceID string, kind models.ResourceType, source metricSource) (*models.ResourceMetrics, error) {
	now := e.deps.now().UTC()
	tenancyID := e.TenancyID()
	log := e.log.WithContext(ctx).WithFields(logger.String("resource_id", resourceID))

	names := []string{source.cpu, source.memory, source.bytesIn, source.bytesOut}
	samples := gather(ctx, e.deps.maxConcurrency, len(names), func(ctx context.Context, i int) []metricSample {
		if names[i] == "" {
			return []metricSample{{}}
		}
		q := providers.MetricQuery{
			Namespace:     source.namespace,
			Query:         fmt.Sprintf(`%s[1m]{resourceId = "%s"}.mean()`, names[i], resourceID),
			CompartmentID: tenancyID,
			InSubtree:     true,
			Start:         now.Add(-metricsWindow),
			End:           now,
		}
		points, err := concurrency.Call(ctx, e.deps.gate, "SummarizeMetricsData", func(ctx context.Context) ([]providers.Datapoint, error) {
			return client.SummarizeMetrics(ctx, q)
		})
		if err != nil {
			log.Warn("Failed to read metric", logger.String("metric", names[i]), logger.Error(err))
			return []metricSample{{err: err}}
		}
		v, ok := latest(points)
		return []metricSample{{value: v, sampled: ok}}
	})

	var (
		attempted int
		failed    int
		lastErr   error
	)
	for i, s := range samples {
		if names[i] == "" {
			continue
		}
		attempted++
		if s.err != nil {
			failed++
			lastErr = s.err
		}
	}
	if attempted > 0 && failed == attempted {
		return nil, errorspkg.NewUnavailableError("metrics could not be retrieved", lastErr).
			WithDetails("resource_id", resourceID)
	}

	cpu := samples[0]
	return &models.ResourceMetrics{
		ResourceID:   resourceID,
		ResourceType: kind,
		Metrics: models.MetricValues{
			CPUUtilization:    cpu.value,
			MemoryUtilization: samples[1].value,
			NetworkBytesIn:    int64(samples[2].value),
			NetworkBytesOut:   int64(samples[3].value),
		},
		Timestamp:    now,
		HealthStatus: models.HealthFromCPU(cpu.value, cpu.sampled),
	}, nil
}

// latest returns the most recent datapoint value
func latest(points []providers.Datapoint) (float64, bool) {
	if len(points) == 0 {
		return 0, false
	}
	best := points[0]
	for _, p := range points[1:] {
		if p.Timestamp.After(best.Timestamp) {
			best = p
		}
	}
	return best.Value, true
}

func mockResourceMetrics(resourceID string, kind models.ResourceType, now time.Time) *models.ResourceMetrics {
	return &models.ResourceMetrics{
		ResourceID:   resourceID,
		ResourceType: kind,
		Metrics: models.MetricValues{
			CPUUtilization:    62.5,
			MemoryUtilization: 71.3,
			NetworkBytesIn:    12582912,
			NetworkBytesOut:   10485760,
		},
		Timestamp:    now.UTC(),
		HealthStatus: models.HealthHealthy,
	}
}
