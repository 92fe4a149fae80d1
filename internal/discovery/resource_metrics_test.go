package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catherinevee/inventorymgr/internal/providers"
	"github.com/catherinevee/inventorymgr/internal/providers/mock"
	errorspkg "github.com/catherinevee/inventorymgr/internal/shared/errors"
	"github.com/catherinevee/inventorymgr/pkg/models"
)

const testInstance = "ocid1.instance.oc1..vm"

func TestResourceMetricsMock(t *testing.T) {
	env := mockEnv(t)

	m, err := env.engine.GetResourceMetrics(context.Background(), testInstance, "")
	require.NoError(t, err)

	assert.Equal(t, testInstance, m.ResourceID)
	assert.Equal(t, models.ResourceTypeComputeInstance, m.ResourceType)
	assert.Equal(t, 62.5, m.Metrics.CPUUtilization)
	assert.Equal(t, 71.3, m.Metrics.MemoryUtilization)
	assert.Equal(t, int64(12582912), m.Metrics.NetworkBytesIn)
	assert.Equal(t, int64(10485760), m.Metrics.NetworkBytesOut)
	assert.Equal(t, models.HealthHealthy, m.HealthStatus)

	_, cached := env.store.Get(context.Background(), "oci:metrics:"+testInstance+":compute_instance")
	assert.True(t, cached)
}

func TestResourceMetricsLive(t *testing.T) {
	env := liveEnv(t)
	env.clients.Datapoints["CpuUtilization"] = []providers.Datapoint{
		{Timestamp: testNow.Add(-2 * time.Minute), Value: 40},
		{Timestamp: testNow.Add(-time.Minute), Value: 95},
	}
	env.clients.Datapoints["MemoryUtilization"] = []providers.Datapoint{{Timestamp: testNow, Value: 55}}
	env.clients.Datapoints["NetworksBytesIn"] = []providers.Datapoint{{Timestamp: testNow, Value: 2048}}

	m, err := env.engine.GetResourceMetrics(context.Background(), testInstance, "compute_instance")
	require.NoError(t, err)

	assert.Equal(t, 95.0, m.Metrics.CPUUtilization)
	assert.Equal(t, 55.0, m.Metrics.MemoryUtilization)
	assert.Equal(t, int64(2048), m.Metrics.NetworkBytesIn)
	assert.Zero(t, m.Metrics.NetworkBytesOut)
	assert.Equal(t, models.HealthCritical, m.HealthStatus)
	assert.Equal(t, testNow, m.Timestamp)

	queries := env.clients.Queries()
	require.Len(t, queries, 4)
	for _, q := range queries {
		assert.Equal(t, "oci_computeagent", q.Namespace)
		assert.Equal(t, testTenancy, q.CompartmentID)
		assert.True(t, q.InSubtree)
		assert.Contains(t, q.Query, `resourceId = "`+testInstance+`"`)
		assert.Equal(t, time.Hour, q.End.Sub(q.Start))
	}

	_, err = env.engine.GetResourceMetrics(context.Background(), testInstance, "compute_instance")
	require.NoError(t, err)
	assert.Equal(t, 4, env.clients.CallCount(mock.MethodSummarizeMetrics))
}

func TestResourceMetricsNoData(t *testing.T) {
	env := liveEnv(t)

	m, err := env.engine.GetResourceMetrics(context.Background(), "ocid1.autonomousdatabase.oc1..adb", "autonomous_database")
	require.NoError(t, err)

	assert.Equal(t, models.HealthUnknown, m.HealthStatus)
	assert.Equal(t, 1, env.clients.CallCount(mock.MethodSummarizeMetrics))
	assert.Equal(t, "oci_autonomous_database", env.clients.Queries()[0].Namespace)
}

func TestResourceMetricsPartialFailure(t *testing.T) {
	env := liveEnv(t)
	env.clients.Datapoints["CpuUtilization"] = []providers.Datapoint{{Timestamp: testNow, Value: 80}}
	env.clients.SetErrorFor(mock.MethodSummarizeMetrics, "MemoryUtilization", errors.New("throttled"))

	m, err := env.engine.GetResourceMetrics(context.Background(), testInstance, "compute_instance")
	require.NoError(t, err)
	assert.Equal(t, models.HealthWarning, m.HealthStatus)
	assert.Zero(t, m.Metrics.MemoryUtilization)
}

func TestResourceMetricsUnavailable(t *testing.T) {
	env := liveEnv(t)
	env.clients.SetError(mock.MethodSummarizeMetrics, &providers.ServiceError{StatusCode: 503, Message: "down"})

	m, err := env.engine.GetResourceMetrics(context.Background(), testInstance, "compute_instance")
	assert.Nil(t, m)
	assert.True(t, errorspkg.IsType(err, errorspkg.ErrorTypeUnavailable))

	_, cached := env.store.Get(context.Background(), "oci:metrics:"+testInstance+":compute_instance")
	assert.False(t, cached)
}

func TestResourceMetricsValidation(t *testing.T) {
	env := mockEnv(t)

	_, err := env.engine.GetResourceMetrics(context.Background(), "", "compute_instance")
	assert.True(t, errorspkg.IsType(err, errorspkg.ErrorTypeValidation))

	_, err = env.engine.GetResourceMetrics(context.Background(), testInstance, "subnet")
	assert.True(t, errorspkg.IsType(err, errorspkg.ErrorTypeValidation))
}

func TestMetricResourceTypes(t *testing.T) {
	types := MetricResourceTypes()
	assert.Contains(t, types, models.ResourceTypeComputeInstance)
	assert.NotContains(t, types, models.ResourceTypeSubnet)
	for i := 1; i < len(types); i++ {
		assert.Less(t, string(types[i-1]), string(types[i]))
	}
}
