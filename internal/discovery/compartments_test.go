package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catherinevee/inventorymgr/internal/providers"
	"github.com/catherinevee/inventorymgr/internal/providers/mock"
	"github.com/catherinevee/inventorymgr/pkg/models"
)

func assertScopeInvariants(t *testing.T, scopes []models.Scope) {
	t.Helper()
	require.NotEmpty(t, scopes)
	assert.True(t, scopes[0].IsRoot(), "root scope must come first")

	ids := make(map[string]bool)
	roots := 0
	for _, s := range scopes {
		assert.False(t, ids[s.ID], "duplicate scope id %s", s.ID)
		ids[s.ID] = true
		if s.IsRoot() {
			roots++
		}
	}
	assert.Equal(t, 1, roots)
}

func TestListScopesMock(t *testing.T) {
	env := mockEnv(t)

	scopes := env.engine.ListScopes(context.Background())

	require.Len(t, scopes, 4)
	assertScopeInvariants(t, scopes)
	assert.Equal(t, models.MockRootID, scopes[0].ID)
	assert.Equal(t, models.RootScopeName, scopes[0].Name)
	assert.Equal(t, []string{"production", "staging", "development"},
		[]string{scopes[1].Name, scopes[2].Name, scopes[3].Name})
	assert.Zero(t, env.clients.TotalCalls())

	_, cached := env.store.Get(context.Background(), "oci:compartments")
	assert.True(t, cached)
}

func TestListScopesLive(t *testing.T) {
	env := liveEnv(t)
	env.clients.Compartments = []providers.Compartment{
		{ID: testTenancy, Name: "(root)", LifecycleState: "ACTIVE"},
		{ID: "ocid1.compartment.oc1..a", Name: "apps", Description: providers.String("Applications"), LifecycleState: "ACTIVE", CompartmentID: providers.String(testTenancy)},
		{ID: "ocid1.compartment.oc1..b", Name: "(root)", LifecycleState: "ACTIVE"},
		{ID: "ocid1.compartment.oc1..a", Name: "apps-duplicate", LifecycleState: "ACTIVE"},
		{ID: "ocid1.compartment.oc1..c", Name: "apps", LifecycleState: "ACTIVE", CompartmentID: providers.String("ocid1.compartment.oc1..a")},
	}

	scopes := env.engine.ListScopes(context.Background())

	require.Len(t, scopes, 4)
	assertScopeInvariants(t, scopes)

	root := scopes[0]
	assert.Equal(t, testTenancy, root.ID)
	assert.Equal(t, models.RootScopeName, root.Name)
	assert.Equal(t, models.RootScopeDescription, root.Description)

	assert.Equal(t, "apps", scopes[1].Name)
	assert.Equal(t, "Applications", scopes[1].Description)

	assert.Equal(t, models.RootScopeName, scopes[2].Name, "provider root label is renamed")
	assert.Equal(t, models.DefaultDescription, scopes[2].Description)
	assert.Equal(t, testTenancy, scopes[2].ParentID)

	assert.Equal(t, "ocid1.compartment.oc1..c", scopes[3].ID, "same names are not deduplicated")
	assert.Equal(t, "ocid1.compartment.oc1..a", scopes[3].ParentID)
}

func TestListScopesCached(t *testing.T) {
	env := liveEnv(t)
	env.clients.Compartments = []providers.Compartment{{ID: "ocid1.compartment.oc1..a", Name: "apps"}}

	first := env.engine.ListScopes(context.Background())
	second := env.engine.ListScopes(context.Background())

	assert.Equal(t, first, second)
	assert.Equal(t, 1, env.clients.CallCount(mock.MethodListCompartments))
}

func TestListScopesErrorFallback(t *testing.T) {
	env := liveEnv(t)
	env.clients.SetError(mock.MethodListCompartments, errors.New("boom"))

	scopes := env.engine.ListScopes(context.Background())

	require.Len(t, scopes, 1)
	assert.Equal(t, models.ErrorFallbackID, scopes[0].ID)
	assert.Equal(t, models.ErrorFallbackScopeName, scopes[0].Name)

	env.engine.ListScopes(context.Background())
	assert.Equal(t, 2, env.clients.CallCount(mock.MethodListCompartments), "fallback must not be cached")
}
