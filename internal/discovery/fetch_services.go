package discovery

import (
	"context"

	"github.com/catherinevee/inventorymgr/internal/concurrency"
	"github.com/catherinevee/inventorymgr/internal/providers"
	"github.com/catherinevee/inventorymgr/pkg/models"
)

func listClusters(ctx context.Context, d *deps, scopeID string) ([]models.Resource, error) {
	client := d.clients().ContainerEngine
	clusters, err := concurrency.Call(ctx, d.gate, "ListClusters", func(ctx context.Context) ([]providers.Cluster, error) {
		return client.ListClusters(ctx, scopeID)
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.Resource, 0, len(clusters))
	for _, c := range clusters {
		out = append(out, models.Resource{
			Type:           models.ResourceTypeContainerCluster,
			ID:             c.ID,
			DisplayName:    c.Name,
			LifecycleState: c.LifecycleState,
			TimeCreated:    utc(c.TimeCreated),
			Cluster: &models.ClusterAttributes{
				KubernetesVersion: stringOr(c.KubernetesVersion, unknownValue),
				VCNID:             stringValue(c.VCNID),
			},
		})
	}
	return out, nil
}

func listGateways(ctx context.Context, d *deps, scopeID string) ([]models.Resource, error) {
	client := d.clients().APIGateway
	gateways, err := concurrency.Call(ctx, d.gate, "ListGateways", func(ctx context.Context) ([]providers.Gateway, error) {
		return client.ListGateways(ctx, scopeID)
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.Resource, 0, len(gateways))
	for _, g := range gateways {
		out = append(out, models.Resource{
			Type:           models.ResourceTypeAPIGateway,
			ID:             g.ID,
			DisplayName:    g.DisplayName,
			LifecycleState: g.LifecycleState,
			TimeCreated:    utc(g.TimeCreated),
			Gateway:        &models.GatewayAttributes{Hostname: stringOr(g.Hostname, defaultHostname)},
		})
	}
	return out, nil
}

func listLoadBalancers(ctx context.Context, d *deps, scopeID string) ([]models.Resource, error) {
	client := d.clients().LoadBalancer
	lbs, err := concurrency.Call(ctx, d.gate, "ListLoadBalancers", func(ctx context.Context) ([]providers.LoadBalancer, error) {
		return client.ListLoadBalancers(ctx, scopeID)
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.Resource, 0, len(lbs))
	for _, lb := range lbs {
		out = append(out, models.Resource{
			Type:           models.ResourceTypeLoadBalancer,
			ID:             lb.ID,
			DisplayName:    lb.DisplayName,
			LifecycleState: lb.LifecycleState,
			TimeCreated:    utc(lb.TimeCreated),
			LoadBalancer: &models.LoadBalancerAttributes{
				ShapeName: stringOr(lb.ShapeName, unknownValue),
				IsPrivate: boolOr(lb.IsPrivate, false),
			},
		})
	}
	return out, nil
}
