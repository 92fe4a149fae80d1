package oci

import (
	"context"

	"github.com/oracle/oci-go-sdk/v65/apigateway"
	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/containerengine"
	"github.com/oracle/oci-go-sdk/v65/core"
	"github.com/oracle/oci-go-sdk/v65/database"
	"github.com/oracle/oci-go-sdk/v65/filestorage"
	"github.com/oracle/oci-go-sdk/v65/identity"
	"github.com/oracle/oci-go-sdk/v65/loadbalancer"
	"github.com/oracle/oci-go-sdk/v65/monitoring"

	"github.com/catherinevee/inventorymgr/internal/providers"
)

type identityAdapter struct {
	client identity.IdentityClient
}

func (a *identityAdapter) ListCompartments(ctx context.Context, tenancyID string) ([]providers.Compartment, error) {
	items, err := listAll(func(page *string) ([]identity.Compartment, *string, error) {
		resp, err := a.client.ListCompartments(ctx, identity.ListCompartmentsRequest{
			CompartmentId:          common.String(tenancyID),
			CompartmentIdInSubtree: common.Bool(true),
			AccessLevel:            identity.ListCompartmentsAccessLevelAny,
			Page:                   page,
		})
		return resp.Items, resp.OpcNextPage, err
	})
	if err != nil {
		return nil, err
	}

	out := make([]providers.Compartment, 0, len(items))
	for _, c := range items {
		out = append(out, providers.Compartment{
			ID:             deref(c.Id),
			Name:           deref(c.Name),
			Description:    c.Description,
			LifecycleState: string(c.LifecycleState),
			CompartmentID:  c.CompartmentId,
			TimeCreated:    sdkTime(c.TimeCreated),
		})
	}
	return out, nil
}

func (a *identityAdapter) ListAvailabilityDomains(ctx context.Context, compartmentID string) ([]providers.AvailabilityDomain, error) {
	resp, err := a.client.ListAvailabilityDomains(ctx, identity.ListAvailabilityDomainsRequest{
		CompartmentId: common.String(compartmentID),
	})
	if err != nil {
		return nil, translateError(err)
	}

	out := make([]providers.AvailabilityDomain, 0, len(resp.Items))
	for _, ad := range resp.Items {
		out = append(out, providers.AvailabilityDomain{Name: deref(ad.Name)})
	}
	return out, nil
}

type computeAdapter struct {
	client core.ComputeClient
}

func (a *computeAdapter) ListInstances(ctx context.Context, compartmentID string) ([]providers.Instance, error) {
	items, err := listAll(func(page *string) ([]core.Instance, *string, error) {
		resp, err := a.client.ListInstances(ctx, core.ListInstancesRequest{
			CompartmentId: common.String(compartmentID),
			Page:          page,
		})
		return resp.Items, resp.OpcNextPage, err
	})
	if err != nil {
		return nil, err
	}

	out := make([]providers.Instance, 0, len(items))
	for _, in := range items {
		out = append(out, providers.Instance{
			ID:                 deref(in.Id),
			DisplayName:        deref(in.DisplayName),
			LifecycleState:     string(in.LifecycleState),
			Shape:              in.Shape,
			AvailabilityDomain: in.AvailabilityDomain,
			Region:             in.Region,
			TimeCreated:        sdkTime(in.TimeCreated),
		})
	}
	return out, nil
}

type databaseAdapter struct {
	client database.DatabaseClient
}

func (a *databaseAdapter) ListDBSystems(ctx context.Context, compartmentID string) ([]providers.DBSystem, error) {
	items, err := listAll(func(page *string) ([]database.DbSystemSummary, *string, error) {
		resp, err := a.client.ListDbSystems(ctx, database.ListDbSystemsRequest{
			CompartmentId: common.String(compartmentID),
			Page:          page,
		})
		return resp.Items, resp.OpcNextPage, err
	})
	if err != nil {
		return nil, err
	}

	out := make([]providers.DBSystem, 0, len(items))
	for _, s := range items {
		out = append(out, providers.DBSystem{
			ID:                   deref(s.Id),
			DisplayName:          deref(s.DisplayName),
			LifecycleState:       string(s.LifecycleState),
			DatabaseEdition:      enumString(string(s.DatabaseEdition)),
			Shape:                s.Shape,
			CPUCoreCount:         s.CpuCoreCount,
			DataStorageSizeInGBs: s.DataStorageSizeInGBs,
			NodeCount:            s.NodeCount,
			AvailabilityDomain:   s.AvailabilityDomain,
			TimeCreated:          sdkTime(s.TimeCreated),
		})
	}
	return out, nil
}

func (a *databaseAdapter) ListDBHomes(ctx context.Context, compartmentID, dbSystemID string) ([]providers.DBHome, error) {
	items, err := listAll(func(page *string) ([]database.DbHomeSummary, *string, error) {
		resp, err := a.client.ListDbHomes(ctx, database.ListDbHomesRequest{
			CompartmentId: common.String(compartmentID),
			DbSystemId:    common.String(dbSystemID),
			Page:          page,
		})
		return resp.Items, resp.OpcNextPage, err
	})
	if err != nil {
		return nil, err
	}

	out := make([]providers.DBHome, 0, len(items))
	for _, h := range items {
		out = append(out, providers.DBHome{
			ID:             deref(h.Id),
			DisplayName:    deref(h.DisplayName),
			LifecycleState: string(h.LifecycleState),
			DBSystemID:     h.DbSystemId,
		})
	}
	return out, nil
}

func (a *databaseAdapter) ListDatabases(ctx context.Context, compartmentID, dbHomeID string) ([]providers.Database, error) {
	items, err := listAll(func(page *string) ([]database.DatabaseSummary, *string, error) {
		resp, err := a.client.ListDatabases(ctx, database.ListDatabasesRequest{
			CompartmentId: common.String(compartmentID),
			DbHomeId:      common.String(dbHomeID),
			Page:          page,
		})
		return resp.Items, resp.OpcNextPage, err
	})
	if err != nil {
		return nil, err
	}

	out := make([]providers.Database, 0, len(items))
	for _, d := range items {
		out = append(out, providers.Database{
			ID:             deref(d.Id),
			DBName:         deref(d.DbName),
			LifecycleState: string(d.LifecycleState),
			DBWorkload:     d.DbWorkload,
			CharacterSet:   d.CharacterSet,
			PDBName:        d.PdbName,
			IsCDB:          d.IsCdb,
			TimeCreated:    sdkTime(d.TimeCreated),
		})
	}
	return out, nil
}

func (a *databaseAdapter) ListAutonomousDatabases(ctx context.Context, compartmentID string) ([]providers.AutonomousDatabase, error) {
	items, err := listAll(func(page *string) ([]database.AutonomousDatabaseSummary, *string, error) {
		resp, err := a.client.ListAutonomousDatabases(ctx, database.ListAutonomousDatabasesRequest{
			CompartmentId: common.String(compartmentID),
			Page:          page,
		})
		return resp.Items, resp.OpcNextPage, err
	})
	if err != nil {
		return nil, err
	}

	out := make([]providers.AutonomousDatabase, 0, len(items))
	for _, d := range items {
		out = append(out, providers.AutonomousDatabase{
			ID:                   deref(d.Id),
			DisplayName:          deref(d.DisplayName),
			LifecycleState:       string(d.LifecycleState),
			DBName:               d.DbName,
			DBWorkload:           enumString(string(d.DbWorkload)),
			CPUCoreCount:         d.CpuCoreCount,
			DataStorageSizeInTBs: d.DataStorageSizeInTBs,
			TimeCreated:          sdkTime(d.TimeCreated),
		})
	}
	return out, nil
}

type containerEngineAdapter struct {
	client containerengine.ContainerEngineClient
}

func (a *containerEngineAdapter) ListClusters(ctx context.Context, compartmentID string) ([]providers.Cluster, error) {
	items, err := listAll(func(page *string) ([]containerengine.ClusterSummary, *string, error) {
		resp, err := a.client.ListClusters(ctx, containerengine.ListClustersRequest{
			CompartmentId: common.String(compartmentID),
			Page:          page,
		})
		return resp.Items, resp.OpcNextPage, err
	})
	if err != nil {
		return nil, err
	}

	out := make([]providers.Cluster, 0, len(items))
	for _, c := range items {
		cluster := providers.Cluster{
			ID:                deref(c.Id),
			Name:              deref(c.Name),
			LifecycleState:    string(c.LifecycleState),
			KubernetesVersion: c.KubernetesVersion,
			VCNID:             c.VcnId,
		}
		if c.Metadata != nil {
			cluster.TimeCreated = sdkTime(c.Metadata.TimeCreated)
		}
		out = append(out, cluster)
	}
	return out, nil
}

type gatewayAdapter struct {
	client apigateway.GatewayClient
}

func (a *gatewayAdapter) ListGateways(ctx context.Context, compartmentID string) ([]providers.Gateway, error) {
	items, err := listAll(func(page *string) ([]apigateway.GatewaySummary, *string, error) {
		resp, err := a.client.ListGateways(ctx, apigateway.ListGatewaysRequest{
			CompartmentId: common.String(compartmentID),
			Page:          page,
		})
		return resp.Items, resp.OpcNextPage, err
	})
	if err != nil {
		return nil, err
	}

	out := make([]providers.Gateway, 0, len(items))
	for _, g := range items {
		out = append(out, providers.Gateway{
			ID:             deref(g.Id),
			DisplayName:    deref(g.DisplayName),
			LifecycleState: string(g.LifecycleState),
			Hostname:       g.Hostname,
			TimeCreated:    sdkTime(g.TimeCreated),
		})
	}
	return out, nil
}

type loadBalancerAdapter struct {
	client loadbalancer.LoadBalancerClient
}

func (a *loadBalancerAdapter) ListLoadBalancers(ctx context.Context, compartmentID string) ([]providers.LoadBalancer, error) {
	items, err := listAll(func(page *string) ([]loadbalancer.LoadBalancer, *string, error) {
		resp, err := a.client.ListLoadBalancers(ctx, loadbalancer.ListLoadBalancersRequest{
			CompartmentId: common.String(compartmentID),
			Page:          page,
		})
		return resp.Items, resp.OpcNextPage, err
	})
	if err != nil {
		return nil, err
	}

	out := make([]providers.LoadBalancer, 0, len(items))
	for _, lb := range items {
		out = append(out, providers.LoadBalancer{
			ID:             deref(lb.Id),
			DisplayName:    deref(lb.DisplayName),
			LifecycleState: string(lb.LifecycleState),
			ShapeName:      lb.ShapeName,
			IsPrivate:      lb.IsPrivate,
			TimeCreated:    sdkTime(lb.TimeCreated),
		})
	}
	return out, nil
}

type networkAdapter struct {
	client core.VirtualNetworkClient
}

func (a *networkAdapter) ListVCNs(ctx context.Context, compartmentID string) ([]providers.VCN, error) {
	items, err := listAll(func(page *string) ([]core.Vcn, *string, error) {
		resp, err := a.client.ListVcns(ctx, core.ListVcnsRequest{
			CompartmentId: common.String(compartmentID),
			Page:          page,
		})
		return resp.Items, resp.OpcNextPage, err
	})
	if err != nil {
		return nil, err
	}

	out := make([]providers.VCN, 0, len(items))
	for _, v := range items {
		out = append(out, providers.VCN{
			ID:             deref(v.Id),
			DisplayName:    deref(v.DisplayName),
			LifecycleState: string(v.LifecycleState),
			CIDRBlock:      v.CidrBlock,
			TimeCreated:    sdkTime(v.TimeCreated),
		})
	}
	return out, nil
}

func (a *networkAdapter) ListSubnets(ctx context.Context, compartmentID, vcnID string) ([]providers.Subnet, error) {
	items, err := listAll(func(page *string) ([]core.Subnet, *string, error) {
		resp, err := a.client.ListSubnets(ctx, core.ListSubnetsRequest{
			CompartmentId: common.String(compartmentID),
			VcnId:         common.String(vcnID),
			Page:          page,
		})
		return resp.Items, resp.OpcNextPage, err
	})
	if err != nil {
		return nil, err
	}

	out := make([]providers.Subnet, 0, len(items))
	for _, s := range items {
		out = append(out, providers.Subnet{
			ID:             deref(s.Id),
			DisplayName:    deref(s.DisplayName),
			LifecycleState: string(s.LifecycleState),
			CIDRBlock:      s.CidrBlock,
			VCNID:          s.VcnId,
			TimeCreated:    sdkTime(s.TimeCreated),
		})
	}
	return out, nil
}

type blockStorageAdapter struct {
	client core.BlockstorageClient
}

func (a *blockStorageAdapter) ListVolumes(ctx context.Context, compartmentID string) ([]providers.Volume, error) {
	items, err := listAll(func(page *string) ([]core.Volume, *string, error) {
		resp, err := a.client.ListVolumes(ctx, core.ListVolumesRequest{
			CompartmentId: common.String(compartmentID),
			Page:          page,
		})
		return resp.Items, resp.OpcNextPage, err
	})
	if err != nil {
		return nil, err
	}

	out := make([]providers.Volume, 0, len(items))
	for _, v := range items {
		out = append(out, providers.Volume{
			ID:                 deref(v.Id),
			DisplayName:        deref(v.DisplayName),
			LifecycleState:     string(v.LifecycleState),
			SizeInGBs:          v.SizeInGBs,
			AvailabilityDomain: v.AvailabilityDomain,
			VolumeGroupID:      v.VolumeGroupId,
			IsHydrated:         v.IsHydrated,
			TimeCreated:        sdkTime(v.TimeCreated),
		})
	}
	return out, nil
}

type fileStorageAdapter struct {
	client filestorage.FileStorageClient
}

func (a *fileStorageAdapter) ListFileSystems(ctx context.Context, compartmentID, availabilityDomain string) ([]providers.FileSystem, error) {
	items, err := listAll(func(page *string) ([]filestorage.FileSystemSummary, *string, error) {
		resp, err := a.client.ListFileSystems(ctx, filestorage.ListFileSystemsRequest{
			CompartmentId:      common.String(compartmentID),
			AvailabilityDomain: common.String(availabilityDomain),
			Page:               page,
		})
		return resp.Items, resp.OpcNextPage, err
	})
	if err != nil {
		return nil, err
	}

	out := make([]providers.FileSystem, 0, len(items))
	for _, fs := range items {
		out = append(out, providers.FileSystem{
			ID:                 deref(fs.Id),
			DisplayName:        deref(fs.DisplayName),
			LifecycleState:     string(fs.LifecycleState),
			AvailabilityDomain: fs.AvailabilityDomain,
			MeteredBytes:       fs.MeteredBytes,
			TimeCreated:        sdkTime(fs.TimeCreated),
		})
	}
	return out, nil
}

type monitoringAdapter struct {
	client monitoring.MonitoringClient
}

func (a *monitoringAdapter) SummarizeMetrics(ctx context.Context, query providers.MetricQuery) ([]providers.Datapoint, error) {
	resp, err := a.client.SummarizeMetricsData(ctx, monitoring.SummarizeMetricsDataRequest{
		CompartmentId:          common.String(query.CompartmentID),
		CompartmentIdInSubtree: common.Bool(query.InSubtree),
		SummarizeMetricsDataDetails: monitoring.SummarizeMetricsDataDetails{
			Namespace: common.String(query.Namespace),
			Query:     common.String(query.Query),
			StartTime: &common.SDKTime{Time: query.Start},
			EndTime:   &common.SDKTime{Time: query.End},
		},
	})
	if err != nil {
		return nil, translateError(err)
	}

	var out []providers.Datapoint
	for _, series := range resp.Items {
		for _, dp := range series.AggregatedDatapoints {
			if dp.Value == nil {
				continue
			}
			point := providers.Datapoint{Value: *dp.Value}
			if dp.Timestamp != nil {
				point.Timestamp = dp.Timestamp.Time
			}
			out = append(out, point)
		}
	}
	return out, nil
}
