package discovery

import (
	"context"
	"fmt"

	"github.com/catherinevee/inventorymgr/internal/concurrency"
	"github.com/catherinevee/inventorymgr/internal/logger"
	"github.com/catherinevee/inventorymgr/internal/providers"
	"github.com/catherinevee/inventorymgr/pkg/models"
)

// listDatabases walks DB systems -> DB homes -> databases and appends the
// autonomous databases. Each database follows its DB system in the output.
// Only when both top-level listings fail is the category a failure.
func listDatabases(ctx context.Context, d *deps, scopeID string) ([]models.Resource, error) {
	client := d.clients().Database
	log := d.log.WithContext(ctx).WithFields(logger.String("compartment_id", scopeID))

	systems, systemsErr := concurrency.Call(ctx, d.gate, "ListDbSystems", func(ctx context.Context) ([]providers.DBSystem, error) {
		return client.ListDBSystems(ctx, scopeID)
	})
	if systemsErr != nil {
		log.Warn("Failed to get DB systems", logger.Error(systemsErr))
	}

	out := gather(ctx, d.maxConcurrency, len(systems), func(ctx context.Context, i int) []models.Resource {
		system := systems[i]
		records := []models.Resource{normalizeDBSystem(system)}
		return append(records, listSystemDatabases(ctx, d, log, scopeID, system.ID)...)
	})

	autonomous, autonomousErr := concurrency.Call(ctx, d.gate, "ListAutonomousDatabases", func(ctx context.Context) ([]providers.AutonomousDatabase, error) {
		return client.ListAutonomousDatabases(ctx, scopeID)
	})
	if autonomousErr != nil {
		log.Warn("Failed to get autonomous databases", logger.Error(autonomousErr))
	}

	if systemsErr != nil && autonomousErr != nil {
		return nil, fmt.Errorf("database listing failed: %w", systemsErr)
	}

	for _, adb := range autonomous {
		out = append(out, normalizeAutonomousDatabase(adb))
	}
	return out, nil
}

func listSystemDatabases(ctx context.Context, d *deps, log logger.Logger, scopeID, systemID string) []models.Resource {
	client := d.clients().Database

	homes, err := concurrency.Call(ctx, d.gate, "ListDbHomes", func(ctx context.Context) ([]providers.DBHome, error) {
		return client.ListDBHomes(ctx, scopeID, systemID)
	})
	if err != nil {
		log.Warn("Failed to get DB homes", logger.String("db_system_id", systemID), logger.Error(err))
		return nil
	}

	return gather(ctx, d.maxConcurrency, len(homes), func(ctx context.Context, i int) []models.Resource {
		home := homes[i]
		dbs, err := concurrency.Call(ctx, d.gate, "ListDatabases", func(ctx context.Context) ([]providers.Database, error) {
			return client.ListDatabases(ctx, scopeID, home.ID)
		})
		if err != nil {
			log.Warn("Failed to get databases", logger.String("db_home_id", home.ID), logger.Error(err))
			return nil
		}

		records := make([]models.Resource, 0, len(dbs))
		for _, db := range dbs {
			records = append(records, normalizeDatabase(db, systemID, home.ID))
		}
		return records
	})
}

func normalizeDBSystem(s providers.DBSystem) models.Resource {
	return models.Resource{
		Type:           models.ResourceTypeDBSystem,
		ID:             s.ID,
		DisplayName:    s.DisplayName,
		LifecycleState: s.LifecycleState,
		TimeCreated:    utc(s.TimeCreated),
		DBSystem: &models.DBSystemAttributes{
			DatabaseEdition:      stringOr(s.DatabaseEdition, unknownValue),
			Shape:                stringOr(s.Shape, unknownValue),
			CPUCoreCount:         intOr(s.CPUCoreCount, 0),
			DataStorageSizeInGBs: intOr(s.DataStorageSizeInGBs, 0),
			NodeCount:            intOr(s.NodeCount, defaultNodes),
			AvailabilityDomain:   stringOr(s.AvailabilityDomain, unknownValue),
		},
	}
}

func normalizeDatabase(db providers.Database, systemID, homeID string) models.Resource {
	return models.Resource{
		Type:           models.ResourceTypeDatabase,
		ID:             db.ID,
		DisplayName:    childName(db.DBName + " (Database)"),
		LifecycleState: db.LifecycleState,
		ParentID:       systemID,
		TimeCreated:    utc(db.TimeCreated),
		Database: &models.DatabaseAttributes{
			DBName:       db.DBName,
			DBWorkload:   stringOr(db.DBWorkload, unknownValue),
			CharacterSet: stringOr(db.CharacterSet, unknownValue),
			PDBName:      stringValue(db.PDBName),
			IsCDB:        boolOr(db.IsCDB, false),
			DBSystemID:   systemID,
			DBHomeID:     homeID,
		},
	}
}

func normalizeAutonomousDatabase(adb providers.AutonomousDatabase) models.Resource {
	return models.Resource{
		Type:           models.ResourceTypeAutonomousDatabase,
		ID:             adb.ID,
		DisplayName:    adb.DisplayName,
		LifecycleState: adb.LifecycleState,
		TimeCreated:    utc(adb.TimeCreated),
		AutonomousDatabase: &models.AutonomousDatabaseAttributes{
			DBName:               stringOr(adb.DBName, unknownValue),
			DBWorkload:           stringOr(adb.DBWorkload, unknownValue),
			CPUCoreCount:         intOr(adb.CPUCoreCount, 0),
			DataStorageSizeInTBs: intOr(adb.DataStorageSizeInTBs, 0),
		},
	}
}
