package services

import (
	"context"
	"fmt"

	"dataset-sql-assistant/internal/datastore"
	"dataset-sql-assistant/internal/ingest"
	"dataset-sql-assistant/internal/models"
	"dataset-sql-assistant/internal/repositories"
)

// DatasetService owns the dataset registry and reloading from the data
// directory.
type DatasetService struct {
	store    *datastore.Store
	loader   *ingest.Loader
	datasets *repositories.DatasetRepository
	dataDir  string
}

func NewDatasetService(store *datastore.Store, loader *ingest.Loader, datasets *repositories.DatasetRepository, dataDir string) *DatasetService {
	return &DatasetService{
		store:    store,
		loader:   loader,
		datasets: datasets,
		dataDir:  dataDir,
	}
}

// Reload re-ingests every CSV file from the data directory and reconciles the
// registry with what actually got loaded.
func (s *DatasetService) Reload(ctx context.Context) ([]models.Dataset, error) {
	loaded, err := s.loader.LoadDir(ctx, s.dataDir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(loaded))
	for _, table := range loaded {
		names = append(names, table.TableName)
		entry := &models.Dataset{
			Name:       table.TableName,
			SourceFile: table.SourceFile,
			RowCount:   table.RowCount,
		}
		if err := s.datasets.Upsert(entry); err != nil {
			return nil, fmt.Errorf("failed to register dataset %s: %w", table.TableName, err)
		}
	}

	if err := s.datasets.DeleteMissing(names); err != nil {
		return nil, fmt.Errorf("failed to prune dataset registry: %w", err)
	}

	// Drop tables whose CSV files are gone, so the agent's schema prompt
	// stays in step with the registry.
	kept := make(map[string]bool, len(names))
	for _, name := range names {
		kept[name] = true
	}
	tables, err := s.store.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	for _, table := range tables {
		if kept[table] {
			continue
		}
		if err := s.store.DropTable(ctx, table); err != nil {
			return nil, fmt.Errorf("failed to drop stale table %s: %w", table, err)
		}
	}

	return s.datasets.List()
}

func (s *DatasetService) List() ([]models.Dataset, error) {
	return s.datasets.List()
}

// TableInfo returns the schema and sample rows for one registered dataset.
func (s *DatasetService) TableInfo(ctx context.Context, name string) (*datastore.TableInfo, error) {
	dataset, err := s.datasets.GetByTableName(name)
	if err != nil {
		return nil, err
	}
	if dataset == nil {
		return nil, fmt.Errorf("dataset %s is not registered", name)
	}
	return s.store.TableInfo(ctx, name)
}
