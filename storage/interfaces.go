package storage

import "brand-intel/models"

// SnapshotStore is the durable side of the data-source manager: one snapshot
// per brand (full-replacement semantics) and one BrandConfig blob per brand.
// Missing entries are reported as (nil, nil); errors are reserved for I/O
// failures.
type SnapshotStore interface {
	SaveSnapshot(brand string, snapshot *models.CachedSnapshot) error
	LoadSnapshot(brand string) (*models.CachedSnapshot, error)
	DeleteSnapshot(brand string) error

	SaveBrandConfig(cfg *models.BrandConfig) error
	LoadBrandConfig(brand string) (*models.BrandConfig, error)

	Close() error
}

// DatasetWriter exports a full dataset, e.g. to CSV.
type DatasetWriter interface {
	WriteRecords(records []*models.ProductRecord) error
	Close() error
}
