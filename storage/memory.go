package storage

import (
	"sync"

	"brand-intel/models"
)

// MemoryStore is an in-memory SnapshotStore used in tests and as a
// zero-persistence fallback.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]*models.CachedSnapshot
	configs   map[string]*models.BrandConfig
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]*models.CachedSnapshot),
		configs:   make(map[string]*models.BrandConfig),
	}
}

func (s *MemoryStore) SaveSnapshot(brand string, snapshot *models.CachedSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[storeKey(brand)] = snapshot
	return nil
}

func (s *MemoryStore) LoadSnapshot(brand string) (*models.CachedSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshots[storeKey(brand)], nil
}

func (s *MemoryStore) DeleteSnapshot(brand string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, storeKey(brand))
	return nil
}

func (s *MemoryStore) SaveBrandConfig(cfg *models.BrandConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[storeKey(cfg.Name)] = cfg
	return nil
}

func (s *MemoryStore) LoadBrandConfig(brand string) (*models.BrandConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.configs[storeKey(brand)], nil
}

func (s *MemoryStore) Close() error { return nil }
