// Package datasource decides, per brand, whether a dataset comes from the
// in-memory cache, a fresh upload, or the persisted snapshot store.
package datasource

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"brand-intel/models"
	"brand-intel/services"
	"brand-intel/storage"
	"brand-intel/utils"
)

const (
	// DefaultCacheTTL is the in-memory freshness window.
	DefaultCacheTTL = 5 * time.Minute
	// DefaultSnapshotTTL is the persisted freshness window.
	DefaultSnapshotTTL = 24 * time.Hour
)

// Manager owns the per-brand dataset cache. It is an injected component,
// not a singleton: each tenant/session can hold its own instance over its
// own store. Writes on the same brand key are serialized; different keys
// do not interfere.
type Manager struct {
	store       storage.SnapshotStore
	logger      *utils.Logger
	cacheTTL    time.Duration
	snapshotTTL time.Duration
	now         func() time.Time

	mu    sync.Mutex
	cache map[string]*models.CachedSnapshot
	locks map[string]*sync.Mutex
}

// NewManager creates a Manager over the given store with the default
// freshness windows.
func NewManager(store storage.SnapshotStore, logger *utils.Logger) *Manager {
	return &Manager{
		store:       store,
		logger:      logger,
		cacheTTL:    DefaultCacheTTL,
		snapshotTTL: DefaultSnapshotTTL,
		now:         time.Now,
		cache:       make(map[string]*models.CachedSnapshot),
		locks:       make(map[string]*sync.Mutex),
	}
}

// SetTTLs overrides the freshness windows.
func (m *Manager) SetTTLs(cacheTTL, snapshotTTL time.Duration) {
	m.cacheTTL = cacheTTL
	m.snapshotTTL = snapshotTTL
}

// SetClock replaces the time source. Tests use this to step through the
// freshness windows deterministically.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// cacheKey scopes the in-memory cache per brand and industry; the persisted
// store is keyed by brand alone.
func cacheKey(brand, industry string) string {
	if industry == "" {
		industry = "default"
	}
	return services.NormalizeBrand(brand) + "_" + industry
}

func (m *Manager) keyLock(key string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	return l
}

func (m *Manager) isFresh(snapshot *models.CachedSnapshot) bool {
	return m.now().Sub(snapshot.Timestamp) < m.cacheTTL
}

// GetData resolves a dataset for the brand. Resolution order: fresh cache
// (unless forceRefresh), supplied imported data, persisted snapshot within
// its freshness window, stale cache as a last resort, then an empty set
// with SourceNone. An empty result is a valid displayable state, not an
// error.
func (m *Manager) GetData(brand, industry string, imported []*models.ProductRecord, forceRefresh bool) (*models.DataResult, error) {
	key := cacheKey(brand, industry)
	lock := m.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	m.mu.Lock()
	cached := m.cache[key]
	m.mu.Unlock()

	if !forceRefresh && cached != nil && m.isFresh(cached) {
		return &models.DataResult{Data: cached.Data, Source: models.SourceCache}, nil
	}

	if len(imported) > 0 {
		snapshot := &models.CachedSnapshot{
			Data:      imported,
			Timestamp: m.now(),
			BrandName: brand,
			Industry:  industry,
		}
		m.setCache(key, snapshot)
		if err := m.store.SaveSnapshot(brand, snapshot); err != nil {
			m.logger.Error("[datasource] Failed to persist snapshot for %q: %v", brand, err)
		}
		return &models.DataResult{Data: imported, Source: models.SourceUpload}, nil
	}

	stored, err := m.store.LoadSnapshot(brand)
	if err != nil {
		m.logger.Error("[datasource] Failed to load snapshot for %q: %v", brand, err)
	}
	if stored != nil && len(stored.Data) > 0 && m.now().Sub(stored.Timestamp) < m.snapshotTTL {
		refreshed := &models.CachedSnapshot{
			Data:      stored.Data,
			Timestamp: m.now(),
			BrandName: brand,
			Industry:  industry,
		}
		m.setCache(key, refreshed)
		return &models.DataResult{Data: stored.Data, Source: models.SourceUpload}, nil
	}

	// Expired cache beats no data at all.
	if cached != nil {
		return &models.DataResult{Data: cached.Data, Source: models.SourceCache}, nil
	}

	return &models.DataResult{Data: nil, Source: models.SourceNone}, nil
}

// ImportCSV replaces the brand's working set wholesale: cache and persisted
// snapshot. No reconciliation with prior data is attempted.
func (m *Manager) ImportCSV(brand string, allRecords, ownRecords []*models.ProductRecord, competitors []string) error {
	key := cacheKey(brand, "")
	lock := m.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	snapshot := &models.CachedSnapshot{
		Data:      allRecords,
		Timestamp: m.now(),
		BrandName: brand,
	}
	m.setCache(key, snapshot)

	if err := m.store.SaveSnapshot(brand, snapshot); err != nil {
		return fmt.Errorf("datasource: persist import for %q: %w", brand, err)
	}

	m.logger.Info("[datasource] Imported %d products for %q (%d own, competitors: %s)",
		len(allRecords), brand, len(ownRecords), strings.Join(competitors, ", "))
	return nil
}

// ClearCache removes the brand's cached and persisted entries, or every
// entry when brand is empty.
func (m *Manager) ClearCache(brand string) error {
	if brand == "" {
		m.mu.Lock()
		m.cache = make(map[string]*models.CachedSnapshot)
		m.mu.Unlock()
		return nil
	}

	prefix := services.NormalizeBrand(brand)
	m.mu.Lock()
	for key := range m.cache {
		if strings.HasPrefix(key, prefix) {
			delete(m.cache, key)
		}
	}
	m.mu.Unlock()

	if err := m.store.DeleteSnapshot(brand); err != nil {
		return fmt.Errorf("datasource: clear %q: %w", brand, err)
	}
	return nil
}

// SaveBrandConfig persists a brand configuration blob.
func (m *Manager) SaveBrandConfig(cfg *models.BrandConfig) error {
	return m.store.SaveBrandConfig(cfg)
}

// LoadBrandConfig returns the persisted configuration, or nil when none.
func (m *Manager) LoadBrandConfig(brand string) (*models.BrandConfig, error) {
	return m.store.LoadBrandConfig(brand)
}

// CacheInfo reports the cache size and keys, for observability.
func (m *Manager) CacheInfo() (int, []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.cache))
	for key := range m.cache {
		keys = append(keys, key)
	}
	return len(m.cache), keys
}

func (m *Manager) setCache(key string, snapshot *models.CachedSnapshot) {
	m.mu.Lock()
	m.cache[key] = snapshot
	m.mu.Unlock()
}
