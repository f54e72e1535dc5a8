package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"brand-intel/models"
)

// SQLiteStore is the embedded SnapshotStore backend: same contract as
// PostgresStore, no external infrastructure. Default for local use.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database file at path and runs the
// schema migrations. Intermediate directories are created automatically.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("sqlite: create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			brand      TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS brand_configs (
			brand      TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		);
	`)
	return err
}

func (s *SQLiteStore) SaveSnapshot(brand string, snapshot *models.CachedSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("sqlite: marshal snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO snapshots (brand, payload, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT (brand) DO UPDATE SET payload = excluded.payload, updated_at = datetime('now')
	`, storeKey(brand), string(payload))
	if err != nil {
		return fmt.Errorf("sqlite: save snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadSnapshot(brand string) (*models.CachedSnapshot, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM snapshots WHERE brand = ?`, storeKey(brand)).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: load snapshot: %w", err)
	}

	var snapshot models.CachedSnapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return nil, fmt.Errorf("sqlite: decode snapshot: %w", err)
	}
	return &snapshot, nil
}

func (s *SQLiteStore) DeleteSnapshot(brand string) error {
	_, err := s.db.Exec(`DELETE FROM snapshots WHERE brand = ?`, storeKey(brand))
	if err != nil {
		return fmt.Errorf("sqlite: delete snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SaveBrandConfig(cfg *models.BrandConfig) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("sqlite: marshal brand config: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO brand_configs (brand, payload, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT (brand) DO UPDATE SET payload = excluded.payload, updated_at = datetime('now')
	`, storeKey(cfg.Name), string(payload))
	if err != nil {
		return fmt.Errorf("sqlite: save brand config: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadBrandConfig(brand string) (*models.BrandConfig, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM brand_configs WHERE brand = ?`, storeKey(brand)).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: load brand config: %w", err)
	}

	var cfg models.BrandConfig
	if err := json.Unmarshal([]byte(payload), &cfg); err != nil {
		return nil, fmt.Errorf("sqlite: decode brand config: %w", err)
	}
	return &cfg, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// storeKey normalizes a brand into the durable key: one record per brand,
// case and surrounding whitespace insensitive.
func storeKey(brand string) string {
	return strings.ToLower(strings.TrimSpace(brand))
}
