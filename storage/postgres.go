package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"brand-intel/models"
	"brand-intel/utils"
)

// PostgresStore persists snapshots and brand configurations in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection, waits for the server to accept
// pings, runs schema migrations, and returns a ready-to-use store.
func NewPostgresStore(dsn string, logger *utils.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: 5, BaseDelay: 2 * time.Second, Logger: logger}
	if err := retry.Do("postgres ping", db.Ping); err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			brand      TEXT PRIMARY KEY,
			payload    JSONB       NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS brand_configs (
			brand      TEXT PRIMARY KEY,
			payload    JSONB       NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	return err
}

// SaveSnapshot replaces the stored snapshot for the brand wholesale.
func (s *PostgresStore) SaveSnapshot(brand string, snapshot *models.CachedSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("postgres: marshal snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO snapshots (brand, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (brand) DO UPDATE SET payload = $2, updated_at = NOW()
	`, storeKey(brand), payload)
	if err != nil {
		return fmt.Errorf("postgres: save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored snapshot, or (nil, nil) when none exists.
func (s *PostgresStore) LoadSnapshot(brand string) (*models.CachedSnapshot, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM snapshots WHERE brand = $1`, storeKey(brand)).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: load snapshot: %w", err)
	}

	var snapshot models.CachedSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("postgres: decode snapshot: %w", err)
	}
	return &snapshot, nil
}

func (s *PostgresStore) DeleteSnapshot(brand string) error {
	_, err := s.db.Exec(`DELETE FROM snapshots WHERE brand = $1`, storeKey(brand))
	if err != nil {
		return fmt.Errorf("postgres: delete snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveBrandConfig(cfg *models.BrandConfig) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("postgres: marshal brand config: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO brand_configs (brand, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (brand) DO UPDATE SET payload = $2, updated_at = NOW()
	`, storeKey(cfg.Name), payload)
	if err != nil {
		return fmt.Errorf("postgres: save brand config: %w", err)
	}
	return nil
}

func (s *PostgresStore) LoadBrandConfig(brand string) (*models.BrandConfig, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM brand_configs WHERE brand = $1`, storeKey(brand)).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: load brand config: %w", err)
	}

	var cfg models.BrandConfig
	if err := json.Unmarshal(payload, &cfg); err != nil {
		return nil, fmt.Errorf("postgres: decode brand config: %w", err)
	}
	return &cfg, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
