package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// ReportCache caches serialized audit reports keyed by manifest content
// hash, with per-entry TTL expiry.
type ReportCache struct {
	db  *DB
	ttl time.Duration
}

// NewReportCache creates a cache over db with the given TTL.
func NewReportCache(db *DB, ttl time.Duration) *ReportCache {
	return &ReportCache{db: db, ttl: ttl}
}

// Get retrieves a cached report. Expired entries are deleted and reported
// as absent.
func (c *ReportCache) Get(key string) (string, bool, error) {
	var valueJSON, expiresAt string
	err := c.db.conn.QueryRow(`
		SELECT value_json, expires_at FROM report_cache WHERE key = ?
	`, key).Scan(&valueJSON, &expiresAt)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("report cache lookup failed: %w", err)
	}

	expiry, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil {
		return "", false, fmt.Errorf("invalid expires_at format: %w", err)
	}
	if time.Now().After(expiry) {
		_, _ = c.db.conn.Exec("DELETE FROM report_cache WHERE key = ?", key)
		return "", false, nil
	}

	return valueJSON, true, nil
}

// Set stores a serialized report under key.
func (c *ReportCache) Set(key, valueJSON string) error {
	now := time.Now()
	_, err := c.db.conn.Exec(`
		INSERT OR REPLACE INTO report_cache (key, value_json, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, key, valueJSON, now.Format(time.RFC3339), now.Add(c.ttl).Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("report cache write failed: %w", err)
	}
	return nil
}

// Purge removes every expired entry and returns the number removed.
func (c *ReportCache) Purge() (int, error) {
	res, err := c.db.conn.Exec(`
		DELETE FROM report_cache WHERE expires_at < ?
	`, time.Now().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("report cache purge failed: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
