package catalog

import (
	"database/sql"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Catalog persists parsed archive indexes in SQLite, so mounting an archive that
// has not changed since it was last indexed skips parsing its headers again.
// Only header metadata is stored; entry payloads are never cached.
//
// An archive row is keyed by its path and validated against the file size and
// modification time recorded when the index was stored.
type Catalog struct {
	mu sync.RWMutex
	db *sql.DB
}

// Open opens or creates the catalog database at dbPath.
// The dbPath can be ":memory:" for a catalog that lives as long as the process.
func Open(dbPath string) (*Catalog, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// A single connection keeps ":memory:" databases shared across queries
	db.SetMaxOpenConns(1)

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, err
	}

	c := &Catalog{
		db: db,
	}

	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return c, nil
}

// initSchema creates the database schema.
func (c *Catalog) initSchema() error {
	schema := `
	-- One row per indexed archive
	CREATE TABLE IF NOT EXISTS virtfs_archives (
		archive TEXT PRIMARY KEY,
		size INTEGER NOT NULL,
		modify_time INTEGER NOT NULL,
		indexed_at INTEGER NOT NULL
	);

	-- Entry headers in archive order
	CREATE TABLE IF NOT EXISTS virtfs_headers (
		archive TEXT NOT NULL REFERENCES virtfs_archives(archive) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		method INTEGER NOT NULL,
		flags INTEGER NOT NULL,
		crc32 INTEGER NOT NULL,
		compressed_size INTEGER NOT NULL,
		uncompressed_size INTEGER NOT NULL,
		modify_time INTEGER NOT NULL,
		data_offset INTEGER NOT NULL,
		PRIMARY KEY (archive, position)
	);
	`

	_, err := c.db.Exec(schema)
	return err
}

// Close releases the database.
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.db.Close()
}
