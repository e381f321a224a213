package catalog

import (
	"context"
	"database/sql"
	"io/fs"
	"time"

	"github.com/mwantia/virtfs/archive"
)

// Load returns the stored index for name if the catalog holds one that matches
// the size and modification time in info. The boolean is false on a miss.
func (c *Catalog) Load(ctx context.Context, name string, info fs.FileInfo) (*archive.Index, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var size, modifyTime int64
	err := c.db.QueryRowContext(ctx, `
		SELECT size, modify_time FROM virtfs_archives WHERE archive = ?
	`, name).Scan(&size, &modifyTime)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if size != info.Size() || modifyTime != info.ModTime().UnixNano() {
		return nil, false, nil
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT name, method, flags, crc32, compressed_size, uncompressed_size, modify_time, data_offset
		FROM virtfs_headers WHERE archive = ? ORDER BY position
	`, name)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var headers []archive.Header
	for rows.Next() {
		var h archive.Header
		var method, flags, crc, modify int64

		if err := rows.Scan(&h.Name, &method, &flags, &crc,
			&h.CompressedSize, &h.UncompressedSize, &modify, &h.DataOffset); err != nil {
			return nil, false, err
		}

		h.Method = archive.Method(method)
		h.Flags = uint16(flags)
		h.CRC32 = uint32(crc)
		h.ModifyTime = time.Unix(modify, 0).UTC()

		headers = append(headers, h)
	}

	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	return archive.NewIndex(name, headers), true, nil
}

// Store replaces the stored index for the archive of idx.
func (c *Catalog) Store(ctx context.Context, idx *archive.Index, info fs.FileInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := forget(ctx, tx, idx.Archive()); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO virtfs_archives (archive, size, modify_time, indexed_at)
		VALUES (?, ?, ?, ?)
	`, idx.Archive(), info.Size(), info.ModTime().UnixNano(), time.Now().Unix()); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO virtfs_headers (archive, position, name, method, flags, crc32,
			compressed_size, uncompressed_size, modify_time, data_offset)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, h := range idx.Headers() {
		if _, err := stmt.ExecContext(ctx, idx.Archive(), i, h.Name, int64(h.Method), int64(h.Flags),
			int64(h.CRC32), h.CompressedSize, h.UncompressedSize, h.ModifyTime.Unix(), h.DataOffset); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Forget removes the stored index for name. Missing rows are not an error.
func (c *Catalog) Forget(ctx context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := forget(ctx, tx, name); err != nil {
		return err
	}

	return tx.Commit()
}

func forget(ctx context.Context, tx *sql.Tx, name string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM virtfs_headers WHERE archive = ?`, name); err != nil {
		return err
	}

	_, err := tx.ExecContext(ctx, `DELETE FROM virtfs_archives WHERE archive = ?`, name)
	return err
}

// Archives returns the paths of every archive held by the catalog.
func (c *Catalog) Archives(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rows, err := c.db.QueryContext(ctx, `SELECT archive FROM virtfs_archives ORDER BY archive`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var archives []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		archives = append(archives, name)
	}

	return archives, rows.Err()
}
