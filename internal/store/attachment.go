package store

import "fmt"

// HasFile reports whether a files row exists for the content hash.
func (db *DB) HasFile(hash string) (bool, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM files WHERE hash = ?`, hash).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("lookup file %s: %w", hash, err)
	}
	return count > 0, nil
}

// InsertFile stores a content-addressed payload. The caller checks HasFile
// first: identical bytes are stored exactly once.
func (db *DB) InsertFile(hash string, data []byte) error {
	if _, err := db.Exec(`INSERT INTO files (hash, data) VALUES (?, ?)`, hash, data); err != nil {
		return fmt.Errorf("insert file %s: %w", hash, err)
	}
	return nil
}

// InsertAttachment records one occurrence of a named file and returns the
// new attachment id. Attachment identity is per-occurrence even when the
// underlying bytes are shared.
func (db *DB) InsertAttachment(name, hash string) (int64, error) {
	res, err := db.Exec(`INSERT INTO attachments (file, name) VALUES (?, ?)`, hash, name)
	if err != nil {
		return 0, fmt.Errorf("insert attachment %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert attachment %q: %w", name, err)
	}
	return id, nil
}
