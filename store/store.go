// Package store persists assembled class file images in a SQLite database,
// indexed by name and content hash.
package store

import (
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/chazu/cafebabe/digest"
)

// ErrClassNotFound indicates the requested class doesn't exist in the store.
var ErrClassNotFound = errors.New("class not found")

// Store is a SQLite-backed artifact store. Identical images deduplicate by
// content hash: re-putting an image the store already holds returns the
// existing record id.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// Open opens (creating if needed) the store at the given database path.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// Create table if needed
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS classes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		hash TEXT NOT NULL UNIQUE,
		digest BLOB NOT NULL,
		image BLOB NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Put stores an assembled image with its digest and returns the record id.
// An image already present (by content hash) is not stored again.
func (s *Store) Put(d *digest.ClassDigest, image []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hash := hex.EncodeToString(d.Hash[:])

	var id string
	err := s.db.QueryRow("SELECT id FROM classes WHERE hash = ?", hash).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("querying class by hash: %w", err)
	}

	encoded, err := digest.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encoding digest: %w", err)
	}

	id = uuid.NewString()
	_, err = s.db.Exec(
		"INSERT INTO classes (id, name, hash, digest, image) VALUES (?, ?, ?, ?, ?)",
		id, d.Name, hash, encoded, image,
	)
	if err != nil {
		return "", fmt.Errorf("saving class: %w", err)
	}
	return id, nil
}

// GetByHash retrieves the digest and image with the given content hash.
func (s *Store) GetByHash(hash [32]byte) (*digest.ClassDigest, []byte, error) {
	return s.get("SELECT digest, image FROM classes WHERE hash = ?",
		hex.EncodeToString(hash[:]))
}

// GetByName retrieves the most recently stored digest and image for the
// given class name.
func (s *Store) GetByName(name string) (*digest.ClassDigest, []byte, error) {
	return s.get(
		"SELECT digest, image FROM classes WHERE name = ? ORDER BY created_at DESC, id LIMIT 1",
		name)
}

func (s *Store) get(query, key string) (*digest.ClassDigest, []byte, error) {
	var encoded, image []byte
	err := s.db.QueryRow(query, key).Scan(&encoded, &image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrClassNotFound
		}
		return nil, nil, fmt.Errorf("querying class: %w", err)
	}
	d, err := digest.Unmarshal(encoded)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding digest: %w", err)
	}
	return d, image, nil
}

// Names returns the distinct class names in the store, sorted.
func (s *Store) Names() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT name FROM classes ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing classes: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning class name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
