package clues

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ClueCache persists resolved clue text in a local SQLite database so
// repeated CLI/service runs don't re-resolve the same word twice.
type ClueCache struct {
	db *sql.DB
}

// OpenCache opens (creating if necessary) a SQLite-backed clue cache at
// path and ensures its schema exists.
func OpenCache(path string) (*ClueCache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open clue cache: %w", err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize clue cache schema: %w", err)
	}
	return &ClueCache{db: db}, nil
}

// NewClueCache wraps an already-open database handle.
func NewClueCache(db *sql.DB) (*ClueCache, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if err := initSchema(db); err != nil {
		return nil, fmt.Errorf("failed to initialize clue cache schema: %w", err)
	}
	return &ClueCache{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS clue_cache (
			word TEXT NOT NULL,
			clue TEXT NOT NULL,
			PRIMARY KEY (word)
		)
	`)
	return err
}

// Close releases the underlying database handle.
func (c *ClueCache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// GetClue retrieves the cached clue for word, if any.
func (c *ClueCache) GetClue(word string) (string, bool) {
	if c == nil || c.db == nil {
		return "", false
	}

	var clue string
	err := c.db.QueryRow(`SELECT clue FROM clue_cache WHERE word = ?`, word).Scan(&clue)
	if err != nil {
		return "", false
	}
	return clue, true
}

// SaveClue upserts word's resolved clue text into the cache.
func (c *ClueCache) SaveClue(word, clue string) error {
	if c == nil || c.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	if word == "" {
		return fmt.Errorf("word cannot be empty")
	}
	if clue == "" {
		return fmt.Errorf("clue cannot be empty")
	}

	_, err := c.db.Exec(`
		INSERT INTO clue_cache (word, clue) VALUES (?, ?)
		ON CONFLICT(word) DO UPDATE SET clue = excluded.clue
	`, word, clue)
	if err != nil {
		return fmt.Errorf("failed to save clue: %w", err)
	}
	return nil
}

// CachingResolver wraps a Resolver with a ClueCache so repeated
// resolutions for the same word skip straight to a cache hit.
type CachingResolver struct {
	resolver *Resolver
	cache    *ClueCache
}

// NewCachingResolver builds a CachingResolver. cache may be nil, in which
// case it behaves exactly like the bare resolver.
func NewCachingResolver(resolver *Resolver, cache *ClueCache) *CachingResolver {
	return &CachingResolver{resolver: resolver, cache: cache}
}

// Resolve returns a clue for word, consulting the cache first and
// populating it on a cache miss that the resolver satisfies.
func (c *CachingResolver) Resolve(word string) (string, bool) {
	if clue, ok := c.cache.GetClue(word); ok {
		return clue, true
	}
	clue, ok := c.resolver.Resolve(word)
	if ok {
		_ = c.cache.SaveClue(word, clue)
	}
	return clue, ok
}
