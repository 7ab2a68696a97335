package currency

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FreshnessWindow is how long a fetched rate table is considered current.
const FreshnessWindow = 24 * time.Hour

// RateCache stores rate tables keyed by base currency. Implementations must
// survive process restarts; staleness is the caller's decision via IsFresh,
// so a cache can still serve old tables when the network is down.
type RateCache interface {
	Get(base string) (*RateTable, bool)
	Put(base string, table *RateTable) error
	IsFresh(table *RateTable) bool
}

// FileCache persists rate tables as a single JSON document. Writes replace
// the whole document; concurrent imports racing on the same base currency
// settle last-writer-wins, which is safe because a table's content is a
// function of currency and time window only.
type FileCache struct {
	path string
	ttl  time.Duration

	mu     sync.Mutex
	tables map[string]*RateTable
}

// NewFileCache opens (or creates) a file-backed cache at path. Existing
// content is loaded eagerly; a corrupt file starts the cache empty rather
// than failing startup.
func NewFileCache(path string) (*FileCache, error) {
	c := &FileCache{
		path:   path,
		ttl:    FreshnessWindow,
		tables: make(map[string]*RateTable),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read rate cache: %w", err)
	}
	if err := json.Unmarshal(data, &c.tables); err != nil {
		c.tables = make(map[string]*RateTable)
	}
	return c, nil
}

func (c *FileCache) Get(base string) (*RateTable, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.tables[base]
	return t, ok
}

func (c *FileCache) Put(base string, table *RateTable) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tables[base] = table

	data, err := json.MarshalIndent(c.tables, "", "  ")
	if err != nil {
		return fmt.Errorf("encode rate cache: %w", err)
	}

	// Write-then-rename so a crash mid-write never truncates the cache.
	tmp := c.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create rate cache dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write rate cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replace rate cache: %w", err)
	}
	return nil
}

func (c *FileCache) IsFresh(table *RateTable) bool {
	if table == nil {
		return false
	}
	return time.Since(table.FetchedAt) < c.ttl
}
