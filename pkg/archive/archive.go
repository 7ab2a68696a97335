// Package archive keeps the original statement files that were imported,
// so a ledger entry can always be traced back to its source export.
package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Record is the metadata kept alongside an archived statement file.
type Record struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Dialect    string    `json:"dialect"`
	Size       int64     `json:"size"`
	ArchivedAt time.Time `json:"archived_at"`
}

// Archive stores statement files on the local filesystem, one file plus a
// JSON metadata sidecar per import.
type Archive struct {
	basePath string
}

// New creates an archive rooted at basePath, creating it if needed.
func New(basePath string) (*Archive, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &Archive{basePath: basePath}, nil
}

// Store copies the statement into the archive and returns its record.
// The original filename is kept only in metadata; on disk the file is
// addressed by its ID so collisions cannot occur.
func (a *Archive) Store(name, dialect string, r io.Reader) (*Record, error) {
	rec := &Record{
		ID:         uuid.New(),
		Name:       filepath.Base(name),
		Dialect:    dialect,
		ArchivedAt: time.Now().UTC(),
	}

	dst, err := os.Create(a.dataPath(rec.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to create archive file: %w", err)
	}
	defer dst.Close()

	rec.Size, err = io.Copy(dst, r)
	if err != nil {
		os.Remove(dst.Name())
		return nil, fmt.Errorf("failed to write archive file: %w", err)
	}

	meta, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode archive metadata: %w", err)
	}
	if err := os.WriteFile(a.metaPath(rec.ID), meta, 0o644); err != nil {
		os.Remove(dst.Name())
		return nil, fmt.Errorf("failed to write archive metadata: %w", err)
	}

	return rec, nil
}

// Open returns a reader over an archived statement.
func (a *Archive) Open(id uuid.UUID) (io.ReadCloser, error) {
	f, err := os.Open(a.dataPath(id))
	if err != nil {
		return nil, fmt.Errorf("failed to open archived statement: %w", err)
	}
	return f, nil
}

// List returns the records of every archived statement, newest first.
func (a *Archive) List() ([]*Record, error) {
	entries, err := os.ReadDir(a.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive directory: %w", err)
	}

	var records []*Record
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(a.basePath, e.Name()))
		if err != nil {
			continue
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		records = append(records, &rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ArchivedAt.After(records[j].ArchivedAt)
	})
	return records, nil
}

// Delete removes an archived statement and its metadata.
func (a *Archive) Delete(id uuid.UUID) error {
	if err := os.Remove(a.dataPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete archived statement: %w", err)
	}
	if err := os.Remove(a.metaPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete archive metadata: %w", err)
	}
	return nil
}

func (a *Archive) dataPath(id uuid.UUID) string {
	return filepath.Join(a.basePath, id.String()+".dat")
}

func (a *Archive) metaPath(id uuid.UUID) string {
	return filepath.Join(a.basePath, id.String()+".json")
}
