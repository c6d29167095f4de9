package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/merchops/support-assistant/internal/domain"
)

// FileStore persists each topic document as a single JSON file in one
// directory. Writes replace the whole file via a temp file and rename, so a
// document on disk is always a complete serialization.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// ReadDocument returns (nil, nil) when the document does not exist; absence
// is a recoverable condition, not an error.
func (f *FileStore) ReadDocument(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read document %s: %w", name, err)
	}
	return data, nil
}

func (f *FileStore) WriteDocument(name string, data []byte) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", name, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write document %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close document %s: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(f.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace document %s: %w", name, err)
	}

	return nil
}

func (f *FileStore) ListDocuments() ([]domain.DocumentInfo, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.DocumentInfo{}, nil
		}
		return nil, fmt.Errorf("list documents: %w", err)
	}

	files := []domain.DocumentInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, domain.DocumentInfo{
			Filename:     entry.Name(),
			Size:         info.Size(),
			LastModified: info.ModTime().Format(time.RFC3339),
		})
	}

	return files, nil
}
