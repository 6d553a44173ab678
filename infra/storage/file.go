package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kilianp07/garage/core/storage"
)

var keySanitizer = strings.NewReplacer("/", "_", "\\", "_", ":", "_")

// File stores each key as one JSON document file inside a directory. Writes
// go through a temp file plus rename, so a crash mid-write never leaves a
// half-written document where the previous one was. An optional quota
// refuses writes that would push the directory past a byte budget.
type File struct {
	mu    sync.Mutex
	dir   string
	quota int64
}

// NewFile creates the store directory if needed. quotaBytes of zero means
// unlimited.
func NewFile(dir string, quotaBytes int64) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &File{dir: dir, quota: quotaBytes}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, keySanitizer.Replace(key)+".json")
}

func (f *File) Put(ctx context.Context, key string, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	target := f.path(key)
	if f.quota > 0 {
		used, err := f.usedBytes(target)
		if err != nil {
			return err
		}
		if used+int64(len(doc)) > f.quota {
			return fmt.Errorf("%w: %d bytes would exceed the %d byte budget", storage.ErrQuotaExceeded, used+int64(len(doc)), f.quota)
		}
	}
	tmp, err := os.CreateTemp(f.dir, ".write-*")
	if err != nil {
		return fmt.Errorf("stage document: %w", err)
	}
	if _, err := tmp.Write(doc); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("stage document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("stage document: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("store document: %w", err)
	}
	return nil
}

// usedBytes sums the stored documents except the one being replaced.
func (f *File) usedBytes(exclude string) (int64, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return 0, fmt.Errorf("scan storage directory: %w", err)
	}
	var used int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if filepath.Join(f.dir, entry.Name()) == exclude {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		used += info.Size()
	}
	return used, nil
}

func (f *File) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return doc, nil
}

func (f *File) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (f *File) Close() error { return nil }
