// Package storage provides the persistent key/value backends behind the
// garage's fleet slot: an in-process map for tests and ephemeral sessions
// and a directory-backed store for real ones.
package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/kilianp07/garage/core/storage"
)

// Memory keeps documents in process memory. An optional quota mimics the
// byte budget browser storage enforces, which keeps quota handling testable
// without filling a disk.
type Memory struct {
	mu    sync.RWMutex
	docs  map[string][]byte
	quota int64
}

// NewMemory creates an empty store. quotaBytes of zero means unlimited.
func NewMemory(quotaBytes int64) *Memory {
	return &Memory{docs: make(map[string][]byte), quota: quotaBytes}
}

func (m *Memory) Put(ctx context.Context, key string, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quota > 0 {
		var used int64
		for k, d := range m.docs {
			if k != key {
				used += int64(len(d))
			}
		}
		if used+int64(len(doc)) > m.quota {
			return fmt.Errorf("%w: %d bytes would exceed the %d byte budget", storage.ErrQuotaExceeded, used+int64(len(doc)), m.quota)
		}
	}
	m.docs[key] = append([]byte(nil), doc...)
	return nil
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
	}
	return append([]byte(nil), doc...), nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}

func (m *Memory) Close() error { return nil }
