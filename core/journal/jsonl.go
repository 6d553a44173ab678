package journal

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotating appends entries to a JSONL file that is rotated by size and age.
// Queries scan the live file and every rotated sibling next to it.
type Rotating struct {
	mu     sync.Mutex
	writer *lumberjack.Logger
	path   string
}

// NewRotating creates a journal at path with rotation options in megabytes
// and days. The parent directory is created if missing.
func NewRotating(path string, maxSizeMB, maxBackups, maxAgeDays int) (*Rotating, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}
	return &Rotating{writer: lj, path: path}, nil
}

// Append writes one entry, rotating the file first if it grew past the size
// limit.
func (r *Rotating) Append(_ context.Context, e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return json.NewEncoder(r.writer).Encode(e)
}

// Query reads every journal file, including rotated ones, and returns the
// matching entries ordered by time. Lines that do not decode are skipped so
// one damaged line cannot hide the rest of the journal.
func (r *Rotating) Query(_ context.Context, q Query) ([]Entry, error) {
	files, err := filepath.Glob(r.path + "*")
	if err != nil {
		return nil, err
	}
	var res []Entry
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			continue
		}
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			var e Entry
			if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
				continue
			}
			if q.matches(e) {
				res = append(res, e)
			}
		}
		_ = f.Close()
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Time.Before(res[j].Time) })
	return res, nil
}

// Close flushes and closes the underlying writer.
func (r *Rotating) Close() error { return r.writer.Close() }
