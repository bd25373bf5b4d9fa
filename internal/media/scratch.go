// Package media implements the ffmpeg-backed conversion pipeline and the
// scoped temporary scratch area it works in.
package media

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Scratch is a per-invocation temporary directory. Every conversion gets its
// own uuid-named directory under the configured scratch root, so concurrent
// commands can never collide on filenames, and a single Close removes
// everything regardless of how the invocation ended.
type Scratch struct {
	dir string
}

// NewScratch creates a fresh scratch directory under base.
func NewScratch(base string) (*Scratch, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch root: %w", err)
	}
	dir := filepath.Join(base, uuid.NewString())
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch dir: %w", err)
	}
	return &Scratch{dir: dir}, nil
}

// Path returns the absolute path for a file name inside the scratch dir.
func (s *Scratch) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// WriteFile writes data to name inside the scratch dir and returns its path.
func (s *Scratch) WriteFile(name string, data []byte) (string, error) {
	path := s.Path(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write scratch file: %w", err)
	}
	return path, nil
}

// Close removes the scratch directory and everything in it.
func (s *Scratch) Close() error {
	return os.RemoveAll(s.dir)
}

// Sweep removes scratch directories under base whose modification time is
// older than ttl. It returns the number of directories removed. Directories
// belonging to in-flight commands are younger than any sane ttl.
func Sweep(base string, ttl time.Duration) (int, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read scratch root: %w", err)
	}

	cutoff := time.Now().Add(-ttl)
	removed := 0
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(base, entry.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}
