package snapshot

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/exp/mmap"
)

// WriteFile encodes s to path. The file is written to a temporary sibling
// and renamed into place so readers never observe a partial snapshot.
func WriteFile(path string, s *Snapshot) (int, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create snapshot file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	w := bufio.NewWriter(tmp)
	n, err := Encode(w, s)
	if err != nil {
		cleanup()
		return 0, err
	}
	if err := w.Flush(); err != nil {
		cleanup()
		return 0, fmt.Errorf("failed to flush snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return 0, fmt.Errorf("failed to sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("failed to rename snapshot: %w", err)
	}
	return n, nil
}

// ReadFile decodes the snapshot at path through a read-only memory map
func ReadFile(path string) (*Snapshot, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", path, err)
	}
	defer reader.Close()

	s, err := Decode(io.NewSectionReader(reader, 0, int64(reader.Len())))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
