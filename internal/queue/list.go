package queue

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"datalake/internal/metadata"
)

// Entry describes one pending queue entry for inspection commands.
type Entry struct {
	ID       string
	Path     string
	Target   string
	Metadata metadata.Metadata
	Err      error
}

// Entries lists the pending entries of the queue directory, sorted by id.
// Entries whose target or metadata cannot be read are reported with Err set
// rather than dropped, so inspection surfaces corrupt state instead of
// hiding it.
func Entries(queueDir string) ([]Entry, error) {
	dir, err := resolveQueueDir(queueDir)
	if err != nil {
		return nil, err
	}
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list queue directory: %w", err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		if isReservedName(d.Name()) {
			continue
		}
		entry := Entry{ID: d.Name(), Path: filepath.Join(dir, d.Name())}
		target, err := filepath.EvalSymlinks(entry.Path)
		if err != nil {
			entry.Err = err
			entries = append(entries, entry)
			continue
		}
		entry.Target = target
		if md, err := readMetadataAttr(target); err != nil {
			entry.Err = err
		} else {
			entry.Metadata = md
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}
