package queue

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"datalake/internal/lake"
	"datalake/internal/logging"
	"datalake/internal/metadata"
)

// Enqueuer publishes files into the queue directory.
type Enqueuer struct {
	dir    string
	logger *slog.Logger
}

// NewEnqueuer constructs an Enqueuer for queueDir, falling back to
// DATALAKE_QUEUE_DIR when queueDir is empty. Configuration and capability
// problems are reported here, before any enqueue attempt.
func NewEnqueuer(queueDir string, logger *slog.Logger) (*Enqueuer, error) {
	dir, err := resolveQueueDir(queueDir)
	if err != nil {
		return nil, err
	}
	if err := ensureXattrSupport(); err != nil {
		return nil, err
	}
	return &Enqueuer{
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "enqueuer"),
	}, nil
}

// Dir returns the absolute queue directory the Enqueuer publishes into.
func (e *Enqueuer) Dir() string {
	return e.dir
}

// Enqueue records that path should be uploaded with the given metadata
// fields. The complete metadata is written to the file's extended attribute
// first; only then is the queue entry symlinked into place, so a watcher
// never observes an entry whose metadata is missing or partial. Returns the
// File that will eventually be pushed.
//
// If an entry for the generated id already exists the enqueue fails with
// ErrAlreadyQueued and nothing changes.
func (e *Enqueuer) Enqueue(path string, fields metadata.Fields) (*lake.File, error) {
	f, err := lake.FromPath(path, fields)
	if err != nil {
		return nil, err
	}

	if err := writeMetadataAttr(f.Path, f.Metadata); err != nil {
		return nil, err
	}

	entry := filepath.Join(e.dir, f.Metadata.ID)
	if err := os.Symlink(f.Path, entry); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyQueued, f.Metadata.ID)
		}
		return nil, fmt.Errorf("create queue entry: %w", err)
	}

	e.logger.Info("enqueued",
		logging.String(logging.FieldPath, f.Path),
		logging.String(logging.FieldID, f.Metadata.ID),
		logging.Int64("start", f.Metadata.Start))
	return f, nil
}
