package queue

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/xattr"
)

const (
	// EnvQueueDir is the environment variable naming the process-wide
	// default queue directory.
	EnvQueueDir = "DATALAKE_QUEUE_DIR"

	// lockName is the reserved dot-file the uploader locks. Dot-prefixed
	// names are never valid metadata ids, so reserved files and queue
	// entries cannot collide.
	lockName = ".uploader.lock"
)

// ResolveDir reports the queue directory a given setting resolves to,
// applying the DATALAKE_QUEUE_DIR fallback. Inspection tooling uses it to
// name the directory it is describing.
func ResolveDir(dir string) (string, error) {
	return resolveQueueDir(dir)
}

// resolveQueueDir picks the queue directory from the explicit argument or
// the DATALAKE_QUEUE_DIR environment variable and makes it absolute. An
// empty result is a configuration error.
func resolveQueueDir(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		dir = os.Getenv(EnvQueueDir)
	}
	if strings.TrimSpace(dir) == "" {
		return "", fmt.Errorf("%w: set queue.dir or %s", ErrNoQueueDir, EnvQueueDir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve queue directory: %w", err)
	}
	return abs, nil
}

// ensureXattrSupport rejects platforms without extended attribute syscalls.
// Filesystems that refuse user attributes at runtime surface as filesystem
// errors from the individual operation instead.
func ensureXattrSupport() error {
	if !xattr.XATTR_SUPPORTED {
		return fmt.Errorf("%w: extended attributes are not supported on this platform", ErrUnsupported)
	}
	return nil
}

// isReservedName reports whether a directory entry belongs to the queue
// machinery rather than to a queued file.
func isReservedName(name string) bool {
	return strings.HasPrefix(name, ".")
}
