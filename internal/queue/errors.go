package queue

import "errors"

var (
	// ErrNoQueueDir indicates no queue directory was configured.
	ErrNoQueueDir = errors.New("no queue directory configured")
	// ErrUnsupported indicates a platform capability the queue requires,
	// extended attributes or filesystem watching, is unavailable.
	ErrUnsupported = errors.New("queue feature unavailable")
	// ErrAlreadyQueued indicates a queue entry with the same id already exists.
	ErrAlreadyQueued = errors.New("already queued")
	// ErrQueueLocked indicates another uploader already owns the queue directory.
	ErrQueueLocked = errors.New("queue directory locked by another uploader")
)
