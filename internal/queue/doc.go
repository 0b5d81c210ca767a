// Package queue manages the local queue of files awaiting upload to the
// archive.
//
// The queue is a directory of symlinks. The Enqueuer enqueues a file by
// writing its fully-formed metadata to an extended attribute on the file and
// then symlinking it into the queue directory under the metadata id. The
// attribute is written before the link appears, so an observer never sees an
// entry without complete metadata. The Uploader drains pre-existing entries
// at startup, then watches the directory for new links; each entry is pushed
// to the archive and its symlink removed only after the push succeeds, so an
// entry survives every failure and is retried on the next run.
//
// One Uploader owns a queue directory at a time, enforced with an advisory
// lock on a reserved dot-file inside the directory. Enqueuers need no lock;
// symlink creation is atomic and collisions on an id are rejected.
//
// Treat the directory contents as the single source of truth for pending
// work: existence of a link means "not yet uploaded", nothing else is
// persisted.
package queue
