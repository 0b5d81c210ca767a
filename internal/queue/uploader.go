package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/flock"

	"datalake/internal/lake"
	"datalake/internal/logging"
)

// Pusher uploads a file to the archive and returns its location URL.
type Pusher interface {
	Push(ctx context.Context, f *lake.File) (string, error)
}

// NoTimeout makes Listen run until its context is canceled.
const NoTimeout time.Duration = -1

// Uploader drains and watches a queue directory, pushing each entry to the
// archive and deleting the entry once the push succeeds.
type Uploader struct {
	pusher Pusher
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// NewUploader constructs an Uploader around the push collaborator and
// queueDir, falling back to DATALAKE_QUEUE_DIR when queueDir is empty.
// Configuration and capability problems are reported here, before any queue
// interaction.
func NewUploader(pusher Pusher, queueDir string, logger *slog.Logger) (*Uploader, error) {
	if pusher == nil {
		return nil, errors.New("uploader requires a pusher")
	}
	dir, err := resolveQueueDir(queueDir)
	if err != nil {
		return nil, err
	}
	if err := ensureXattrSupport(); err != nil {
		return nil, err
	}
	probe, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: filesystem watching: %w", ErrUnsupported, err)
	}
	probe.Close()

	return &Uploader{
		pusher: pusher,
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "uploader"),
		now:    time.Now,
	}, nil
}

// Dir returns the absolute queue directory the Uploader consumes.
func (u *Uploader) Dir() string {
	return u.dir
}

// Listen processes every entry already in the queue directory, then watches
// for new entries until the timeout budget is spent or ctx is canceled. A
// negative timeout (NoTimeout) watches forever. The budget is charged with
// measured wall-clock time after each batch of events, so pathological event
// streams cannot extend a bounded run indefinitely.
//
// Exactly one Listen may run per queue directory; a second caller fails with
// ErrQueueLocked. Any entry-processing error stops the listen with the queue
// entry left in place for a later retry.
func (u *Uploader) Listen(ctx context.Context, timeout time.Duration) error {
	lock := flock.New(filepath.Join(u.dir, lockName))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire uploader lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrQueueLocked, u.dir)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			u.logger.Warn("release uploader lock", logging.Error(err))
		}
	}()

	if err := u.drain(ctx); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: filesystem watching: %w", ErrUnsupported, err)
	}
	defer watcher.Close()
	if err := watcher.Add(u.dir); err != nil {
		return fmt.Errorf("watch %s: %w", u.dir, err)
	}

	clock := newRunClock(timeout, u.now)
	watchAttrs := []logging.Attr{logging.String(logging.FieldQueueDir, u.dir)}
	if remaining, bounded := clock.Budget(); bounded {
		watchAttrs = append(watchAttrs, logging.Duration("timeout", remaining))
	}
	u.logger.Info("watching queue", logging.Args(watchAttrs...)...)

	for {
		if clock.Expired() {
			return nil
		}
		var expiry <-chan time.Time
		if remaining, bounded := clock.Budget(); bounded {
			expiry = time.After(remaining)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-expiry:
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watch %s: watcher closed", u.dir)
			}
			return fmt.Errorf("watch %s: %w", u.dir, err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watch %s: watcher closed", u.dir)
			}
			if err := u.handleEvent(ctx, ev); err != nil {
				return err
			}
			if err := u.absorbReady(ctx, watcher); err != nil {
				return err
			}
			clock.Tick()
		}
	}
}

// drain synchronously processes the entries already present in the queue
// directory, recovering work left behind by a previous run.
func (u *Uploader) drain(ctx context.Context) error {
	entries, err := os.ReadDir(u.dir)
	if err != nil {
		return fmt.Errorf("list queue directory: %w", err)
	}
	processed := 0
	for _, entry := range entries {
		if isReservedName(entry.Name()) {
			continue
		}
		if err := u.process(ctx, filepath.Join(u.dir, entry.Name())); err != nil {
			return err
		}
		processed++
	}
	u.logger.Debug("drained queue", logging.Int("entries", processed))
	return nil
}

// absorbReady handles every event already delivered by the watcher without
// blocking, so one wake consumes the whole ready batch before the budget is
// recharged.
func (u *Uploader) absorbReady(ctx context.Context, watcher *fsnotify.Watcher) error {
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if err := u.handleEvent(ctx, ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (u *Uploader) handleEvent(ctx context.Context, ev fsnotify.Event) error {
	if !ev.Has(fsnotify.Create) {
		return nil
	}
	if isReservedName(filepath.Base(ev.Name)) {
		return nil
	}
	return u.process(ctx, ev.Name)
}

// process pushes the file a queue entry points at and removes the entry.
// The entry is deleted only after the push succeeds; every failure leaves it
// in place, untouched, for the next drain.
func (u *Uploader) process(ctx context.Context, entryPath string) error {
	target, err := filepath.EvalSymlinks(entryPath)
	if err != nil {
		return fmt.Errorf("resolve queue entry %s: %w", filepath.Base(entryPath), err)
	}
	md, err := readMetadataAttr(target)
	if err != nil {
		return fmt.Errorf("queue entry %s: %w", filepath.Base(entryPath), err)
	}

	f := lake.New(target, md)
	url, err := u.pusher.Push(ctx, f)
	if err != nil {
		return err
	}
	u.logger.Info("pushed",
		logging.String(logging.FieldPath, target),
		logging.String(logging.FieldID, md.ID),
		logging.String(logging.FieldURL, url))

	if err := os.Remove(entryPath); err != nil {
		return fmt.Errorf("remove queue entry %s: %w", filepath.Base(entryPath), err)
	}
	return nil
}
