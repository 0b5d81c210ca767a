//go:build linux

package crtime

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// Get returns the creation time of the file at path via statx(2).
func Get(path string) (time.Time, error) {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME, &stx); err != nil {
		return time.Time{}, fmt.Errorf("statx %s: %w", path, err)
	}
	if stx.Mask&unix.STATX_BTIME == 0 || (stx.Btime.Sec == 0 && stx.Btime.Nsec == 0) {
		return time.Time{}, fmt.Errorf("%w: filesystem records no birth time for %s", ErrUnavailable, path)
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)), nil
}
