//go:build !linux

package crtime

import (
	"fmt"
	"runtime"
	"time"
)

// Get is unsupported off Linux; use an explicit millisecond timestamp
// instead of the crtime time word.
func Get(path string) (time.Time, error) {
	return time.Time{}, fmt.Errorf("%w on %s", ErrUnavailable, runtime.GOOS)
}
