// Package crtime reads file creation (birth) times for the CLI's crtime
// time word.
package crtime

import "errors"

// ErrUnavailable marks platforms or filesystems that do not record file
// birth times.
var ErrUnavailable = errors.New("creation time unavailable")
