package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/pkg/xattr"

	"datalake/internal/lake"
)

// RequireXattrSupport skips the test when dir's filesystem rejects user
// extended attributes (tmpfs on older kernels, some containers). The probe
// uses a dot-named file, which queue machinery ignores.
func RequireXattrSupport(t testing.TB, dir string) {
	t.Helper()

	probe := filepath.Join(dir, ".xattr-probe")
	if err := os.WriteFile(probe, []byte("probe"), 0o600); err != nil {
		t.Fatalf("write xattr probe: %v", err)
	}
	defer os.Remove(probe)
	if err := xattr.Set(probe, "user.datalake-probe", []byte("1")); err != nil {
		t.Skipf("extended attributes unavailable in %s: %v", dir, err)
	}
}

// PushRecorder is a Pusher stub that records every push attempt. When Err is
// set each attempt fails with it; otherwise the push succeeds with a
// synthetic URL derived from the metadata id.
type PushRecorder struct {
	mu    sync.Mutex
	err   error
	calls []*lake.File
}

// Push records the attempt and succeeds unless an error is armed.
func (r *PushRecorder) Push(_ context.Context, f *lake.File) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, f)
	if r.err != nil {
		return "", r.err
	}
	return "s3://test-bucket/" + f.Metadata.ID, nil
}

// SetErr arms or clears the failure every subsequent push reports.
func (r *PushRecorder) SetErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Calls returns a copy of every recorded push attempt, in order.
func (r *PushRecorder) Calls() []*lake.File {
	r.mu.Lock()
	defer r.mu.Unlock()
	calls := make([]*lake.File, len(r.calls))
	copy(calls, r.calls)
	return calls
}
