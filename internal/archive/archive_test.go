package archive_test

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"datalake/internal/archive"
	"datalake/internal/lake"
	"datalake/internal/logging"
	"datalake/internal/metadata"
	"datalake/internal/testsupport"
)

func newTestArchive(t *testing.T, storageURL string) *archive.Archive {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithStorageURL(storageURL))

	a, err := archive.New(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return a
}

func testMetadata(t *testing.T) metadata.Metadata {
	t.Helper()
	start := int64(1415391900000) // 2014-11-07 UTC
	md, err := metadata.New(metadata.Fields{
		Start: &start,
		Where: "host1",
		What:  "log",
		ID:    "0123456789abcdef0123456789abcdef",
		Path:  "/var/log/syslog",
		Hash:  "deadbeef",
	})
	if err != nil {
		t.Fatalf("metadata.New returned error: %v", err)
	}
	return md
}

func TestNewRequiresStorageURL(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStorageURL(""))
	if _, err := archive.New(context.Background(), cfg, logging.NewNop()); !errors.Is(err, archive.ErrNoStorageURL) {
		t.Fatalf("expected ErrNoStorageURL, got %v", err)
	}
}

func TestNewRejectsNonS3URL(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStorageURL("https://example-bucket/data"))
	_, err := archive.New(context.Background(), cfg, logging.NewNop())
	if err == nil {
		t.Fatal("expected error for non-s3 storage url")
	}
	if errors.Is(err, archive.ErrNoStorageURL) {
		t.Fatalf("wrong error for non-s3 url: %v", err)
	}
}

func TestObjectKeyLayout(t *testing.T) {
	a := newTestArchive(t, "s3://lake-bucket")
	md := testMetadata(t)

	want := "v0/log/2014/11/07/host1/0123456789abcdef0123456789abcdef"
	if got := a.ObjectKey(md); got != want {
		t.Fatalf("unexpected key: got %q want %q", got, want)
	}
	if got, want := a.URL(md), "s3://lake-bucket/"+want; got != want {
		t.Fatalf("unexpected url: got %q want %q", got, want)
	}
}

func TestObjectKeyWithPrefix(t *testing.T) {
	a := newTestArchive(t, "s3://lake-bucket/ingest/raw")
	md := testMetadata(t)

	want := "ingest/raw/v0/log/2014/11/07/host1/0123456789abcdef0123456789abcdef"
	if got := a.ObjectKey(md); got != want {
		t.Fatalf("unexpected key: got %q want %q", got, want)
	}
}

func TestPushReportsUnreadableFile(t *testing.T) {
	a := newTestArchive(t, "s3://lake-bucket")
	f := lake.New(filepath.Join(t.TempDir(), "missing"), testMetadata(t))

	_, err := a.Push(context.Background(), f)
	if !errors.Is(err, archive.ErrPush) {
		t.Fatalf("expected ErrPush, got %v", err)
	}
}

func TestPushPathPropagatesFileErrors(t *testing.T) {
	a := newTestArchive(t, "s3://lake-bucket")

	start := int64(100)
	_, err := a.PushPath(context.Background(), filepath.Join(t.TempDir(), "missing"), metadata.Fields{
		Start: &start,
		Where: "host1",
		What:  "log",
	})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	if errors.Is(err, archive.ErrPush) {
		t.Fatalf("file construction failure should not be a push error: %v", err)
	}
}
