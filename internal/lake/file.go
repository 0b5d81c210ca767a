// Package lake pairs files on disk with their archive metadata.
package lake

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"datalake/internal/metadata"
)

// File is an absolute filesystem path together with the complete metadata
// describing it.
type File struct {
	Path     string
	Metadata metadata.Metadata
}

// New wraps a path and its already-validated metadata.
func New(path string, md metadata.Metadata) *File {
	return &File{Path: path, Metadata: md}
}

// FromPath constructs a File for path from caller-supplied fields, filling
// in the absolute path and content hash before validation. The file must
// exist and be regular.
func FromPath(path string, fields metadata.Fields) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("inspect file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", abs)
	}

	hash, err := hashContents(abs)
	if err != nil {
		return nil, err
	}

	fields.Path = abs
	fields.Hash = hash
	md, err := metadata.New(fields)
	if err != nil {
		return nil, err
	}
	return &File{Path: abs, Metadata: md}, nil
}

// Open returns a reader over the file's current contents.
func (f *File) Open() (*os.File, error) {
	return os.Open(f.Path)
}

func hashContents(path string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for hashing: %w", err)
	}
	defer in.Close()

	h := sha256.New()
	if _, err := io.Copy(h, in); err != nil {
		return "", fmt.Errorf("hash contents: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
