package queue

import (
	"fmt"

	"github.com/pkg/xattr"

	"datalake/internal/metadata"
)

// MetadataAttr is the reserved extended attribute holding a file's
// serialized metadata. It lives on the original file, not the queue entry.
const MetadataAttr = "user.datalake-metadata"

func writeMetadataAttr(path string, md metadata.Metadata) error {
	if err := xattr.Set(path, MetadataAttr, md.JSON()); err != nil {
		return fmt.Errorf("write metadata attribute on %s: %w", path, err)
	}
	return nil
}

func readMetadataAttr(path string) (metadata.Metadata, error) {
	raw, err := xattr.Get(path, MetadataAttr)
	if err != nil {
		return metadata.Metadata{}, fmt.Errorf("read metadata attribute from %s: %w", path, err)
	}
	md, err := metadata.FromJSON(raw)
	if err != nil {
		return metadata.Metadata{}, fmt.Errorf("metadata attribute on %s: %w", path, err)
	}
	return md, nil
}
