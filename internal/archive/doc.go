// Package archive uploads datalake files to an S3 bucket.
//
// An Archive is constructed from the storage section of the configuration
// and derives each object key from the file's metadata, so the same file
// always lands at the same location. The serialized metadata travels with
// the object as an S3 metadata header.
package archive
