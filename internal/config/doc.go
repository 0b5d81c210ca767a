// Package config loads, normalizes, and validates datalake client
// configuration.
//
// It supplies defaults, reads TOML files from /etc/datalake.toml or
// ~/.config/datalake/config.toml, expands tilde paths, and overlays
// environment variables such as DATALAKE_QUEUE_DIR, DATALAKE_STORAGE_URL,
// and the AWS_* credential variables. Command-line flags overlay the result
// in the CLI layer.
//
// A missing config file is not an error; every setting has a usable zero
// value except those the consuming component checks eagerly (the queue
// directory for queue operations, the storage URL for archive access).
package config
