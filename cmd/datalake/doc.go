// Package main hosts the datalake CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into archive
// pushes, durable queue operations, path translation, and configuration
// scaffolding. It centralizes configuration resolution and flag-over-config
// precedence so subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
