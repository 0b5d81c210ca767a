// Package metadata defines the provenance document that travels with every
// archived file and validates caller-supplied fields.
//
// A metadata document records where a file came from (where), what kind of
// content it holds (what), the event time range it covers (start/end), an
// optional logical work identifier, and the file's path and content hash. The
// id field names the file uniquely across the archive and doubles as the
// queue entry name while an upload is pending.
//
// Documents serialize to a stable JSON encoding; FromJSON rejects anything
// that does not validate, so downstream consumers never observe a partially
// formed document.
package metadata
