// Package orchestrator wires the record → template view → renderer pipeline
// and the export pipeline behind a single entry point for the CLI and HTTP
// surfaces.
package orchestrator
