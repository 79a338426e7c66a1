// Package export extracts git treeishes into working directories.
//
// Unlike the archive assembler, which raises typed errors, the exporter
// deliberately downgrades every failure class to a boolean plus a logged
// message: callers exporting many trees in bulk inspect the result and
// continue past individual failures.
package export
