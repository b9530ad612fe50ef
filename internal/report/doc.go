// Package report renders analysis results for human and machine
// consumption.
//
// Three formats are supported: text for terminals, tsv for pipelines,
// and json for tooling. Renderers take io.Writer so commands stay
// testable; all output is deterministic for a given input, which the
// golden tests rely on.
package report
