// Package analysis scores mapped tRNA sequences against the modification
// catalogue and produces compatibility verdicts.
//
// Analysis is pure: it consumes an immutable mapping and the shared
// read-only catalogue and emits a fresh Verdict per sequence, so batches of
// sequences can be scored concurrently without coordination.
package analysis
