// Package store provides durable storage for analysis runs and their
// per-sequence verdicts.
//
// Backed by SQLite with WAL mode for concurrent read access. Runs are
// identified by time-ordered UUIDs; verdicts are additionally
// content-addressed with a domain-separated SHA-256 over their canonical
// JSON form, so identical verdicts hash identically across runs and
// machines.
//
// Canonical JSON here follows RFC 8785: object keys sorted by UTF-16 code
// units, strings NFC-normalized, no HTML escaping, and no floats. Scores
// enter the canonical form as fixed-point milli-units to keep it
// float-free.
//
// All writes use ON CONFLICT DO NOTHING for idempotency: re-recording a
// run or verdict that already exists is a silent no-op.
package store
