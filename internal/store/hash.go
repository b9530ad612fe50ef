package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/trnamod/trnamod/internal/analysis"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainVerdict = "trnamod/verdict/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// VerdictHash computes the content-addressed hash of a verdict. The hash
// is stable across restarts and runs given the same verdict: two runs
// over the same input under the same catalogue and threshold produce
// verdicts with identical hashes.
func VerdictHash(v analysis.Verdict) (string, error) {
	canonical, err := MarshalCanonical(canonicalVerdict(v))
	if err != nil {
		return "", fmt.Errorf("VerdictHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainVerdict, canonical), nil
}

// MustVerdictHash is like VerdictHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustVerdictHash(v analysis.Verdict) string {
	hash, err := VerdictHash(v)
	if err != nil {
		panic(err)
	}
	return hash
}
