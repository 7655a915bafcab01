// Package synth is the deterministic estimator behind every demo and
// fallback path. It maps an entity string to a stable integer via SHA-256,
// so fallback values are reproducible across runs and platforms.
package synth

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Seed hashes the UTF-8 bytes of s and returns the first 4 hex digits of
// the digest as an unsigned integer (0..65535).
func Seed(s string) int {
	digest := sha256.Sum256([]byte(s))
	hexDigest := hex.EncodeToString(digest[:])
	v, _ := strconv.ParseUint(hexDigest[:4], 16, 32)
	return int(v)
}

// Estimate maps seed deterministically into [low, high]. A non-positive
// range collapses to low.
func Estimate(seed string, low, high int) int {
	span := high - low + 1
	if span < 1 {
		span = 1
	}
	return low + Seed(seed)%span
}
