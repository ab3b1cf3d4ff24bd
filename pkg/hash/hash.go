package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// URLFingerprint returns a stable cache key for a channel URL. The input is
// trimmed so trailing whitespace doesn't produce a second key for the same URL.
func URLFingerprint(url string) string {
	return SHA256Hex(strings.TrimSpace(url))
}

// ShortHash returns the first prefixLen characters of SHA256(input).
// Used for log correlation without writing raw identifiers to logs.
func ShortHash(input string, prefixLen int) string {
	full := SHA256Hex(input)
	if prefixLen > len(full) {
		return full
	}
	return full[:prefixLen]
}
