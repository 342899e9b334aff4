package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// Prefix returns the first prefixLen characters of SHA256(input).
// Used to correlate client IPs and channel URLs in logs without writing them raw.
func Prefix(input string, prefixLen int) string {
	full := SHA256Hex(input)
	if prefixLen <= 0 || prefixLen > len(full) {
		return full
	}
	return full[:prefixLen]
}
