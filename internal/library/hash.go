package library

import (
	"crypto/sha256"
	"encoding/hex"
)

// ComputeHash returns the SHA-256 hex digest of content's raw bytes. It is
// the deduplication key for prompts.
func ComputeHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
