package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Digest hashes the given parts into a stable hex string.
// Parts are JSON-encoded as a list before hashing, so ("ab", "c") and
// ("a", "bc") produce different digests.
func Digest(parts ...any) string {
	data, _ := json.Marshal(parts)
	return Hash(data)
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// EntryKey builds the file name of a cache entry: <name>_<digest>.<ext>.
func EntryKey(name, digest, ext string) string {
	return name + "_" + digest + "." + ext
}
