package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// keySchema is folded into every derived key. Bump it when the cached
// layout or artifact encoding changes so stale entries are never decoded.
const keySchema = 1

// hashKey derives "<kind>:<sha256>" from the JSON encoding of parts.
// Parts are plain strings and option structs, which always marshal.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(struct {
		Schema int   `json:"schema"`
		Parts  []any `json:"parts"`
	}{keySchema, parts})
	return kind + ":" + Hash(data)
}

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
