package model

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"time"
)

// idPattern matches a 24-character hexadecimal record identifier.
var idPattern = regexp.MustCompile(`^[a-fA-F0-9]{24}$`)

// NewID generates a 24-character hex identifier: a 4-byte big-endian unix
// timestamp followed by 8 random bytes. Sorting lexically approximates
// creation order.
func NewID() string {
	var raw [12]byte
	binary.BigEndian.PutUint32(raw[:4], uint32(time.Now().Unix()))
	if _, err := rand.Read(raw[4:]); err != nil {
		// crypto/rand does not fail on supported platforms; colliding
		// identifiers would be worse than crashing.
		panic(err)
	}
	return hex.EncodeToString(raw[:])
}

// IsValidID reports whether s is a well-formed record identifier. Handlers
// must check this before any storage lookup.
func IsValidID(s string) bool {
	return idPattern.MatchString(s)
}
