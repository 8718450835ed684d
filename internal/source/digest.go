package source

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Digest returns the hex SHA3-256 digest of text.
// History uses it to recognise a re-run on unchanged lyrics.
func Digest(text string) string {
	sum := sha3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
