package change

import (
	"crypto/sha256"
	"encoding/base64"
)

// Checksum digests the exact file bytes. Two runs over an unchanged file
// must produce the same value; it is the change-detection key in the
// applied-change log.
func Checksum(contents []byte) string {
	sum := sha256.Sum256(contents)
	return base64.StdEncoding.EncodeToString(sum[:])
}
