package change

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum_Deterministic(t *testing.T) {
	contents := []byte("create table users (id int);\n")
	assert.Equal(t, Checksum(contents), Checksum(contents))
}

func TestChecksum_SingleByteChanges(t *testing.T) {
	a := Checksum([]byte("select 1;"))
	b := Checksum([]byte("select 2;"))
	assert.NotEqual(t, a, b)
}

func TestChecksum_WhitespaceSensitive(t *testing.T) {
	a := Checksum([]byte("select 1;"))
	b := Checksum([]byte("select 1; "))
	assert.NotEqual(t, a, b)
}

func TestChecksum_FixedLength(t *testing.T) {
	// base64 of a sha256 digest is always 44 characters.
	assert.Len(t, Checksum(nil), 44)
	assert.Len(t, Checksum([]byte("anything at all")), 44)
}
