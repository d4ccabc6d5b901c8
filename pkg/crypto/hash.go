// Package crypto provides the cryptographic primitives of the purifier
// secure-message protocol: the MD5-based key derivation, SHA-256 envelope
// digests, and AES-128-CBC with PKCS#7 padding.
//
// The protocol renders every digest as uppercase hexadecimal text and uses that
// text (not the decoded bytes) as cipher key material, so the helpers here
// return strings where the protocol does.
package crypto

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Digest lengths in hex characters.
const (
	// MD5HexLen is the length of an MD5 digest rendered as hex.
	MD5HexLen = md5.Size * 2

	// SHA256HexLen is the length of a SHA-256 digest rendered as hex.
	SHA256HexLen = sha256.Size * 2
)

// MD5Hex returns the MD5 digest of message as uppercase hex.
func MD5Hex(message []byte) string {
	sum := md5.Sum(message)
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// SHA256Hex returns the SHA-256 digest of message as uppercase hex.
func SHA256Hex(message []byte) string {
	sum := sha256.Sum256(message)
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
