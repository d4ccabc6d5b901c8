package crypto

// KeyIVLen is the length of the derived key and IV. Each half of the
// 32-character MD5 hex digest is used verbatim as 16 ASCII bytes, which
// matches the AES-128 key and block size.
const KeyIVLen = MD5HexLen / 2

// DeriveKeyIV derives the AES-128 key and IV for a message counter.
//
// The digest MD5(secret || counterHex) is rendered as 32 uppercase hex
// characters; the first 16 characters are the key and the last 16 the IV.
// The hex characters themselves are the key bytes, they are not decoded.
func DeriveKeyIV(secret []byte, counterHex string) (key, iv []byte) {
	material := make([]byte, 0, len(secret)+len(counterHex))
	material = append(material, secret...)
	material = append(material, counterHex...)

	digest := MD5Hex(material)
	return []byte(digest[:KeyIVLen]), []byte(digest[KeyIVLen:])
}
