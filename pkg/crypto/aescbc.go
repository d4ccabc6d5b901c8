package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"errors"
)

// AES-CBC constants.
const (
	// AESCBCKeySize is the AES-128 key size in bytes.
	AESCBCKeySize = 16

	// AESCBCBlockSize is the AES block size, which is also the IV size.
	AESCBCBlockSize = aes.BlockSize
)

// Errors for AES-CBC operations.
var (
	ErrAESCBCInvalidKeySize    = errors.New("aescbc: invalid key size, must be 16 bytes")
	ErrAESCBCInvalidIVSize     = errors.New("aescbc: invalid IV size, must be 16 bytes")
	ErrAESCBCInvalidCiphertext = errors.New("aescbc: ciphertext is not a positive multiple of the block size")
	ErrAESCBCInvalidPadding    = errors.New("aescbc: invalid PKCS#7 padding")
)

// AESCBC is an AES-128-CBC cipher bound to a key and IV.
// A fresh instance is created per message because the protocol derives a new
// key and IV for every counter value.
type AESCBC struct {
	block cipher.Block
	iv    []byte
}

// NewAESCBC creates an AES-128-CBC cipher.
// Both key and iv must be exactly 16 bytes.
func NewAESCBC(key, iv []byte) (*AESCBC, error) {
	if len(key) != AESCBCKeySize {
		return nil, ErrAESCBCInvalidKeySize
	}
	if len(iv) != AESCBCBlockSize {
		return nil, ErrAESCBCInvalidIVSize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return &AESCBC{block: block, iv: bytes.Clone(iv)}, nil
}

// Encrypt pads plaintext with PKCS#7 and encrypts it.
// The result is always a non-empty multiple of the block size.
func (c *AESCBC) Encrypt(plaintext []byte) []byte {
	padded := pkcs7Pad(plaintext, AESCBCBlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, c.iv).CryptBlocks(ciphertext, padded)
	return ciphertext
}

// Decrypt decrypts ciphertext and strips the PKCS#7 padding.
func (c *AESCBC) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%AESCBCBlockSize != 0 {
		return nil, ErrAESCBCInvalidCiphertext
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(c.block, c.iv).CryptBlocks(plaintext, ciphertext)
	return pkcs7Unpad(plaintext, AESCBCBlockSize)
}

// pkcs7Pad appends between 1 and blockSize bytes of padding.
func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data), len(data)+n)
	copy(padded, data)
	return append(padded, bytes.Repeat([]byte{byte(n)}, n)...)
}

// pkcs7Unpad validates and removes PKCS#7 padding.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrAESCBCInvalidPadding
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, ErrAESCBCInvalidPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrAESCBCInvalidPadding
		}
	}
	return data[:len(data)-n], nil
}
