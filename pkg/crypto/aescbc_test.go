package crypto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("invalid hex %q: %v", s, err)
	}
	return b
}

// NIST SP 800-38A F.2.1 CBC-AES128.Encrypt, first block. With PKCS#7 a full
// padding block follows, so only the first 16 bytes are compared.
func TestAESCBC_NISTFirstBlock(t *testing.T) {
	key := mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	iv := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	plaintext := mustHex(t, "6bc1bee22e409f96e93d7e117393172a")
	want := mustHex(t, "7649abac8119b246cee98e9b12e9197d")

	c, err := NewAESCBC(key, iv)
	if err != nil {
		t.Fatalf("NewAESCBC() error = %v", err)
	}

	ciphertext := c.Encrypt(plaintext)
	if len(ciphertext) != 32 {
		t.Fatalf("len(ciphertext) = %d, want 32", len(ciphertext))
	}
	if !bytes.Equal(ciphertext[:16], want) {
		t.Errorf("first block = %x, want %x", ciphertext[:16], want)
	}

	got, err := c.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("Decrypt() = %x, want %x", got, plaintext)
	}
}

func TestAESCBC_RoundTripLengths(t *testing.T) {
	key, iv := DeriveKeyIV([]byte("JiangPan"), "00000001")
	c, err := NewAESCBC(key, iv)
	if err != nil {
		t.Fatalf("NewAESCBC() error = %v", err)
	}

	for _, n := range []int{0, 1, 15, 16, 17, 31, 32, 100} {
		plaintext := bytes.Repeat([]byte{'x'}, n)
		ciphertext := c.Encrypt(plaintext)
		if len(ciphertext)%AESCBCBlockSize != 0 || len(ciphertext) <= n {
			t.Errorf("len %d: ciphertext length %d not padded", n, len(ciphertext))
		}
		got, err := c.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("len %d: Decrypt() error = %v", n, err)
		}
		if !bytes.Equal(got, plaintext) {
			t.Errorf("len %d: round trip mismatch", n)
		}
	}
}

func TestAESCBC_Errors(t *testing.T) {
	key := bytes.Repeat([]byte{1}, 16)
	iv := bytes.Repeat([]byte{2}, 16)

	if _, err := NewAESCBC(key[:15], iv); !errors.Is(err, ErrAESCBCInvalidKeySize) {
		t.Errorf("short key error = %v, want ErrAESCBCInvalidKeySize", err)
	}
	if _, err := NewAESCBC(key, iv[:8]); !errors.Is(err, ErrAESCBCInvalidIVSize) {
		t.Errorf("short iv error = %v, want ErrAESCBCInvalidIVSize", err)
	}

	c, err := NewAESCBC(key, iv)
	if err != nil {
		t.Fatalf("NewAESCBC() error = %v", err)
	}

	if _, err := c.Decrypt(nil); !errors.Is(err, ErrAESCBCInvalidCiphertext) {
		t.Errorf("empty ciphertext error = %v, want ErrAESCBCInvalidCiphertext", err)
	}
	if _, err := c.Decrypt(make([]byte, 17)); !errors.Is(err, ErrAESCBCInvalidCiphertext) {
		t.Errorf("unaligned ciphertext error = %v, want ErrAESCBCInvalidCiphertext", err)
	}

	// 20 bytes encrypt to two blocks with 12 bytes of padding. Flipping the
	// last byte of the first block flips the final padding byte to 0xF3.
	ciphertext := c.Encrypt(bytes.Repeat([]byte{'p'}, 20))
	tampered := bytes.Clone(ciphertext)
	tampered[AESCBCBlockSize-1] ^= 0xFF
	if _, err := c.Decrypt(tampered); !errors.Is(err, ErrAESCBCInvalidPadding) {
		t.Errorf("tampered ciphertext error = %v, want ErrAESCBCInvalidPadding", err)
	}
}
