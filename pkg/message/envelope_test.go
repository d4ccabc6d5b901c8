package message

import (
	"errors"
	"strings"
	"testing"
)

func TestParseEnvelope(t *testing.T) {
	env, err := ParseEnvelope([]byte(vectorEnvelope))
	if err != nil {
		t.Fatalf("ParseEnvelope() error = %v", err)
	}
	if env.Counter != "0000000A" {
		t.Errorf("Counter = %s, want 0000000A", env.Counter)
	}
	if len(env.Digest) != DigestLen {
		t.Errorf("len(Digest) = %d, want %d", len(env.Digest), DigestLen)
	}
	if env.String() != vectorEnvelope {
		t.Error("String() does not reproduce the wire form")
	}
}

func TestParseEnvelope_MinimumLength(t *testing.T) {
	// Exactly 72 characters: empty ciphertext with a correct digest.
	env := NewEnvelope("00000001", "")
	if len(env.String()) != MinEnvelopeLen {
		t.Fatalf("len = %d, want %d", len(env.String()), MinEnvelopeLen)
	}
	if _, err := ParseEnvelope(env.Bytes()); err != nil {
		t.Errorf("ParseEnvelope() error = %v, want nil", err)
	}

	// 71 characters are rejected as too short, never as a digest mismatch.
	short := strings.Repeat("0", MinEnvelopeLen-1)
	if _, err := ParseEnvelope([]byte(short)); !errors.Is(err, ErrEnvelopeTooShort) {
		t.Errorf("ParseEnvelope(71 chars) error = %v, want ErrEnvelopeTooShort", err)
	}
}

func TestEnvelope_Verify(t *testing.T) {
	env := NewEnvelope("DEADBEEF", "00112233445566778899AABBCCDDEEFF")
	if err := env.Verify(); err != nil {
		t.Errorf("Verify() error = %v", err)
	}

	env.Ciphertext = "FF112233445566778899AABBCCDDEEFF"
	if err := env.Verify(); !errors.Is(err, ErrDigestMismatch) {
		t.Errorf("Verify() error = %v, want ErrDigestMismatch", err)
	}
}
