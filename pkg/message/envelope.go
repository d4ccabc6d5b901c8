package message

import (
	"github.com/backkem/airpurifier/pkg/crypto"
)

// Envelope layout constants.
const (
	// CounterLen is the length of the hex counter prefix.
	CounterLen = 8

	// DigestLen is the length of the hex SHA-256 digest suffix.
	DigestLen = crypto.SHA256HexLen

	// MinEnvelopeLen is the shortest possible envelope (empty ciphertext).
	MinEnvelopeLen = CounterLen + DigestLen
)

// Envelope is the wire form of an encrypted message:
//
//	counterHex || ciphertextHex || SHA256(counterHex || ciphertextHex)
//
// All three parts are ASCII hex text.
type Envelope struct {
	Counter    string
	Ciphertext string
	Digest     string
}

// NewEnvelope builds an envelope and computes its digest.
func NewEnvelope(counterHex, ciphertextHex string) Envelope {
	return Envelope{
		Counter:    counterHex,
		Ciphertext: ciphertextHex,
		Digest:     envelopeDigest(counterHex, ciphertextHex),
	}
}

// ParseEnvelope splits raw wire bytes into an envelope and verifies its
// digest. Input shorter than MinEnvelopeLen is rejected before hashing.
func ParseEnvelope(raw []byte) (Envelope, error) {
	if len(raw) < MinEnvelopeLen {
		return Envelope{}, ErrEnvelopeTooShort
	}

	s := string(raw)
	env := Envelope{
		Counter:    s[:CounterLen],
		Ciphertext: s[CounterLen : len(s)-DigestLen],
		Digest:     s[len(s)-DigestLen:],
	}
	if err := env.Verify(); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

// Verify checks the digest against the counter and ciphertext.
func (e Envelope) Verify() error {
	if len(e.Counter) != CounterLen || len(e.Digest) != DigestLen {
		return ErrEnvelopeTooShort
	}
	if envelopeDigest(e.Counter, e.Ciphertext) != e.Digest {
		return ErrDigestMismatch
	}
	return nil
}

// String returns the wire rendering of the envelope.
func (e Envelope) String() string {
	return e.Counter + e.Ciphertext + e.Digest
}

// Bytes returns the wire rendering as bytes.
func (e Envelope) Bytes() []byte {
	return []byte(e.String())
}

func envelopeDigest(counterHex, ciphertextHex string) string {
	return crypto.SHA256Hex([]byte(counterHex + ciphertextHex))
}
