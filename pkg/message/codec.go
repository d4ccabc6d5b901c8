package message

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/backkem/airpurifier/pkg/crypto"
)

// Codec encrypts outgoing payloads with the session counter and decrypts
// inbound envelopes with the counter they carry. The two directions use
// independent counters; Decrypt never touches the session counter.
type Codec struct {
	secret  []byte
	counter *Counter
}

// NewCodec creates a codec over a shared secret and the session counter.
// A nil counter gets a fresh uninitialized one.
func NewCodec(secret []byte, counter *Counter) *Codec {
	if counter == nil {
		counter = NewCounter()
	}
	return &Codec{
		secret:  append([]byte(nil), secret...),
		counter: counter,
	}
}

// Counter returns the session counter the codec advances.
func (c *Codec) Counter() *Counter {
	return c.counter
}

// Encrypt advances the session counter and seals plaintext under it.
// Every call consumes a counter value, so two calls with the same input
// produce different envelopes.
func (c *Codec) Encrypt(plaintext []byte) (Envelope, error) {
	counterHex, err := c.counter.Next()
	if err != nil {
		return Envelope{}, err
	}
	return Seal(c.secret, counterHex, plaintext)
}

// EncryptJSON serializes v to JSON and encrypts it.
func (c *Codec) EncryptJSON(v any) (Envelope, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal payload: %w", err)
	}
	return c.Encrypt(plaintext)
}

// Decrypt verifies and decrypts an inbound envelope.
func (c *Codec) Decrypt(raw []byte) ([]byte, error) {
	return Open(c.secret, raw)
}

// Seal encrypts plaintext under an explicit counter. It is the stateless half
// of Encrypt and is what the device side of the protocol uses.
func Seal(secret []byte, counterHex string, plaintext []byte) (Envelope, error) {
	key, iv := crypto.DeriveKeyIV(secret, counterHex)
	block, err := crypto.NewAESCBC(key, iv)
	if err != nil {
		return Envelope{}, err
	}

	ciphertext := strings.ToUpper(hex.EncodeToString(block.Encrypt(plaintext)))
	return NewEnvelope(counterHex, ciphertext), nil
}

// Open verifies the digest of raw and decrypts it with key material derived
// from the counter embedded in the envelope.
func Open(secret []byte, raw []byte) ([]byte, error) {
	env, err := ParseEnvelope(raw)
	if err != nil {
		return nil, err
	}

	ciphertext, err := hex.DecodeString(env.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}

	key, iv := crypto.DeriveKeyIV(secret, env.Counter)
	block, err := crypto.NewAESCBC(key, iv)
	if err != nil {
		return nil, err
	}

	plaintext, err := block.Decrypt(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}
	return plaintext, nil
}
