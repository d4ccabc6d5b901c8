package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
)

// HandshakeNonceSize is the number of random bytes in a handshake request.
const HandshakeNonceSize = 4

// ErrShortRandom is returned when the random source runs dry.
var ErrShortRandom = errors.New("nonce: short read from random source")

// NewHandshakeNonce returns HandshakeNonceSize random bytes rendered as
// uppercase hex. A nil reader selects crypto/rand.
func NewHandshakeNonce(r io.Reader) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	var b [HandshakeNonceSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return "", fmt.Errorf("%w: %v", ErrShortRandom, err)
	}
	return strings.ToUpper(fmt.Sprintf("%x", b[:])), nil
}
