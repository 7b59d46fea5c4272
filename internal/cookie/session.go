package cookie

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/nichoth/session-cookie/internal/security"
)

// MinKeyLength is the minimum signing key length in bytes. No signing or
// verification path may proceed with a shorter key.
const MinKeyLength = 32

// Codec builds and authenticates session cookie values under a single
// signing key. It is immutable after construction and safe for concurrent
// use.
type Codec struct {
	key      []byte
	opts     security.Options
	sigWidth int
}

// CodecOption configures a Codec at construction time.
type CodecOption func(*Codec)

// WithAlgorithm selects the HMAC algorithm (default sha1).
func WithAlgorithm(alg security.Algorithm) CodecOption {
	return func(c *Codec) {
		c.opts.Algorithm = alg
	}
}

// WithEncoding selects the signature encoding (default URL-safe base64).
func WithEncoding(enc security.Encoding) CodecOption {
	return func(c *Codec) {
		c.opts.Encoding = enc
	}
}

// NewCodec validates the key and precomputes the signature split width for
// the configured algorithm/encoding pair.
func NewCodec(key []byte, opts ...CodecOption) (*Codec, error) {
	if len(key) == 0 {
		return nil, ErrKeyRequired
	}
	if len(key) < MinKeyLength {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrKeyTooShort, len(key), MinKeyLength)
	}

	c := &Codec{key: key}
	for _, opt := range opts {
		opt(c)
	}

	width, err := security.SignatureWidth(c.opts)
	if err != nil {
		return nil, err
	}
	c.sigWidth = width

	return c, nil
}

// SignatureWidth returns the character length of signatures produced by
// this codec, which is also the split offset used by Decode and Verify.
func (c *Codec) SignatureWidth() int {
	return c.sigWidth
}

// Encode serializes payload to canonical JSON, signs it, and returns the
// session cookie value: signature directly followed by the base64url
// encoded payload bytes.
//
// encoding/json emits map keys in sorted order, so the same logical
// payload always produces the same bytes and therefore the same signature
// regardless of how the map was built.
func (c *Codec) Encode(payload map[string]any) (string, error) {
	canonical, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	sig, err := security.Sign(canonical, c.key, c.opts)
	if err != nil {
		return "", fmt.Errorf("failed to sign payload: %w", err)
	}

	return sig + base64.RawURLEncoding.EncodeToString(canonical), nil
}

// Decode splits value at the signature width and parses the payload
// portion back into a map.
//
// Decode does NOT authenticate: it trusts its input and returns whatever
// JSON decodes. Callers must check Verify first; skipping that hands an
// attacker full control over every returned field.
func (c *Codec) Decode(value string) (map[string]any, error) {
	if len(value) < c.sigWidth {
		return nil, fmt.Errorf("%w: got %d chars, need at least %d", ErrValueTooShort, len(value), c.sigWidth)
	}

	canonical, err := base64.RawURLEncoding.DecodeString(value[c.sigWidth:])
	if err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(canonical, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}

// Verify reports whether value carries a valid signature over its payload
// portion. Malformed values verify as false, never as an error.
func (c *Codec) Verify(value string) bool {
	if len(value) < c.sigWidth {
		return false
	}

	canonical, err := base64.RawURLEncoding.DecodeString(value[c.sigWidth:])
	if err != nil {
		return false
	}

	return security.Verify(c.key, canonical, value[:c.sigWidth], c.opts)
}
