// Package security implements the HMAC signing and verification engine for
// session cookies.
//
// # Signing
//
// Sign computes an HMAC digest over the caller-supplied canonical bytes and
// renders it as a cookie-safe token. The default pair is HMAC-SHA1 with a
// URL-safe base64 rendering (standard base64 with "/" mapped to "_", "+"
// mapped to "-" and padding stripped), which yields a fixed 27-character
// signature. SHA-256, SHA-512 and hex rendering are also supported; the
// resulting signature width is a computed property of the (algorithm,
// encoding) pair, see SignatureWidth.
//
// # Verification
//
// Verify recomputes the expected signature and compares it to the presented
// one using ConstantTimeEqual, so that the timing of a rejection does not
// depend on where the two signatures first differ.
//
// All functions are pure: no I/O, no shared state, safe for concurrent use.
package security

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"
)

// Algorithm selects the HMAC hash function.
type Algorithm string

const (
	AlgorithmSHA1   Algorithm = "sha1"
	AlgorithmSHA256 Algorithm = "sha256"
	AlgorithmSHA512 Algorithm = "sha512"
)

// Encoding selects the textual rendering of the HMAC digest.
type Encoding string

const (
	// EncodingBase64 renders the digest with the URL-safe base64 alphabet
	// and no padding, keeping the signature valid inside a cookie value.
	EncodingBase64 Encoding = "base64"
	// EncodingHex renders the digest as lowercase hexadecimal.
	EncodingHex Encoding = "hex"
)

// Options configures Sign and Verify. The zero value selects the defaults:
// SHA-1 with URL-safe base64.
type Options struct {
	Algorithm Algorithm
	Encoding  Encoding
}

// withDefaults returns a copy of opts with zero fields replaced by defaults.
func (o Options) withDefaults() Options {
	if o.Algorithm == "" {
		o.Algorithm = AlgorithmSHA1
	}
	if o.Encoding == "" {
		o.Encoding = EncodingBase64
	}
	return o
}

// hashFunc maps an Algorithm to its hash constructor and digest size.
func (a Algorithm) hashFunc() (func() hash.Hash, int, error) {
	switch a {
	case AlgorithmSHA1:
		return sha1.New, sha1.Size, nil
	case AlgorithmSHA256:
		return sha256.New, sha256.Size, nil
	case AlgorithmSHA512:
		return sha512.New, sha512.Size, nil
	default:
		return nil, 0, fmt.Errorf("unsupported algorithm: %q", a)
	}
}

// encodeDigest renders a raw HMAC digest according to the encoding.
func encodeDigest(digest []byte, enc Encoding) (string, error) {
	switch enc {
	case EncodingBase64:
		// Equivalent to standard base64 followed by "/"->"_", "+"->"-"
		// and removal of "=" padding.
		return base64.RawURLEncoding.EncodeToString(digest), nil
	case EncodingHex:
		return hex.EncodeToString(digest), nil
	default:
		return "", fmt.Errorf("unsupported encoding: %q", enc)
	}
}

// Sign computes the HMAC of data under key and returns the encoded
// signature. Deterministic: the same (data, key, options) always produces
// the same signature. Key length is not enforced here; callers that issue
// cookies must validate key material before signing (see the cookie codec).
func Sign(data, key []byte, opts Options) (string, error) {
	opts = opts.withDefaults()

	newHash, _, err := opts.Algorithm.hashFunc()
	if err != nil {
		return "", err
	}

	mac := hmac.New(newHash, key)
	mac.Write(data)

	return encodeDigest(mac.Sum(nil), opts.Encoding)
}

// SignatureWidth returns the exact character length of a signature produced
// by Sign with the given options. The cookie codec splits signature from
// payload at this width, so it must be derived from the configured pair
// rather than hardcoded (27 only holds for sha1/base64).
func SignatureWidth(opts Options) (int, error) {
	opts = opts.withDefaults()

	_, size, err := opts.Algorithm.hashFunc()
	if err != nil {
		return 0, err
	}

	switch opts.Encoding {
	case EncodingBase64:
		// Unpadded base64: ceil(4n/3) characters for n digest bytes.
		return (size*8 + 5) / 6, nil
	case EncodingHex:
		return size * 2, nil
	default:
		return 0, fmt.Errorf("unsupported encoding: %q", opts.Encoding)
	}
}

// Verify reports whether signature is a valid signature of data under key.
// The comparison is timing-safe: see ConstantTimeEqual. An unsupported
// algorithm or encoding verifies as false.
func Verify(key, data []byte, signature string, opts Options) bool {
	expected, err := Sign(data, key, opts)
	if err != nil {
		return false
	}
	return ConstantTimeEqual(expected, signature)
}
