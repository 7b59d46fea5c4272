// Package cookie implements the session cookie codec: building signed
// session values, serializing full Set-Cookie header strings, and parsing
// incoming Cookie headers.
//
// # Cookie Format
//
// A session value is the signature immediately followed by the base64url
// encoded canonical JSON payload, with no delimiter:
//
//	signature || base64url(canonicalJSON(payload))
//	HsRjEfIngVXc20E5mCrD8uo7VFseyJpZGVudGlmaWVyIjoiYWJjIiwidHMiOiIxIn0
//
// The split point is the signature width, a fixed property of the codec's
// configured algorithm and encoding pair (27 characters for the default
// HMAC-SHA1/base64). There is no separator character; correctness depends
// entirely on that fixed width, so the codec computes it from its
// configuration instead of hardcoding a constant.
//
// # Security Design
//
// HMAC signatures provide tamper detection but NOT confidentiality: the
// payload is readable by anyone holding the cookie. Verification uses the
// constant-time comparison from the security package.
//
// Codec.Decode deliberately does not authenticate. It trusts its input and
// must never be called on a value that has not passed Codec.Verify first:
// on unverified input it returns whatever JSON decodes, every field of
// which an attacker controls.
//
// # Parsing Leniency
//
// Parse never fails. Malformed segments degrade to best-effort partial
// results and a value whose percent-decoding fails is kept raw, so one bad
// cookie among many cannot break the whole mapping. Serialize, by
// contrast, fails rather than emit a malformed header.
package cookie
