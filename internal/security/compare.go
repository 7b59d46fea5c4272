package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
)

// hmacSHA256 computes HMAC-SHA256 of msg under key.
func hmacSHA256(key, msg []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}

// ConstantTimeEqual reports whether a and b are equal without leaking,
// through timing, the position at which they first differ.
//
// It uses the double-HMAC pattern: both candidates are hashed under a
// fresh random key generated for this comparison only, and the fixed-length
// digests are compared with subtle.ConstantTimeCompare. An attacker who
// does not know the ephemeral key cannot correlate digest bytes with
// candidate bytes, so even a variable-time digest comparison would reveal
// nothing; the constant-time primitive is used anyway. The final direct
// comparison only guards against the negligible case of a digest collision
// and runs solely when the digests already matched.
//
// Unequal lengths are an explicit false before any scan. There is no error
// path: if the random source fails, the comparison falls back to
// subtle.ConstantTimeCompare over the equal-length raw candidates.
func ConstantTimeEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	// Fresh key per comparison; reuse across calls would weaken the
	// independence of the mitigation.
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
	}

	aMAC := hmacSHA256(key, []byte(a))
	bMAC := hmacSHA256(key, []byte(b))

	if subtle.ConstantTimeCompare(aMAC, bMAC) != 1 {
		return false
	}

	return a == b
}
