package cookie

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SerializeOptions holds the cookie attributes for Serialize. Pointer
// fields distinguish "unset" from a zero value; every attribute is
// independently optional.
type SerializeOptions struct {
	// Encode transforms the cookie value before validation. Nil selects
	// percent-encoding.
	Encode func(string) (string, error)

	MaxAge      *int
	Domain      string
	Path        string
	Expires     *time.Time
	HTTPOnly    bool
	Secure      bool
	Partitioned bool

	// Priority is one of "low", "medium" or "high", case-insensitive.
	Priority string

	// SameSite is one of "strict", "lax" or "none", case-insensitive.
	// "true" is accepted as an alias for "strict".
	SameSite string
}

// PercentEncode is the default value encoder: plain percent-encoding, with
// spaces rendered as "%20". A literal "+" is escaped to "%2B", never left
// to double as a space the way form encoding does, so PercentDecode and
// third-party percent decoders both round-trip it.
func PercentEncode(s string) (string, error) {
	// QueryEscape already hex-escapes "+"; the only "+" left afterwards
	// are its space encodings.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20"), nil
}

// validFieldContent reports whether s matches the RFC 7230 field-content
// rule: horizontal tab, printable ASCII (0x20-0x7E) and the high byte
// range 0x80-0xFF, at least one byte.
func validFieldContent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b != '\t' && (b < 0x20 || b == 0x7f) {
			return false
		}
	}
	return true
}

// Serialize renders a full Set-Cookie header string for name and value
// with the given attributes. It fails rather than emit a malformed header:
// invalid name or value syntax, invalid Domain/Path syntax, a zero Expires
// date, or an unknown Priority/SameSite keyword are all errors.
//
// Attributes are appended in a fixed order: Max-Age, Domain, Path,
// Expires, HttpOnly, Secure, Partitioned, Priority, SameSite.
func Serialize(name, value string, opts SerializeOptions) (string, error) {
	if !validFieldContent(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	encode := opts.Encode
	if encode == nil {
		encode = PercentEncode
	}

	encoded, err := encode(value)
	if err != nil {
		return "", fmt.Errorf("failed to encode cookie value: %w", err)
	}

	// An empty value is legal (used to clear cookies); a non-empty encoded
	// value must still be valid field-content.
	if encoded != "" && !validFieldContent(encoded) {
		return "", fmt.Errorf("%w: %q", ErrInvalidValue, encoded)
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(encoded)

	if opts.MaxAge != nil {
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.Itoa(*opts.MaxAge))
	}

	if opts.Domain != "" {
		if !validFieldContent(opts.Domain) {
			return "", fmt.Errorf("%w: %q", ErrInvalidDomain, opts.Domain)
		}
		b.WriteString("; Domain=")
		b.WriteString(opts.Domain)
	}

	if opts.Path != "" {
		if !validFieldContent(opts.Path) {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, opts.Path)
		}
		b.WriteString("; Path=")
		b.WriteString(opts.Path)
	}

	if opts.Expires != nil {
		if opts.Expires.IsZero() {
			return "", ErrInvalidExpires
		}
		b.WriteString("; Expires=")
		b.WriteString(opts.Expires.UTC().Format(http.TimeFormat))
	}

	if opts.HTTPOnly {
		b.WriteString("; HttpOnly")
	}

	if opts.Secure {
		b.WriteString("; Secure")
	}

	if opts.Partitioned {
		b.WriteString("; Partitioned")
	}

	if opts.Priority != "" {
		switch strings.ToLower(opts.Priority) {
		case "low":
			b.WriteString("; Priority=Low")
		case "medium":
			b.WriteString("; Priority=Medium")
		case "high":
			b.WriteString("; Priority=High")
		default:
			return "", fmt.Errorf("%w: %q", ErrInvalidPriority, opts.Priority)
		}
	}

	if opts.SameSite != "" {
		switch strings.ToLower(opts.SameSite) {
		case "true", "strict":
			b.WriteString("; SameSite=Strict")
		case "lax":
			b.WriteString("; SameSite=Lax")
		case "none":
			b.WriteString("; SameSite=None")
		default:
			return "", fmt.Errorf("%w: %q", ErrInvalidSameSite, opts.SameSite)
		}
	}

	return b.String(), nil
}
