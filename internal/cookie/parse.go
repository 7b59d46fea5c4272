package cookie

import (
	"net/url"
	"strings"
)

// ParseOptions configures Parse. The zero value selects percent-decoding.
type ParseOptions struct {
	// Decode transforms each cookie value after splitting. Nil selects
	// percent-decoding. A decode failure keeps the raw value instead of
	// erroring.
	Decode func(string) (string, error)
}

// PercentDecode is the default value decoder: plain percent-decoding. A
// raw "+" is a legal cookie octet and passes through unchanged; only "%XX"
// sequences are decoded. This keeps values written by third parties with
// literal "+" characters intact.
func PercentDecode(s string) (string, error) {
	return url.PathUnescape(s)
}

// Parse merges one or more raw Cookie header strings into a single
// name to value mapping. Values are strings; a segment without "=" (a bare
// flag) maps to boolean true. Later duplicates overwrite earlier ones, in
// header order and then left to right within a header.
//
// Parse never fails: malformed segments degrade to best-effort partial
// parses so arbitrary client input cannot break the whole mapping.
func Parse(headers []string, opts ParseOptions) map[string]any {
	decode := opts.Decode
	if decode == nil {
		decode = PercentDecode
	}

	out := make(map[string]any)

	for _, header := range headers {
		for _, segment := range strings.Split(header, ";") {
			segment = strings.TrimSpace(segment)
			if segment == "" {
				continue
			}

			idx := strings.Index(segment, "=")
			if idx < 0 {
				out[segment] = true
				continue
			}

			key := strings.TrimSpace(segment[:idx])
			if key == "" {
				continue
			}

			raw := strings.TrimSpace(segment[idx+1:])
			if decoded, err := decode(raw); err == nil {
				out[key] = decoded
			} else {
				out[key] = raw
			}
		}
	}

	return out
}
