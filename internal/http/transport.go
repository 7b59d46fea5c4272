package httpx

import (
	"net/http"
)

// CookieHeaders extracts the raw Cookie header strings from a request. A
// client may send one compound header with ";"-separated pairs or several
// separate headers; all are returned in wire order for the parser to
// merge. This is the only point where incoming cookie data touches the
// platform request object.
func CookieHeaders(r *http.Request) []string {
	return r.Header.Values(HeaderCookie)
}

// AddSetCookie appends a serialized Set-Cookie header string to the
// response. The header must already be fully rendered (see
// cookie.Serialize); nothing is escaped or validated here.
func AddSetCookie(w http.ResponseWriter, header string) {
	w.Header().Add(HeaderSetCookie, header)
}
