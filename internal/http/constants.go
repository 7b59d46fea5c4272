// Package httpx provides the HTTP glue around the session cookie codec:
// routing, request handlers, and the transport helpers that move raw
// header strings between platform objects and the codec. The codec itself
// never touches a request or response; it sees strings only.
package httpx

// HTTP Routes
const (
	// RouteHealth is the endpoint for health checks
	RouteHealth = "/healthz"
	// RouteSession is the endpoint for issuing, reading and clearing sessions
	RouteSession = "/session"
	// RouteMe is a session-protected endpoint returning the caller's payload
	RouteMe = "/me"
)

// Content Types
const (
	// ContentTypeJSON is the MIME type for JSON responses with UTF-8 charset
	ContentTypeJSON = "application/json; charset=utf-8"
)

// HTTP Headers
const (
	// HeaderContentType is the Content-Type header name
	HeaderContentType = "Content-Type"
	// HeaderCookie is the request header carrying client cookies
	HeaderCookie = "Cookie"
	// HeaderSetCookie is the response header carrying cookie assignments
	HeaderSetCookie = "Set-Cookie"
)

// maxSessionValue caps the encoded session value so the full header stays
// under the 4KB browser cookie limit with room for attributes.
const maxSessionValue = 3500

// maxBodyBytes caps the JSON payload accepted when issuing a session.
const maxBodyBytes = 1 << 20
