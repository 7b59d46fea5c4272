package cookie

import "errors"

var (
	ErrKeyRequired     = errors.New("signing key is required")
	ErrKeyTooShort     = errors.New("signing key too short")
	ErrValueTooShort   = errors.New("session value shorter than signature width")
	ErrInvalidName     = errors.New("invalid cookie name")
	ErrInvalidValue    = errors.New("invalid cookie value")
	ErrInvalidDomain   = errors.New("invalid cookie domain")
	ErrInvalidPath     = errors.New("invalid cookie path")
	ErrInvalidExpires  = errors.New("invalid expires date")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidSameSite = errors.New("invalid samesite value")
)
