package pingcraft

import "errors"

var (
	// ErrInvalidStatus is returned when the status payload is not a
	// well-formed JSON object.
	ErrInvalidStatus = errors.New("malformed status document")
	// ErrInvalidEncoding is returned on invalid UTF-8 or base64 content.
	ErrInvalidEncoding = errors.New("invalid encoding")
	// ErrInvalidFavicon is returned when a favicon lacks the PNG data URI
	// prefix.
	ErrInvalidFavicon = errors.New("invalid favicon")
)
