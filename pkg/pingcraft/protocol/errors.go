package protocol

import (
	"errors"
	"io"
)

var (
	// ErrMalformedVarInt is returned when a VarInt does not terminate
	// within MaxVarIntLen bytes.
	ErrMalformedVarInt = errors.New("malformed varint")
	// ErrTruncatedStream is returned when the stream ends before the
	// amount of data it declared could be read.
	ErrTruncatedStream = errors.New("truncated stream")
	// ErrInvalidPacketID is returned when a packet carries an unexpected id.
	ErrInvalidPacketID = errors.New("invalid packet id")
	// ErrInvalidPacketLength is returned when a packet declares a zero or
	// oversized length.
	ErrInvalidPacketLength = errors.New("invalid packet length")
)

// truncated maps an end-of-stream error to ErrTruncatedStream. A stream that
// ends in the middle of a declared structure is a framing violation, not a
// plain I/O failure.
func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncatedStream
	}
	return err
}
